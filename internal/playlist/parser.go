package playlist

import "strings"

const extinfPrefix = "#EXTINF:"

// Entry is one raw playlist item: the #EXTINF metadata line's
// attributes plus the URL line that follows it.
type Entry struct {
	Name  string
	Group string
	Logo  string
	TvgID string
	URL   string
}

func attr(line, name string) string {
	marker := name + `="`
	i := strings.Index(line, marker)
	if i < 0 {
		return ""
	}
	rest := line[i+len(marker):]
	if j := strings.Index(rest, `"`); j >= 0 {
		return rest[:j]
	}
	return ""
}

// Parse walks a feed document and pairs every #EXTINF line with the
// URL line below it. Lines that belong to neither shape are skipped,
// which keeps the parser tolerant of headers and stray comments.
func Parse(content string) []Entry {
	lines := strings.Split(content, "\n")
	entries := make([]Entry, 0, len(lines)/2)

	var cur *Entry
	for _, line := range lines {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, extinfPrefix) {
			name := "Unknown"
			if i := strings.LastIndex(line, ","); i >= 0 {
				name = strings.TrimSpace(line[i+1:])
			}

			cur = &Entry{
				Name:  name,
				Group: attr(line, "group-title"),
				Logo:  attr(line, "tvg-logo"),
				TvgID: attr(line, "tvg-id"),
			}
			continue
		}

		if line != "" && !strings.HasPrefix(line, "#") && cur != nil {
			cur.URL = line
			entries = append(entries, *cur)
			cur = nil
		}
	}

	return entries
}
