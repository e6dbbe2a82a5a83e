package playlist

import (
	"regexp"
	"strings"

	"github.com/JMURv/iptv-gateway/internal/config"
	md "github.com/JMURv/iptv-gateway/internal/models"
)

const (
	seriesPathMarker = "/series/"
	moviePathMarker  = "/movie/"
)

var (
	seriesPattern  = regexp.MustCompile(`(?i)[Ss](\d{1,2})\s*[Ee](\d{1,2})`)
	countryPattern = regexp.MustCompile(`^[|\s]*([A-Z]{2})[|\s]`)
)

// DetectKind classifies an entry by URL and name heuristics. Series
// detection runs first and wins ties: an item whose URL carries the
// series path marker (or whose name matches SxxEyy) is a series even
// when the movie marker would also match.
func DetectKind(url, name string) md.ContentKind {
	lowURL := strings.ToLower(url)

	if strings.Contains(lowURL, seriesPathMarker) || seriesPattern.MatchString(name) {
		return md.KindSeries
	}

	if strings.Contains(lowURL, moviePathMarker) {
		return md.KindMovie
	}

	return md.KindLive
}

// SeasonEpisode extracts zero-padded season/episode numbers from a
// series name ("KING AND CONQUEROR S1 E7" -> "01", "07").
func SeasonEpisode(name string) (string, string) {
	m := seriesPattern.FindStringSubmatch(name)
	if m == nil {
		return "", ""
	}

	return pad2(m[1]), pad2(m[2])
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// Country extracts the two-letter country code from the group label's
// leading token ("ES|DEPORTES" -> "ES", "|AR| ..." -> "AR").
func Country(group string) string {
	m := countryPattern.FindStringSubmatch(group)
	if m == nil {
		return ""
	}
	return m[1]
}

// ProviderID is the terminal path segment of the origin URL with any
// extension stripped.
func ProviderID(url string) string {
	trimmed := strings.TrimRight(url, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	if i := strings.Index(trimmed, "."); i >= 0 {
		trimmed = trimmed[:i]
	}
	return trimmed
}

// BuildItem turns a parsed entry into a typed catalog item. seq is the
// 1-based ordinal within the item's content class for this cycle.
func BuildItem(e Entry, seq int, kind md.ContentKind) md.ContentItem {
	logo := e.Logo
	if logo == "" {
		logo = config.DefaultLogoURL
	}

	item := md.ContentItem{
		Seq:        seq,
		Name:       e.Name,
		Logo:       logo,
		URL:        e.URL,
		ProviderID: ProviderID(e.URL),
		GroupTitle: e.Group,
		Country:    Country(e.Group),
		TvgID:      e.TvgID,
		Kind:       kind,
	}

	if kind == md.KindSeries {
		item.Season, item.Episode = SeasonEpisode(e.Name)
	}

	return item
}
