package playlist

import (
	"regexp"
	"strings"
)

const (
	DomainPlaceholder   = "{{DOMAIN}}"
	UsernamePlaceholder = "{{USERNAME}}"
	PasswordPlaceholder = "{{PASSWORD}}"
)

type rewriteRule struct {
	pattern *regexp.Regexp
	replace string
}

// Ordered URL rewrites. Series and movie shapes carry an extension,
// live URLs end in a bare numeric id, so the live rule must run last
// or it would never see anything to match anyway; order still matters
// because the first matching rule wins.
var rewriteRules = []rewriteRule{
	{
		pattern: regexp.MustCompile(`^https?://[^/]+/series/[^/]+/[^/]+/(\d+)\.(\w+)$`),
		replace: DomainPlaceholder + "/series/" + UsernamePlaceholder + "/" + PasswordPlaceholder + "/$1.$2",
	},
	{
		pattern: regexp.MustCompile(`^https?://[^/]+/movie/[^/]+/[^/]+/(\d+)\.(\w+)$`),
		replace: DomainPlaceholder + "/movie/" + UsernamePlaceholder + "/" + PasswordPlaceholder + "/$1.$2",
	},
	{
		pattern: regexp.MustCompile(`^https?://[^/]+/[^/]+/[^/]+/(\d+)$`),
		replace: DomainPlaceholder + "/" + UsernamePlaceholder + "/" + PasswordPlaceholder + "/$1",
	},
}

// RewriteLine swaps an origin URL for its placeholder form. Lines that
// match no rule pass through untouched, so metadata lines and foreign
// URL shapes survive templating.
func RewriteLine(line string) string {
	for i := range rewriteRules {
		if rewriteRules[i].pattern.MatchString(line) {
			return rewriteRules[i].pattern.ReplaceAllString(line, rewriteRules[i].replace)
		}
	}
	return line
}

// Render builds the templated playlist document from a raw feed.
func Render(content string) string {
	lines := strings.Split(content, "\n")

	var b strings.Builder
	b.Grow(len(content))
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(RewriteLine(strings.TrimRight(line, "\r")))
	}

	return b.String()
}
