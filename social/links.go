// Package social finds links to other platforms in free-text channel bios.
package social

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pixeltube-cli/pixeltube/constant"
	"github.com/samber/lo"
)

// linkPattern matches markdown links [text](url) or bare URLs that start the
// text or follow whitespace, an angle bracket, a quote or a parenthesis.
var linkPattern = regexp.MustCompile(`\[[^\]]*\]\((https?://[^\s)]+)\)|(?:^|[\s<"'(])(https?://[^\s<>"'()]+)`)

// mastodonPattern matches profile URLs of the form https://instance/@handle.
var mastodonPattern = regexp.MustCompile(`^https?://[^/\s]+/@[A-Za-z0-9_.]+/?$`)

// Links maps a platform name to the first URL found for it.
type Links map[string]string

// claim records url under name unless the key is taken.
func (l Links) claim(name, url string) {
	if _, taken := l[name]; !taken {
		l[name] = url
	}
}

// Merge adds the entries of other whose keys l does not have yet.
func (l Links) Merge(other Links) {
	for name, url := range other {
		l.claim(name, url)
	}
}

// FindURLs lists every URL in text in order of appearance.
func FindURLs(text string) []string {
	matches := linkPattern.FindAllStringSubmatch(text, -1)
	urls := lo.FilterMap(matches, func(m []string, _ int) (string, bool) {
		if m[1] != "" {
			return m[1], true
		}
		u := strings.TrimRight(m[2], ".,;:!?")
		return u, u != ""
	})
	return urls
}

// Extract classifies the URLs of text. Links pointing at selfHost are ignored.
func Extract(text, selfHost string) Links {
	links := Links{}

	for _, u := range FindURLs(text) {
		if isSelf(u, selfHost) {
			continue
		}

		platform, known := classify(u)
		switch {
		case !known && mastodonPattern.MatchString(u) && !has(links, constant.MastodonLink):
			links.claim(constant.MastodonLink, u)
		case known:
			links.claim(platform, u)
		default:
			links.claim(constant.WebsiteLink, u)
		}
	}

	return links
}

// ExtractAll runs Extract on the bio, then on the support field. Bio links win.
func ExtractAll(bio, support, selfHost string) Links {
	links := Extract(bio, selfHost)
	if support != "" {
		links.Merge(Extract(support, selfHost))
	}
	return links
}

func classify(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	pathname := strings.ToLower(u.Path)

	for _, p := range Platforms {
		if lo.SomeBy(p.Patterns, func(pattern string) bool { return matches(host, pathname, pattern) }) {
			return p.Name, true
		}
	}
	return "", false
}

// matches reports whether host and pathname fall under pattern.
func matches(host, pathname, pattern string) bool {
	patternHost, prefix, _ := strings.Cut(pattern, "/")
	if host != patternHost && !strings.HasSuffix(host, "."+patternHost) {
		return false
	}
	return prefix == "" || strings.HasPrefix(strings.TrimPrefix(pathname, "/"), prefix)
}

func has(links Links, name string) bool {
	_, ok := links[name]
	return ok
}

func isSelf(raw, selfHost string) bool {
	if selfHost == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	self := strings.TrimPrefix(strings.ToLower(selfHost), "www.")
	return host == self || strings.HasSuffix(host, "."+self)
}
