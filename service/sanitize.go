package service

import (
	"regexp"
	"strings"
)

var (
	fenceOpenRe  = regexp.MustCompile("^```json\\s*")
	fenceCloseRe = regexp.MustCompile("\\s*```$")
	citationRe   = regexp.MustCompile("【[^】]*】")
)

// Sanitize cleans raw engine output into a JSON candidate string.
// It strips a ```json code fence wrapping the payload, removes
// 【...】 citation markers the engine interleaves into file-search
// answers, and cuts the text down to the span from the first '{' to
// the last '}' when one exists. Syntactic cleanup only: the result is
// not guaranteed to parse, and Sanitize never fails.
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)

	s = fenceOpenRe.ReplaceAllString(s, "")
	s = fenceCloseRe.ReplaceAllString(s, "")

	s = citationRe.ReplaceAllString(s, "")

	if first := strings.Index(s, "{"); first >= 0 {
		if last := strings.LastIndex(s, "}"); last > first {
			s = s[first : last+1]
		}
	}

	return s
}
