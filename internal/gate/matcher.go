package gate

import "regexp"

// Pattern matches the coverage token `go test -cover` prints, e.g.
// "coverage: 85.0% of statements". One or more fractional digits are accepted.
const Pattern = `coverage: (\d+\.\d+)%`

// Matcher finds the coverage token in a line. It knows nothing about thresholds.
type Matcher struct {
	expression *regexp.Regexp
}

func NewMatcher() *Matcher {
	return &Matcher{expression: regexp.MustCompile(Pattern)}
}

// Find returns the captured number of the first token in line.
func (matcher *Matcher) Find(line string) (string, bool) {
	groups := matcher.expression.FindStringSubmatch(line)
	if groups == nil {
		return "", false
	}
	return groups[1], true
}
