package pantone

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var brandPrefixes = map[string]bool{"pantone": true, "pms": true}

// foldText lowercases s, removes diacritics and replaces punctuation and
// symbols with spaces.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	folded := cases.Fold().String(stripped)
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return ' '
		}
		return r
	}, folded)
}

// queryTokens folds s, splits it on whitespace and drops leading
// "pantone"/"pms" markers, including one glued to a code as in "pms485c".
func queryTokens(s string) []string {
	tokens := strings.Fields(foldText(s))
	for len(tokens) > 0 && brandPrefixes[tokens[0]] {
		tokens = tokens[1:]
	}
	if len(tokens) > 0 {
		for prefix := range brandPrefixes {
			if rest, ok := strings.CutPrefix(tokens[0], prefix); ok && rest != "" && isDigit(rest[0]) {
				tokens[0] = rest
				break
			}
		}
	}
	return tokens
}

// Query is the parsed form of a user-supplied Pantone reference.
type Query struct {
	// Text is the normalized query with any finish reduced to its letter.
	Text string
	// Core is Text without the finish token.
	Core string
	// Code is set when Core is a bare numeric code.
	Code   string
	Finish Finish
}

// ParseQuery normalizes raw and extracts its code and finish tokens.
// "485c", "485 C", "pantone 485" and "PMS 485 coated" all give Code "485".
func ParseQuery(raw string) Query {
	tokens := queryTokens(raw)
	var q Query

	if n := len(tokens); n > 0 {
		if f, ok := ParseFinish(tokens[n-1]); ok && n > 1 {
			q.Finish = f
			tokens = tokens[:n-1]
		} else if stem, f, ok := splitFinish(tokens[n-1]); ok {
			q.Finish = f
			tokens[n-1] = stem
		}
	}

	q.Core = strings.Join(tokens, " ")
	if len(tokens) == 1 && isDigits(tokens[0]) {
		q.Code = tokens[0]
	}
	q.Text = q.Core
	if q.Finish != "" {
		q.Text = strings.TrimSpace(q.Core + " " + strings.ToLower(q.Finish.Letter()))
	}
	return q
}

// splitFinish splits a finish suffix off a token ending in a digit, as in
// "485c" or "7coated".
func splitFinish(token string) (string, Finish, bool) {
	i := strings.LastIndexFunc(token, func(r rune) bool { return r < 0x80 && isDigit(byte(r)) })
	if i < 0 || i == len(token)-1 {
		return "", "", false
	}
	f, ok := ParseFinish(token[i+1:])
	if !ok {
		return "", "", false
	}
	return token[:i+1], f, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// splitDigits splits s into its leading run of ASCII digits and the rest.
func splitDigits(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func isDigits(s string) bool {
	d, rest := splitDigits(s)
	return d != "" && rest == ""
}
