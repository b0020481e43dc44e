//nolint:revive,nolintlint // I like this package name, leave me alone
package utils

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var (
	nonDigitRegex    = regexp.MustCompile(`\D+`)
	nonDateTimeRegex = regexp.MustCompile(`[^0-9:\- ]+`)
)

func NormalizeSpaces(str string) string {
	str = strings.ReplaceAll(str, "&nbsp;", " ") // html non-breaking space
	str = strings.ReplaceAll(str, "\u00A0", " ") // no-break space
	str = strings.ReplaceAll(str, "\u0085", " ") // next line
	str = strings.ReplaceAll(str, "\u2009", " ") // thin space
	str = strings.ReplaceAll(str, "\u200A", " ") // hair space
	str = strings.ReplaceAll(str, "\u200B", " ") // zero-width space
	str = strings.ReplaceAll(str, "\u200C", " ") // zero-width non-joiner
	str = strings.ReplaceAll(str, "\u200D", " ") // zero-width joiner
	str = strings.ReplaceAll(str, "\uFEFF", " ") // zero-width non-breaking space
	str = strings.ReplaceAll(str, "\u202F", " ") // narrow no-break space
	str = strings.Join(strings.Fields(str), " ") // replace consecutive whitespace with single space
	str = strings.TrimSpace(str)                 // remove leading and trailing spaces

	return str
}

// DecodeEntities resolves HTML entities and drops no-break spaces, which the portal
// sprinkles into exported text.
func DecodeEntities(str string) string {
	str = html.UnescapeString(str)
	return strings.ReplaceAll(str, "\u00A0", "")
}

// NormalizeLineBreaks turns "\r\n", "\n\r" and "\r" into "\n".
func NormalizeLineBreaks(str string) string {
	return strings.NewReplacer("\r\n", "\n", "\n\r", "\n", "\r", "\n").Replace(str)
}

// DigitsOnly removes everything but digits, e.g. "2 kaarten" -> "2".
func DigitsOnly(str string) string {
	return nonDigitRegex.ReplaceAllString(str, "")
}

// ParseCount parses the digits of str as a number. Without any digits it returns 0.
func ParseCount(str string) int {
	n, err := strconv.Atoi(DigitsOnly(str))
	if err != nil {
		return 0
	}
	return n
}

// CleanDateTime keeps only the characters that can be part of a date-time
// ("18-7-2014 21:30") and collapses whitespace.
func CleanDateTime(str string) string {
	str = NormalizeSpaces(str)
	str = nonDateTimeRegex.ReplaceAllString(str, "")
	return strings.Join(strings.Fields(str), " ")
}
