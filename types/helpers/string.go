package helpers

import (
	"fmt"
	"strconv"
	"strings"
)

func GetListAsQuotedString[T any](list []T) string {
	var quotedList []string
	for _, item := range list {
		quotedList = append(quotedList, fmt.Sprintf("\"%v\"", item))
	}
	return strings.Join(quotedList, ", ")
}

// EscapeControlCharacters replaces non printable characters, except line
// breaks, with their escaped Go notation.
func EscapeControlCharacters(input string) string {
	var builder strings.Builder
	for _, r := range input {
		if r == '\n' || strconv.IsPrint(r) {
			builder.WriteRune(r)
			continue
		}
		quoted := strconv.QuoteRune(r)
		builder.WriteString(quoted[1 : len(quoted)-1])
	}
	return builder.String()
}
