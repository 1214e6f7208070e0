package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

const (
	KEYWORD_CONST            = "const"
	KEYWORD_ADDITIONAL_ITEMS = "additionalItems"
)

var lineBreakLiterals = map[string]bool{
	"<br>":   true,
	"<br/>":  true,
	"<br />": true,
}

// FormattedMessage is the user facing text for a violation.
type FormattedMessage struct {
	Text     string
	Expected []string
	// Known is false when the keyword fell through to the generic message.
	Known bool
}

// FormatMessage renders a violation. leaf is the value found at the
// violation's instance path.
func FormatMessage(violation Violation, leaf any) FormattedMessage {
	if violation.Message == "" {
		return FormattedMessage{
			Text:  fmt.Sprintf("Unknown error at %s.", violation.InstancePath),
			Known: true,
		}
	}

	switch violation.Keyword {
	case KEYWORD_CONST:
		expected := displayValue(violation.Params["allowedValue"])
		if constKind, ok := violation.Kind.(*kind.Const); ok {
			expected = displayValue(constKind.Want)
		}
		return FormattedMessage{
			Text: fmt.Sprintf(
				"Expected absolute value of '%s', got '%s' instead",
				expected,
				displayValue(leaf),
			),
			Expected: []string{expected},
			Known:    true,
		}

	case KEYWORD_ADDITIONAL_ITEMS:
		items, _ := leaf.([]any)
		additional, _ := violation.Params["count"].(int)
		return FormattedMessage{
			Text: fmt.Sprintf(
				"You provided more elements than the schema expects, expected '%d' elements, got '%d' instead",
				len(items)-additional,
				countSignificant(items),
			),
			Known: true,
		}
	}

	return FormattedMessage{
		Text: fmt.Sprintf("Unknown error type '%s' at %s.", violation.Keyword, violation.InstancePath),
	}
}

// countSignificant counts sequence elements, ignoring hard line breaks.
func countSignificant(items []any) int {
	count := 0
	for _, item := range items {
		if isLineBreak(item) {
			continue
		}
		count++
	}
	return count
}

func isLineBreak(item any) bool {
	node, ok := item.(map[string]any)
	if !ok {
		return false
	}
	if node["type"] == "break" {
		return true
	}
	value, _ := node["value"].(string)
	return lineBreakLiterals[strings.ToLower(strings.TrimSpace(value))]
}

func displayValue(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case nil:
		return "null"
	case json.Number:
		return typed.String()
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(encoded)
}
