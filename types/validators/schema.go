package validators

import (
	"regexp"
)

var schemaURLPattern = regexp.MustCompile(`^(https:|file:)//`)

// SchemaURLFormatChecker accepts schema references served over https or from disk.
type SchemaURLFormatChecker struct{}

func (f SchemaURLFormatChecker) IsFormat(input interface{}) bool {
	str, ok := input.(string)
	if !ok {
		return false
	}

	return schemaURLPattern.MatchString(str)
}
