package validators

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const (
	SCHEMA_KEY = "odr:schema"

	SCHEMA_URL_FORMAT = "schema-url"
	HEADER_DATA_VAR   = "meta-data"

	HEADER_SCHEMA = `{
		"type": "object",
		"required": ["odr:schema"],
		"properties": {
			"odr:schema": {
				"type": "string",
				"format": "schema-url"
			}
		}
	}`
)

var (
	headerSchema     *gojsonschema.Schema
	headerSchemaErr  error
	onceHeaderSchema sync.Once
)

func init() {
	gojsonschema.FormatCheckers.Add(SCHEMA_URL_FORMAT, SchemaURLFormatChecker{})
}

// HeaderError is a single problem with a document header.
type HeaderError struct {
	Message string
	// Field is the offending header key, empty when the header as a whole is wrong.
	Field string
}

func (e *HeaderError) Error() string {
	return e.Message
}

func getHeaderSchema() (*gojsonschema.Schema, error) {
	onceHeaderSchema.Do(func() {
		headerSchema, headerSchemaErr = gojsonschema.NewSchema(
			gojsonschema.NewStringLoader(HEADER_SCHEMA),
		)
	})
	return headerSchema, headerSchemaErr
}

// ValidateHeader checks the decoded front matter and returns the most relevant
// problem, or nil when the header is usable.
func ValidateHeader(data map[string]interface{}) (*HeaderError, error) {
	schema, err := getHeaderSchema()
	if err != nil {
		return nil, err
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}

	var selected gojsonschema.ResultError
	for _, resultError := range result.Errors() {
		if selected == nil || priority(resultError) < priority(selected) {
			selected = resultError
		}
	}

	return newHeaderError(selected), nil
}

func priority(resultError gojsonschema.ResultError) int {
	switch resultError.Type() {
	case "required":
		return 0
	case "invalid_type":
		return 1
	case "format":
		return 2
	default:
		return 3
	}
}

func newHeaderError(resultError gojsonschema.ResultError) *HeaderError {
	field := resultError.Field()
	// A missing key is reported on the header as a whole.
	if field == gojsonschema.STRING_ROOT_SCHEMA_PROPERTY || resultError.Type() == "required" {
		field = ""
	}
	dataPath := HEADER_DATA_VAR
	if field != "" {
		dataPath = fmt.Sprintf("%s/%s", HEADER_DATA_VAR, field)
	}

	details := resultError.Details()
	var message string
	switch resultError.Type() {
	case "required":
		message = fmt.Sprintf("%s must have required property '%v'", dataPath, details["property"])
	case "invalid_type":
		message = fmt.Sprintf("%s must be %v", dataPath, details["expected"])
	case "format":
		message = fmt.Sprintf("%s schema url protocol only allows: https, or file.", dataPath)
	default:
		message = fmt.Sprintf("%s %s", dataPath, resultError.Description())
	}

	return &HeaderError{Message: message, Field: field}
}
