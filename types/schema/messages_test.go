package schema_test

import (
	"github.com/Marvin-Brouwer/open-adr/types/schema"
)

func (suite *SchemaTestSuite) TestFormatMessageConst() {
	formatted := schema.FormatMessage(schema.Violation{
		InstancePath: "/children/1/children/0/value",
		Keyword:      schema.KEYWORD_CONST,
		Message:      "value must be 'Example'",
		Params:       map[string]any{"allowedValue": "Example"},
	}, "Wrong!")

	suite.True(formatted.Known)
	suite.Equal("Expected absolute value of 'Example', got 'Wrong!' instead", formatted.Text)
	suite.Equal([]string{"Example"}, formatted.Expected)
}

func (suite *SchemaTestSuite) TestFormatMessageConstNonString() {
	formatted := schema.FormatMessage(schema.Violation{
		InstancePath: "/children/1/depth",
		Keyword:      schema.KEYWORD_CONST,
		Message:      "value must be 2",
		Params:       map[string]any{"allowedValue": 2},
	}, 1)

	suite.Equal("Expected absolute value of '2', got '1' instead", formatted.Text)
	suite.Equal([]string{"2"}, formatted.Expected)
}

func (suite *SchemaTestSuite) TestFormatMessageAdditionalItems() {
	items := []any{
		map[string]any{"type": "text", "value": "first"},
		map[string]any{"type": "html", "value": "<br />"},
		map[string]any{"type": "break"},
		map[string]any{"type": "text", "value": "second"},
	}

	formatted := schema.FormatMessage(schema.Violation{
		InstancePath: "/children/2/children",
		Keyword:      schema.KEYWORD_ADDITIONAL_ITEMS,
		Message:      "additional items not allowed",
		Params:       map[string]any{"count": 3},
	}, items)

	suite.True(formatted.Known)
	suite.Equal(
		"You provided more elements than the schema expects, expected '1' elements, got '2' instead",
		formatted.Text,
	)
	suite.Nil(formatted.Expected)
}

func (suite *SchemaTestSuite) TestFormatMessageUnknownKeyword() {
	formatted := schema.FormatMessage(schema.Violation{
		InstancePath: "/children/0",
		Keyword:      "required",
		Message:      "missing property 'value'",
	}, map[string]any{"type": "text"})

	suite.False(formatted.Known)
	suite.Equal("Unknown error type 'required' at /children/0.", formatted.Text)
}

func (suite *SchemaTestSuite) TestFormatMessageWithoutMessage() {
	formatted := schema.FormatMessage(schema.Violation{InstancePath: "/children"}, nil)

	suite.True(formatted.Known)
	suite.Equal("Unknown error at /children.", formatted.Text)
}
