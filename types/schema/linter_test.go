package schema_test

import (
	"context"
	"os"

	"github.com/Marvin-Brouwer/open-adr/types/config"
	"github.com/Marvin-Brouwer/open-adr/types/markdown"
	"github.com/Marvin-Brouwer/open-adr/types/schema"
)

func (suite *SchemaTestSuite) readDocument(name string) string {
	content, err := os.ReadFile(suite.documentPath(name))
	suite.Nil(err)
	return string(content)
}

func (suite *SchemaTestSuite) TestLinterValidDocument() {
	name := "basic-example-valid.md"
	document := suite.lint(name, suite.readDocument(name))

	suite.Empty(document.GetMessages())
}

func (suite *SchemaTestSuite) TestLinterIncorrectChapterTitle() {
	name := "basic-example-invalid.md"
	document := suite.lint(name, suite.readDocument(name))

	messages := document.GetMessages()
	suite.Len(messages, 1)
	suite.Equal("Expected absolute value of 'Example', got 'Wrong!' instead", messages[0].Message)
	suite.Equal([]string{"Example"}, messages[0].Expected)
	suite.Equal(suite.position(5, 3, 48, 5, 9, 54), messages[0].Place)
	suite.Equal("const", messages[0].RuleID)
	suite.Equal(schema.LINTER_NAME, messages[0].Source)
	suite.Equal("/children/1/children/0/value", messages[0].Stack)
	suite.True(messages[0].Fatal)
}

func (suite *SchemaTestSuite) TestLinterAdditionalText() {
	name := "additional-text.md"
	document := suite.lint(name, suite.readDocument(name))

	messages := document.GetMessages()
	suite.Len(messages, 1)
	suite.Equal(
		"You provided more elements than the schema expects, expected '1' elements, got '2' instead",
		messages[0].Message,
	)
	suite.Nil(messages[0].Expected)
	suite.Equal(suite.position(7, 1, 57, 8, 23, 160), messages[0].Place)
	suite.Equal("additionalItems", messages[0].RuleID)
}

func (suite *SchemaTestSuite) TestLinterWithoutSchemaState() {
	document := suite.newDocument("no-state.md", "# Example\n")

	linter := schema.NewLinter(config.Settings{}, nil)

	suite.ErrorIs(linter.Run(context.Background(), document), schema.ErrSchemaStateMissing)
}

func (suite *SchemaTestSuite) TestLinterSkipsExcludedDocuments() {
	document := suite.newDocument("no-state.md", "# Example\n")

	linter := schema.NewLinter(config.Settings{Include: []string{"adr/**/*.md"}}, nil)

	suite.Nil(linter.Run(context.Background(), document))
	suite.Empty(document.GetMessages())
}

func (suite *SchemaTestSuite) TestLinterRepeatsViolationOrder() {
	name := "additional-text.md"
	content := suite.readDocument(name)

	first := suite.lint(name, content).GetMessages()
	for run := 0; run < 10; run++ {
		suite.Equal(first, suite.lint(name, content).GetMessages())
	}
}

func (suite *SchemaTestSuite) TestLinterPathMissingFromTree() {
	document := suite.newDocument("slash-key.md", "# Example\n")
	tree := document.GetTree()
	tree["a/b"] = "x"

	schema.SetSchemaData(document, &schema.SchemaData{
		SchemaURL: "file://./slash-key.json",
		Validator: suite.compile(`{"properties": {"a/b": {"const": "y"}}}`),
	})

	linter := schema.NewLinter(config.Settings{}, nil)
	suite.Nil(linter.Run(context.Background(), document))

	messages := document.GetMessages()
	suite.Len(messages, 1)
	suite.Equal("Invalid error state, tree does not contain `/a/b`", messages[0].Message)
	suite.True(messages[0].Fatal)
	suite.Equal("/a/b", messages[0].Stack)
	suite.Equal(schema.KEYWORD_CONST, messages[0].RuleID)
	suite.Nil(messages[0].Node)
	suite.Equal(markdown.PositionOf(tree), messages[0].Place)
	suite.NotNil(messages[0].Place)
}

func (suite *SchemaTestSuite) TestAnchorNode() {
	tree := markdown.Parse([]byte(suite.readDocument("basic-example-invalid.md")))
	heading := markdown.Scan(tree, "heading")[0]
	text := markdown.Scan(heading, "text")[0]
	children := heading["children"]

	suite.Equal(text, schema.AnchorNode([]any{"Wrong!", text, children, heading, tree}))
	suite.Equal(heading, schema.AnchorNode([]any{children, heading, tree}))
	suite.Equal(heading, schema.AnchorNode([]any{heading["position"], heading, tree}))
	suite.Nil(schema.AnchorNode([]any{"Wrong!"}))
	suite.Nil(schema.AnchorNode([]any{}))
	suite.Nil(schema.AnchorNode([]any{map[string]any{"start": 1}}))
}
