package helpers_test

import (
	"github.com/Marvin-Brouwer/open-adr/types/helpers"
)

func (suite *HelpersTestSuite) TestGetValue() {
	node := map[string]interface{}{
		"type": "text",
		"position": map[string]interface{}{
			"start": map[string]interface{}{"line": 5, "column": 3, "offset": 48},
		},
	}

	line, err := helpers.GetValue[int](node, "position.start.line")
	suite.Nil(err)
	suite.Equal(5, line)

	nodeType, err := helpers.GetValue[string](node, "type")
	suite.Nil(err)
	suite.Equal("text", nodeType)

	_, err = helpers.GetValue[string](node, "position.start.line")
	suite.NotNil(err)

	_, err = helpers.GetValue[int](node, "position.end.line")
	suite.NotNil(err)
}

func (suite *HelpersTestSuite) TestGetListAsQuotedString() {
	suite.Equal(`"text", "json"`, helpers.GetListAsQuotedString([]string{"text", "json"}))
	suite.Equal(`"1", "2"`, helpers.GetListAsQuotedString([]int{1, 2}))
	suite.Equal("", helpers.GetListAsQuotedString([]string{}))
}

func (suite *HelpersTestSuite) TestEscapeControlCharacters() {
	suite.Equal("plain", helpers.EscapeControlCharacters("plain"))
	suite.Equal("line\nbreak", helpers.EscapeControlCharacters("line\nbreak"))
	suite.Equal(`tab\there`, helpers.EscapeControlCharacters("tab\there"))
	suite.Equal(`bell\a`, helpers.EscapeControlCharacters("bell\a"))
	suite.Equal(`nul\x00`, helpers.EscapeControlCharacters("nul\x00"))
}

func (suite *HelpersTestSuite) TestHashInput() {
	hash := helpers.HashInput("doc/odr/0001.md")

	suite.Len(hash, 64)
	suite.Equal(hash, helpers.HashInput("doc/odr/0001.md"))
	suite.NotEqual(hash, helpers.HashInput("doc/odr/0002.md"))
}
