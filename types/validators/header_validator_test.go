package validators_test

import (
	"github.com/Marvin-Brouwer/open-adr/types/validators"
)

func (suite *ValidatorsTestSuite) TestSchemaURLFormatChecker() {
	checker := validators.SchemaURLFormatChecker{}

	suite.True(checker.IsFormat("https://example.com/odr.schema.json"))
	suite.True(checker.IsFormat("file://./example1.json"))
	suite.True(checker.IsFormat("file:///srv/schemas/example1.json"))
	suite.False(checker.IsFormat("http://example.com/odr.schema.json"))
	suite.False(checker.IsFormat("./example1.json"))
	suite.False(checker.IsFormat(""))
	suite.False(checker.IsFormat(42))
}

func (suite *ValidatorsTestSuite) TestValidateHeaderValid() {
	headerErr, err := validators.ValidateHeader(map[string]interface{}{
		"odr:schema": "file://./example1.json",
		"title":      "Example",
	})

	suite.Nil(err)
	suite.Nil(headerErr)
}

func (suite *ValidatorsTestSuite) TestValidateHeaderMissingSchema() {
	headerErr, err := validators.ValidateHeader(map[string]interface{}{
		"no": false,
	})

	suite.Nil(err)
	suite.NotNil(headerErr)
	suite.Equal("meta-data must have required property 'odr:schema'", headerErr.Message)
	suite.Empty(headerErr.Field)
}

func (suite *ValidatorsTestSuite) TestValidateHeaderEmptySchema() {
	headerErr, err := validators.ValidateHeader(map[string]interface{}{
		"odr:schema": "",
	})

	suite.Nil(err)
	suite.NotNil(headerErr)
	suite.Equal("meta-data/odr:schema schema url protocol only allows: https, or file.", headerErr.Message)
	suite.Equal(validators.SCHEMA_KEY, headerErr.Field)
}

func (suite *ValidatorsTestSuite) TestValidateHeaderWrongType() {
	headerErr, err := validators.ValidateHeader(map[string]interface{}{
		"odr:schema": 12,
	})

	suite.Nil(err)
	suite.NotNil(headerErr)
	suite.Equal("meta-data/odr:schema must be string", headerErr.Message)
	suite.Equal(validators.SCHEMA_KEY, headerErr.Field)
}
