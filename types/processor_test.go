package types_test

import (
	"context"
	"os"

	"github.com/Marvin-Brouwer/open-adr/types"
	"github.com/Marvin-Brouwer/open-adr/types/config"
	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
	"github.com/Marvin-Brouwer/open-adr/types/schema"
)

func (suite *TypesTestSuite) readDocument(name string) []byte {
	content, err := os.ReadFile(suite.documentPath(name))
	suite.Nil(err)
	return content
}

func (suite *TypesTestSuite) TestProcessValidDocument() {
	processor := types.NewProcessor(suite._config, nil)
	path := suite.documentPath("basic-example-valid.md")

	report, err := processor.Process(context.Background(), path, suite.readDocument("basic-example-valid.md"))

	suite.Nil(err)
	suite.Equal(path, report.Path)
	suite.Equal(interfaces.ProcessingStatusCompleted, report.Status)
	suite.Empty(report.Messages)
	suite.NotEmpty(report.ProcessingID)
}

func (suite *TypesTestSuite) TestProcessInvalidDocument() {
	processor := types.NewProcessor(suite._config, nil)
	path := suite.documentPath("basic-example-invalid.md")

	report, err := processor.Process(context.Background(), path, suite.readDocument("basic-example-invalid.md"))

	suite.Nil(err)
	suite.Equal(interfaces.ProcessingStatusFailed, report.Status)
	suite.Len(report.Messages, 1)
	suite.Equal(schema.LINTER_NAME, report.Messages[0].Source)
	suite.True(report.HasFatal())
}

func (suite *TypesTestSuite) TestProcessStopsAfterLoaderFailure() {
	processor := types.NewProcessor(suite._config, nil)
	path := suite.documentPath("no-remark.md")

	report, err := processor.Process(context.Background(), path, []byte("# No Remark\n\nThis file has no remark header\n"))

	suite.Nil(err)
	suite.Equal(interfaces.ProcessingStatusFailed, report.Status)
	suite.Len(report.Messages, 1)
	suite.Equal(schema.LOADER_NAME, report.Messages[0].Source)
	suite.Equal("No frontmatter data found", report.Messages[0].Message)
}

func (suite *TypesTestSuite) TestProcessSkipsExcludedDocument() {
	processor := types.NewProcessor(suite._config, nil)

	report, err := processor.Process(context.Background(), "README.md", []byte("# Readme\n"))

	suite.Nil(err)
	suite.Equal(interfaces.ProcessingStatusSkipped, report.Status)
	suite.Empty(report.Messages)
}

func (suite *TypesTestSuite) TestProcessWithEmptyInclude() {
	_config := config.DefaultConfig()
	_config.ODR.Include = []string{}
	processor := types.NewProcessor(_config, nil)

	report, err := processor.Process(context.Background(), "README.md", []byte("# Readme\n"))

	suite.Nil(err)
	suite.Equal(interfaces.ProcessingStatusFailed, report.Status)
	suite.Equal("No frontmatter data found", report.Messages[0].Message)
}

func (suite *TypesTestSuite) TestProcessFileUnsupported() {
	processor := types.NewProcessor(suite._config, nil)

	report, err := processor.ProcessFile(context.Background(), suite.documentPath("valid.json"))

	suite.ErrorIs(err, types.ErrUnsupportedDocument)
	suite.Equal(interfaces.ProcessingStatusSkipped, report.Status)
}

func (suite *TypesTestSuite) TestProcessAllKeepsOrder() {
	_config := suite._config
	_config.Processing.Concurrency = 2
	processor := types.NewProcessor(_config, types.NewLocalStorage(""))

	paths := []string{
		suite.documentPath("basic-example-invalid.md"),
		suite.documentPath("basic-example-valid.md"),
		suite.documentPath("additional-text.md"),
	}

	reports, err := processor.ProcessAll(context.Background(), paths)

	suite.Nil(err)
	suite.Len(reports, 3)
	for i, path := range paths {
		suite.Equal(path, reports[i].Path)
	}
	suite.Equal(interfaces.ProcessingStatusFailed, reports[0].Status)
	suite.Equal(interfaces.ProcessingStatusCompleted, reports[1].Status)
	suite.Equal(interfaces.ProcessingStatusFailed, reports[2].Status)
	suite.Equal("additionalItems", reports[2].Messages[0].RuleID)
}

func (suite *TypesTestSuite) TestProcessAllMissingFile() {
	processor := types.NewProcessor(suite._config, nil)

	_, err := processor.ProcessAll(context.Background(), []string{suite.documentPath("missing.md")})

	suite.True(os.IsNotExist(err))
}
