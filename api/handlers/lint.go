package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Marvin-Brouwer/open-adr/api/schemas"
	"github.com/Marvin-Brouwer/open-adr/types"
	"github.com/Marvin-Brouwer/open-adr/types/dataclasses"
	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
)

var ErrPathRequired = errors.New("path is required")

// @Summary Lint a markdown document
// @Description Validates the document against the schema referenced in its front matter.
// @Tags lint
// @Accept json
// @Produce json
// @Success 200 {object} schemas.LintOutputSchema
// @Failure 400 {object} schemas.ErrorOutputSchema
// @Failure 500 {object} schemas.ErrorOutputSchema
// @Router /lint [post]
func LintHandler(
	processor *types.Processor,
	reportStorage interfaces.Storage,
	reportDirectory string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		var inputData schemas.LintInputSchema
		if err := c.Bind(&inputData); err != nil {
			return c.JSON(http.StatusBadRequest, schemas.ErrorOutputSchema{Error: err.Error()})
		}
		if inputData.Path == "" {
			return c.JSON(http.StatusBadRequest, schemas.ErrorOutputSchema{Error: ErrPathRequired.Error()})
		}

		report, err := processor.Process(
			c.Request().Context(),
			inputData.Path,
			[]byte(inputData.Content),
		)
		if err != nil {
			c.Logger().Errorf("Failed to lint %s: %v", inputData.Path, err)
			return c.JSON(http.StatusInternalServerError, schemas.ErrorOutputSchema{Error: err.Error()})
		}

		output := schemas.LintOutputSchema{
			ProcessingID: report.ProcessingID,
			Status:       report.Status,
			Messages:     report.Messages,
			Log:          report.Log,
		}

		if reportStorage != nil {
			names, err := types.SaveReports(reportStorage, reportDirectory, []dataclasses.Report{report})
			if err != nil {
				c.Logger().Errorf("Failed to store report for %s: %v", inputData.Path, err)
			} else if len(names) > 0 {
				output.Report = names[0]
			}
		}

		return c.JSON(http.StatusOK, output)
	}
}
