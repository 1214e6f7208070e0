package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Marvin-Brouwer/open-adr/api/schemas"
	"github.com/Marvin-Brouwer/open-adr/types/dataclasses"
	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
)

var ErrReportsDisabled = errors.New("report storage is not configured")

// @Summary List stored lint reports
// @Tags reports
// @Produce json
// @Success 200 {array} string
// @Router /reports [get]
func ReportsHandler(reportStorage interfaces.Storage, reportDirectory string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if reportStorage == nil {
			return c.JSON(http.StatusOK, []string{})
		}

		names, err := reportStorage.ListObjects(reportDirectory)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, schemas.ErrorOutputSchema{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, names)
	}
}

// @Summary Fetch a stored lint report
// @Tags reports
// @Produce json
// @Success 200 {object} dataclasses.Report
// @Failure 404 {object} schemas.ErrorOutputSchema
// @Router /reports/{name} [get]
func ReportHandler(reportStorage interfaces.Storage, reportDirectory string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if reportStorage == nil {
			return c.JSON(http.StatusNotFound, schemas.ErrorOutputSchema{Error: ErrReportsDisabled.Error()})
		}

		location := dataclasses.NewStorageLocation(reportStorage, reportDirectory, c.Param("name"))

		content, err := location.GetObjectBytes()
		if err != nil {
			return c.JSON(http.StatusNotFound, schemas.ErrorOutputSchema{Error: err.Error()})
		}
		return c.JSONBlob(http.StatusOK, content.Bytes())
	}
}
