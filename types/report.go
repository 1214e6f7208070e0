package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Marvin-Brouwer/open-adr/types/dataclasses"
	"github.com/Marvin-Brouwer/open-adr/types/helpers"
	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
)

const (
	REPORT_FORMAT_TEXT = "text"
	REPORT_FORMAT_JSON = "json"
)

var ReportFormats = []string{REPORT_FORMAT_TEXT, REPORT_FORMAT_JSON}

// RenderReports writes reports in the requested format. sources maps document
// paths to their content and is used to quote the offending line.
func RenderReports(format string, reports []dataclasses.Report, sources map[string][]byte) ([]byte, error) {
	switch format {
	case REPORT_FORMAT_JSON:
		return json.MarshalIndent(reports, "", "  ")
	case REPORT_FORMAT_TEXT, "":
		var buffer bytes.Buffer
		for _, report := range reports {
			buffer.WriteString(FormatReportText(report, sources[report.Path]))
		}
		return buffer.Bytes(), nil
	}

	return nil, fmt.Errorf(
		"unknown report format %q, expected one of %s",
		format,
		helpers.GetListAsQuotedString(ReportFormats),
	)
}

// FormatReportText renders one report the way compilers print errors:
// path:line:column, the message, and the source line with a caret.
func FormatReportText(report dataclasses.Report, source []byte) string {
	if len(report.Messages) == 0 {
		return ""
	}

	lines := strings.Split(string(source), "\n")

	var sb strings.Builder
	for _, message := range report.Messages {
		line, column := 0, 0
		if message.Place != nil {
			line, column = message.Place.Start.Line, message.Place.Start.Column
		}

		sb.WriteString(fmt.Sprintf("%s:%d:%d: %s: %s", report.Path, line, column, message.Level, message.Message))
		if message.RuleID != "" {
			sb.WriteString(fmt.Sprintf(" [%s]", message.RuleID))
		}
		sb.WriteString("\n")

		if line > 0 && line <= len(lines) {
			sb.WriteString(formatSourceLine(lines[line-1], line, column))
		}
		if message.Note != "" {
			for _, noteLine := range strings.Split(message.Note, "\n") {
				sb.WriteString(fmt.Sprintf("       = %s\n", noteLine))
			}
		}
	}

	return sb.String()
}

func formatSourceLine(line string, lineNumber int, column int) string {
	line = strings.TrimRight(line, "\r")
	rendered := strings.ReplaceAll(line, "\t", "    ")

	visualColumn := column
	if column > 1 && column-1 <= len(line) {
		visualColumn = len(strings.ReplaceAll(line[:column-1], "\t", "    ")) + 1
	}
	if visualColumn < 1 {
		visualColumn = 1
	}
	if visualColumn > len(rendered)+1 {
		visualColumn = len(rendered) + 1
	}

	return fmt.Sprintf("> %4d | %s\n       | %s^\n", lineNumber, rendered, strings.Repeat(" ", visualColumn-1))
}

// SaveReports stores every report as JSON, named after the processing id.
func SaveReports(storage interfaces.Storage, directory string, reports []dataclasses.Report) ([]string, error) {
	names := make([]string, 0, len(reports))
	for _, report := range reports {
		content, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return names, err
		}

		location := dataclasses.NewStorageLocation(
			storage,
			directory,
			fmt.Sprintf("%s-%s.json", helpers.HashInput(report.Path)[:12], report.ProcessingID),
		)
		name, err := location.PutObjectBytes(bytes.NewBuffer(content))
		if err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}
