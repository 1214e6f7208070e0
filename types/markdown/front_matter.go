package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
)

const (
	FRONT_MATTER_FENCE = "---"
	FRONT_MATTER_TYPE  = "yaml"

	MESSAGE_NO_FRONT_MATTER = "No frontmatter data found"
)

var yamlErrorLine = regexp.MustCompile(`line (\d+)`)

type frontMatterBlock struct {
	value string
	end   int
}

// splitFrontMatter finds a fenced YAML block at the very start of source.
func splitFrontMatter(source []byte) *frontMatterBlock {
	firstLineEnd := bytes.IndexByte(source, '\n')
	if firstLineEnd < 0 {
		return nil
	}
	if strings.TrimRight(string(source[:firstLineEnd]), "\r") != FRONT_MATTER_FENCE {
		return nil
	}

	contentStart := firstLineEnd + 1
	lineStart := contentStart
	for lineStart <= len(source) {
		lineEnd := bytes.IndexByte(source[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(source)
		} else {
			lineEnd += lineStart
		}

		line := strings.TrimRight(string(source[lineStart:lineEnd]), " \t\r")
		if line == FRONT_MATTER_FENCE {
			value := string(source[contentStart:lineStart])
			value = strings.TrimSuffix(value, "\n")
			value = strings.TrimSuffix(value, "\r")
			return &frontMatterBlock{
				value: value,
				end:   lineStart + len(FRONT_MATTER_FENCE),
			}
		}

		if lineEnd >= len(source) {
			break
		}
		lineStart = lineEnd + 1
	}

	return nil
}

// FrontMatterError reports a header that is missing or cannot be read.
type FrontMatterError struct {
	Message  string
	Node     interfaces.Node
	Position *interfaces.Position
	Err      error
}

func (e *FrontMatterError) Error() string {
	return e.Message
}

func (e *FrontMatterError) Unwrap() error {
	return e.Err
}

// FrontMatter is the decoded header of a document.
type FrontMatter struct {
	Node interfaces.Node
	Data map[string]any

	mapping *yaml.Node
}

// Scan collects every node of the given type, in document order.
func Scan(tree interfaces.Node, nodeType string) []interfaces.Node {
	var results []interfaces.Node

	var visit func(node interfaces.Node)
	visit = func(node interfaces.Node) {
		if node == nil {
			return
		}
		if node["type"] == nodeType {
			results = append(results, node)
		}
		children, _ := node["children"].([]any)
		for _, child := range children {
			if childNode, ok := child.(map[string]any); ok {
				visit(childNode)
			}
		}
	}
	visit(tree)

	return results
}

// ReadFrontMatter decodes the first yaml node of the tree. The returned error is
// always a *FrontMatterError.
func ReadFrontMatter(tree interfaces.Node) (*FrontMatter, error) {
	var yamlNode interfaces.Node
	if nodes := Scan(tree, FRONT_MATTER_TYPE); len(nodes) > 0 {
		yamlNode = nodes[0]
	}

	value, _ := yamlNode["value"].(string)
	if value == "" {
		return nil, &FrontMatterError{
			Message:  MESSAGE_NO_FRONT_MATTER,
			Node:     tree,
			Position: PositionOf(tree),
		}
	}
	if strings.TrimSpace(value) == "" {
		return nil, noFrontMatterAt(yamlNode)
	}

	var document yaml.Node
	if err := yaml.Unmarshal([]byte(value), &document); err != nil {
		return nil, yamlError(yamlNode, err)
	}
	if len(document.Content) == 0 || document.Content[0].Kind != yaml.MappingNode {
		return nil, noFrontMatterAt(yamlNode)
	}

	data := map[string]any{}
	if err := document.Content[0].Decode(&data); err != nil {
		return nil, yamlError(yamlNode, err)
	}

	return &FrontMatter{
		Node:    yamlNode,
		Data:    data,
		mapping: document.Content[0],
	}, nil
}

func noFrontMatterAt(yamlNode interfaces.Node) *FrontMatterError {
	return &FrontMatterError{
		Message:  MESSAGE_NO_FRONT_MATTER,
		Node:     yamlNode,
		Position: PositionOf(yamlNode),
	}
}

// yamlError anchors a parser error at the reported line, relative to the header.
func yamlError(yamlNode interfaces.Node, err error) *FrontMatterError {
	message := err.Error()

	var typeError *yaml.TypeError
	if errors.As(err, &typeError) {
		message = strings.Join(typeError.Errors, "\n")
	}
	message = strings.TrimPrefix(message, "yaml: ")

	position := PositionOf(yamlNode)
	if match := yamlErrorLine.FindStringSubmatch(message); match != nil && position != nil {
		line, _ := strconv.Atoi(match[1])
		documentLine := position.Start.Line + line

		value, _ := yamlNode["value"].(string)
		lines := strings.Split(value, "\n")
		offset := position.Start.Offset
		if line >= 1 && line <= len(lines) {
			offset = headerLineOffset(position, lines, line)
		}

		position = &interfaces.Position{
			Start: interfaces.Point{Line: documentLine, Column: 1, Offset: offset},
			End:   interfaces.Point{Line: documentLine, Column: 2, Offset: offset + 1},
		}
	}

	return &FrontMatterError{
		Message:  fmt.Sprintf("Couldn't read frontmatter data: %s", message),
		Node:     yamlNode,
		Position: position,
		Err:      err,
	}
}

// ValuePosition locates the value of a top level header key in the document.
func (f *FrontMatter) ValuePosition(key string) *interfaces.Position {
	header := PositionOf(f.Node)
	if header == nil || f.mapping == nil {
		return header
	}

	for i := 0; i+1 < len(f.mapping.Content); i += 2 {
		if f.mapping.Content[i].Value != key {
			continue
		}
		value := f.mapping.Content[i+1]

		lines := strings.Split(f.Node["value"].(string), "\n")
		if value.Line < 1 || value.Line > len(lines) {
			return header
		}

		offset := headerLineOffset(header, lines, value.Line)
		lineText := strings.TrimRight(lines[value.Line-1], " \t\r")
		if value.Column-1 > len(lineText) {
			return header
		}

		line := header.Start.Line + value.Line
		return &interfaces.Position{
			Start: interfaces.Point{Line: line, Column: value.Column, Offset: offset + value.Column - 1},
			End:   interfaces.Point{Line: line, Column: len(lineText) + 1, Offset: offset + len(lineText)},
		}
	}

	return header
}

// headerLineOffset is the document offset of a 1-based line of the header content.
func headerLineOffset(header *interfaces.Position, lines []string, line int) int {
	// The header content starts on the line after the opening fence.
	offset := header.Start.Offset + len(FRONT_MATTER_FENCE) + 1
	for _, text := range lines[:line-1] {
		offset += len(text) + 1
	}
	return offset
}
