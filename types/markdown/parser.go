package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
)

var markdownParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Parse turns a markdown document into a tree of plain maps. Every node has a
// "type", parents have "children" and literals have a "value". Nodes carry a
// "position" with 1-based lines and columns and 0-based offsets into source.
// A leading front matter block becomes the first child, of type "yaml".
func Parse(source []byte) interfaces.Node {
	frontMatter := splitFrontMatter(source)

	masked := source
	if frontMatter != nil {
		masked = maskRange(source, 0, frontMatter.end)
	}

	document := markdownParser.Parser().Parse(text.NewReader(masked))

	c := &converter{
		source: masked,
		lines:  newLineIndex(source),
	}

	children := []any{}
	if frontMatter != nil {
		children = append(children, map[string]any{
			"type":     "yaml",
			"value":    frontMatter.value,
			"position": positionNode(c.lines.position(0, frontMatter.end)),
		})
	}
	for _, child := range c.convertChildren(document) {
		children = append(children, child)
	}

	return map[string]any{
		"type":     "root",
		"children": children,
		"position": positionNode(c.lines.position(0, len(source))),
	}
}

// maskRange blanks out a byte range while keeping line breaks, so offsets
// reported by the markdown parser stay valid for the original source.
func maskRange(source []byte, start, end int) []byte {
	masked := make([]byte, len(source))
	copy(masked, source)
	for i := start; i < end && i < len(masked); i++ {
		if masked[i] != '\n' && masked[i] != '\r' {
			masked[i] = ' '
		}
	}
	return masked
}

type span struct {
	start, end int
}

func union(spans ...*span) *span {
	var result *span
	for _, s := range spans {
		if s == nil {
			continue
		}
		if result == nil {
			copied := *s
			result = &copied
			continue
		}
		if s.start < result.start {
			result.start = s.start
		}
		if s.end > result.end {
			result.end = s.end
		}
	}
	return result
}

type converter struct {
	source []byte
	lines  *lineIndex
}

type converted struct {
	node map[string]any
	span *span
}

func (c *converter) finish(node map[string]any, s *span) converted {
	if s != nil {
		node["position"] = positionNode(c.lines.position(s.start, s.end))
	}
	return converted{node: node, span: s}
}

// textRun merges adjacent text and string nodes into a single text literal.
type textRun struct {
	value  strings.Builder
	span   *span
	active bool
}

func (r *textRun) add(value string, s *span) {
	r.active = true
	r.value.WriteString(value)
	r.span = union(r.span, s)
}

func (c *converter) convertChildren(parent ast.Node) []map[string]any {
	nodes, _ := c.convertChildrenWithSpan(parent)
	return nodes
}

func (c *converter) convertChildrenWithSpan(parent ast.Node) ([]map[string]any, *span) {
	var (
		result []map[string]any
		total  *span
		run    textRun
	)

	flush := func() {
		if !run.active {
			return
		}
		value := run.value.String()
		if parent.Type() == ast.TypeBlock {
			value = strings.TrimRight(value, "\n")
		}
		item := c.finish(map[string]any{
			"type":  "text",
			"value": value,
		}, run.span)
		result = append(result, item.node)
		total = union(total, item.span)
		run = textRun{}
	}

	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			segment := n.Segment
			run.add(string(segment.Value(c.source)), &span{segment.Start, segment.Stop})
			if n.SoftLineBreak() {
				run.add("\n", nil)
			}
			if n.HardLineBreak() {
				flush()
				item := c.finish(map[string]any{"type": "break"}, c.breakSpan(segment.Stop))
				result = append(result, item.node)
				total = union(total, item.span)
			}
			continue
		case *ast.String:
			run.add(string(n.Value), nil)
			continue
		case *extast.TaskCheckBox:
			continue
		}

		flush()
		item := c.convert(child)
		if item.node == nil {
			continue
		}
		result = append(result, item.node)
		total = union(total, item.span)
	}
	flush()

	if result == nil {
		result = []map[string]any{}
	}
	return result, total
}

func childrenValue(nodes []map[string]any) []any {
	children := make([]any, 0, len(nodes))
	for _, node := range nodes {
		children = append(children, node)
	}
	return children
}

func (c *converter) parent(nodeType string, n ast.Node, extra map[string]any) converted {
	children, childSpan := c.convertChildrenWithSpan(n)

	node := map[string]any{
		"type":     nodeType,
		"children": childrenValue(children),
	}
	for key, value := range extra {
		node[key] = value
	}

	return c.finish(node, childSpan)
}

func (c *converter) convert(n ast.Node) converted {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		item := c.parent("paragraph", n, nil)
		return c.finish(item.node, union(c.linesSpan(n), item.span))

	case *ast.Heading:
		item := c.parent("heading", n, map[string]any{"depth": node.Level})
		return c.finish(item.node, union(c.headingSpan(n), item.span))

	case *ast.ThematicBreak:
		return c.finish(map[string]any{"type": "thematicBreak"}, nil)

	case *ast.FencedCodeBlock:
		value := map[string]any{
			"type":  "code",
			"value": c.linesValue(n),
		}
		if language := node.Language(c.source); len(language) > 0 {
			value["lang"] = string(language)
		}
		return c.finish(value, c.fencedCodeSpan(node))

	case *ast.CodeBlock:
		return c.finish(map[string]any{
			"type":  "code",
			"value": c.linesValue(n),
		}, c.linesSpan(n))

	case *ast.HTMLBlock:
		value := c.linesValue(n)
		s := c.linesSpan(n)
		if node.HasClosure() {
			closure := node.ClosureLine
			value = strings.TrimRight(value+"\n"+string(closure.Value(c.source)), "\n")
			s = union(s, &span{closure.Start, c.trimEnd(closure.Start, closure.Stop)})
		}
		return c.finish(map[string]any{
			"type":  "html",
			"value": value,
		}, c.expandToLineStart(s))

	case *ast.Blockquote:
		item := c.parent("blockquote", n, nil)
		return c.finish(item.node, c.expandToLineStart(item.span))

	case *ast.List:
		extra := map[string]any{
			"ordered": node.IsOrdered(),
			"spread":  !node.IsTight,
		}
		if node.IsOrdered() {
			extra["start"] = node.Start
		}
		item := c.parent("list", n, extra)
		return c.finish(item.node, c.expandToLineStart(item.span))

	case *ast.ListItem:
		extra := map[string]any{"spread": false}
		if checkBox := findTaskCheckBox(n); checkBox != nil {
			extra["checked"] = checkBox.IsChecked
		}
		item := c.parent("listItem", n, extra)
		return c.finish(item.node, c.expandToLineStart(item.span))

	case *ast.Emphasis:
		nodeType := "emphasis"
		if node.Level >= 2 {
			nodeType = "strong"
		}
		item := c.parent(nodeType, n, nil)
		return c.finish(item.node, c.expandDelimiters(item.span, node.Level))

	case *extast.Strikethrough:
		item := c.parent("delete", n, nil)
		return c.finish(item.node, c.expandRun(item.span, '~'))

	case *ast.CodeSpan:
		var value bytes.Buffer
		var s *span
		for inner := n.FirstChild(); inner != nil; inner = inner.NextSibling() {
			switch t := inner.(type) {
			case *ast.Text:
				value.Write(t.Segment.Value(c.source))
				s = union(s, &span{t.Segment.Start, t.Segment.Stop})
			case *ast.String:
				value.Write(t.Value)
			}
		}
		return c.finish(map[string]any{
			"type":  "inlineCode",
			"value": value.String(),
		}, c.expandRun(s, '`'))

	case *ast.Link:
		extra := map[string]any{"url": string(node.Destination)}
		if len(node.Title) > 0 {
			extra["title"] = string(node.Title)
		}
		item := c.parent("link", n, extra)
		return c.finish(item.node, c.linkSpan(item.span, 1))

	case *ast.Image:
		_, childSpan := c.convertChildrenWithSpan(n)
		value := map[string]any{
			"type": "image",
			"url":  string(node.Destination),
			"alt":  string(n.Text(c.source)),
		}
		if len(node.Title) > 0 {
			value["title"] = string(node.Title)
		}
		return c.finish(value, c.linkSpan(childSpan, 2))

	case *ast.AutoLink:
		label := string(node.Label(c.source))
		return c.finish(map[string]any{
			"type": "link",
			"url":  string(node.URL(c.source)),
			"children": []any{
				map[string]any{"type": "text", "value": label},
			},
		}, nil)

	case *ast.RawHTML:
		var value bytes.Buffer
		var s *span
		for i := 0; i < node.Segments.Len(); i++ {
			segment := node.Segments.At(i)
			value.Write(segment.Value(c.source))
			s = union(s, &span{segment.Start, segment.Stop})
		}
		return c.finish(map[string]any{
			"type":  "html",
			"value": value.String(),
		}, s)

	case *extast.Table:
		align := make([]any, 0, len(node.Alignments))
		for _, alignment := range node.Alignments {
			if alignment == extast.AlignNone {
				align = append(align, nil)
				continue
			}
			align = append(align, alignment.String())
		}
		return c.parent("table", n, map[string]any{"align": align})

	case *extast.TableHeader, *extast.TableRow:
		item := c.parent("tableRow", n, nil)
		return c.finish(item.node, c.expandToLine(item.span))

	case *extast.TableCell:
		item := c.parent("tableCell", n, nil)
		return c.finish(item.node, union(c.linesSpan(n), item.span))
	}

	nodeType := n.Kind().String()
	if len(nodeType) > 0 {
		nodeType = strings.ToLower(nodeType[:1]) + nodeType[1:]
	}
	return c.parent(nodeType, n, nil)
}

func findTaskCheckBox(item ast.Node) *extast.TaskCheckBox {
	first := item.FirstChild()
	if first == nil {
		return nil
	}
	if checkBox, ok := first.FirstChild().(*extast.TaskCheckBox); ok {
		return checkBox
	}
	return nil
}

func (c *converter) linesValue(n ast.Node) string {
	var value bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		value.Write(segment.Value(c.source))
	}
	return strings.TrimRight(value.String(), "\n")
}

func (c *converter) linesSpan(n ast.Node) *span {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return nil
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	return &span{first.Start, c.trimEnd(first.Start, last.Stop)}
}

func (c *converter) headingSpan(n ast.Node) *span {
	s := c.linesSpan(n)
	if s == nil {
		return nil
	}

	start := c.firstNonSpace(c.lineStart(s.start))
	if start < len(c.source) && c.source[start] == '#' {
		return &span{start, c.trimEnd(start, c.lineEnd(s.end))}
	}

	// Setext headings end on their underline.
	next := c.lineEnd(s.end) + 1
	if next < len(c.source) {
		underline := c.firstNonSpace(next)
		if underline < len(c.source) && (c.source[underline] == '=' || c.source[underline] == '-') {
			return &span{s.start, c.trimEnd(next, c.lineEnd(next))}
		}
	}
	return s
}

func (c *converter) fencedCodeSpan(node *ast.FencedCodeBlock) *span {
	var start, end int
	switch {
	case node.Info != nil:
		start = c.firstNonSpace(c.lineStart(node.Info.Segment.Start))
	case node.Lines().Len() > 0:
		contentStart := c.lineStart(node.Lines().At(0).Start)
		if contentStart == 0 {
			return nil
		}
		start = c.firstNonSpace(c.lineStart(contentStart - 1))
	default:
		return nil
	}

	end = c.lineEnd(start)
	if node.Lines().Len() > 0 {
		end = node.Lines().At(node.Lines().Len() - 1).Stop
	}

	next := end
	if next > 0 && c.source[next-1] != '\n' {
		next = c.lineEnd(next) + 1
	}
	if next < len(c.source) {
		fence := c.firstNonSpace(next)
		if fence < len(c.source) && (c.source[fence] == '`' || c.source[fence] == '~') {
			end = c.lineEnd(fence)
		}
	}

	return &span{start, c.trimEnd(start, end)}
}

func (c *converter) breakSpan(stop int) *span {
	end := c.lineEnd(stop)
	if end < len(c.source) {
		end++
	}
	return &span{stop, end}
}

func (c *converter) expandToLineStart(s *span) *span {
	if s == nil {
		return nil
	}
	return &span{c.firstNonSpace(c.lineStart(s.start)), s.end}
}

func (c *converter) expandToLine(s *span) *span {
	if s == nil {
		return nil
	}
	start := c.firstNonSpace(c.lineStart(s.start))
	return &span{start, c.trimEnd(start, c.lineEnd(s.end))}
}

func (c *converter) expandDelimiters(s *span, count int) *span {
	if s == nil {
		return nil
	}
	start, end := s.start, s.end
	for i := 0; i < count && start > 0 && isDelimiter(c.source[start-1]); i++ {
		start--
	}
	for i := 0; i < count && end < len(c.source) && isDelimiter(c.source[end]); i++ {
		end++
	}
	return &span{start, end}
}

func isDelimiter(b byte) bool {
	return b == '*' || b == '_'
}

func (c *converter) expandRun(s *span, delimiter byte) *span {
	if s == nil {
		return nil
	}
	start, end := s.start, s.end
	for start > 0 && (c.source[start-1] == delimiter || c.source[start-1] == ' ') {
		start--
	}
	for end < len(c.source) && (c.source[end] == delimiter || c.source[end] == ' ') {
		end++
	}
	return &span{start, end}
}

// linkSpan widens a label range to the full link or image syntax.
func (c *converter) linkSpan(label *span, opening int) *span {
	if label == nil {
		return nil
	}
	start := label.start - opening
	if start < 0 {
		start = 0
	}

	end := label.end
	if end < len(c.source) && c.source[end] == ']' {
		end++
	}
	if end < len(c.source) {
		var closing byte
		switch c.source[end] {
		case '(':
			closing = ')'
		case '[':
			closing = ']'
		}
		if closing != 0 {
			if index := bytes.IndexByte(c.source[end:], closing); index >= 0 {
				end += index + 1
			}
		}
	}
	return &span{start, end}
}

func (c *converter) lineStart(offset int) int {
	if offset > len(c.source) {
		offset = len(c.source)
	}
	for offset > 0 && c.source[offset-1] != '\n' {
		offset--
	}
	return offset
}

func (c *converter) lineEnd(offset int) int {
	for offset < len(c.source) && c.source[offset] != '\n' {
		offset++
	}
	return offset
}

func (c *converter) firstNonSpace(offset int) int {
	for offset < len(c.source) && (c.source[offset] == ' ' || c.source[offset] == '\t') {
		offset++
	}
	return offset
}

func (c *converter) trimEnd(start, stop int) int {
	if stop > len(c.source) {
		stop = len(c.source)
	}
	for stop > start {
		switch c.source[stop-1] {
		case '\n', '\r', ' ', '\t':
			stop--
			continue
		}
		break
	}
	return stop
}
