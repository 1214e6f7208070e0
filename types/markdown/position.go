package markdown

import (
	"sort"

	"github.com/Marvin-Brouwer/open-adr/types/helpers"
	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
)

// lineIndex maps byte offsets to 1-based line and column numbers.
type lineIndex struct {
	starts []int
	size   int
}

func newLineIndex(source []byte) *lineIndex {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts, size: len(source)}
}

func (l *lineIndex) point(offset int) interfaces.Point {
	if offset < 0 {
		offset = 0
	}
	if offset > l.size {
		offset = l.size
	}

	line := sort.Search(len(l.starts), func(i int) bool {
		return l.starts[i] > offset
	}) - 1

	return interfaces.Point{
		Line:   line + 1,
		Column: offset - l.starts[line] + 1,
		Offset: offset,
	}
}

func (l *lineIndex) position(start, end int) interfaces.Position {
	return interfaces.Position{
		Start: l.point(start),
		End:   l.point(end),
	}
}

func pointNode(point interfaces.Point) map[string]any {
	return map[string]any{
		"line":   point.Line,
		"column": point.Column,
		"offset": point.Offset,
	}
}

func positionNode(position interfaces.Position) map[string]any {
	return map[string]any{
		"start": pointNode(position.Start),
		"end":   pointNode(position.End),
	}
}

// PositionOf reads the source range of a tree node, nil when the node has none.
func PositionOf(node interfaces.Node) *interfaces.Position {
	if node == nil {
		return nil
	}

	start, ok := pointOf(node, "position.start")
	if !ok {
		return nil
	}
	end, ok := pointOf(node, "position.end")
	if !ok {
		return nil
	}

	return &interfaces.Position{Start: start, End: end}
}

func pointOf(node interfaces.Node, path string) (interfaces.Point, bool) {
	line, err := helpers.GetValue[int](node, path+".line")
	if err != nil {
		return interfaces.Point{}, false
	}
	column, err := helpers.GetValue[int](node, path+".column")
	if err != nil {
		return interfaces.Point{}, false
	}
	offset, err := helpers.GetValue[int](node, path+".offset")
	if err != nil {
		return interfaces.Point{}, false
	}

	return interfaces.Point{Line: line, Column: column, Offset: offset}, true
}
