package helpers

import (
	"reflect"
	"strconv"
	"strings"
)

// SplitJSONPath splits a slash delimited path into segments. Bracketed indexes
// become segments of their own, so "/items[0][1]" yields "items", "0", "1".
func SplitJSONPath(path string) []string {
	segments := []string{}

	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}

		for part != "" {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				segments = append(segments, part)
				break
			}
			if open > 0 {
				segments = append(segments, part[:open])
			}

			closing := strings.IndexByte(part[open:], ']')
			if closing < 0 {
				segments = append(segments, part[open+1:])
				break
			}
			if index := part[open+1 : open+closing]; index != "" {
				segments = append(segments, index)
			}
			part = part[open+closing+1:]
		}
	}

	return segments
}

// TrailJSONPath walks value along path and returns every value visited, the
// path target first and value itself last. It returns an empty trail when any
// segment cannot be resolved.
func TrailJSONPath(value any, path string) []any {
	visited := []any{value}
	current := value

	for _, segment := range SplitJSONPath(path) {
		next, ok := step(current, segment)
		if !ok {
			return []any{}
		}
		visited = append(visited, next)
		current = next
	}

	trail := make([]any, len(visited))
	for i, item := range visited {
		trail[len(visited)-1-i] = item
	}
	return trail
}

func step(current any, segment string) (any, bool) {
	switch typed := current.(type) {
	case nil:
		return nil, false
	case []any:
		index, err := strconv.Atoi(segment)
		if err != nil || index < 0 || index >= len(typed) {
			return nil, false
		}
		return typed[index], true
	case map[string]any:
		next, ok := typed[segment]
		return next, ok
	}

	reflected := reflect.ValueOf(current)
	for reflected.Kind() == reflect.Pointer || reflected.Kind() == reflect.Interface {
		if reflected.IsNil() {
			return nil, false
		}
		reflected = reflected.Elem()
	}

	switch reflected.Kind() {
	case reflect.Slice, reflect.Array:
		index, err := strconv.Atoi(segment)
		if err != nil || index < 0 || index >= reflected.Len() {
			return nil, false
		}
		return reflected.Index(index).Interface(), true
	case reflect.Map:
		if reflected.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		next := reflected.MapIndex(reflect.ValueOf(segment).Convert(reflected.Type().Key()))
		if !next.IsValid() {
			return nil, false
		}
		return next.Interface(), true
	}

	return nil, false
}
