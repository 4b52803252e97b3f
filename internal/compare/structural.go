package compare

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// maxDepth bounds the structural recursion; subtrees below it are not compared.
const maxDepth = 10

// maxValueLength bounds formatted values in reports.
const maxValueLength = 50

// structuralDiff recursively compares two parsed JSON values and reports
// path-qualified mismatches. Keys are visited in sorted order so that the
// report is deterministic for identical inputs.
func structuralDiff(path string, expected, actual any, ignored ignoreSet, depth int) []Difference {
	if depth > maxDepth {
		return nil
	}
	if ignored.matches("/" + path) {
		return nil
	}

	expectedMap, okEM := expected.(map[string]any)
	actualMap, okAM := actual.(map[string]any)
	expectedArr, okEA := expected.([]any)
	actualArr, okAA := actual.([]any)

	switch {
	case okEM && okAM:
		return compareObjects(path, expectedMap, actualMap, ignored, depth)
	case okEA && okAA:
		return compareArrays(path, expectedArr, actualArr)
	default:
		if reflect.DeepEqual(expected, actual) {
			return nil
		}
		return []Difference{{
			Kind:     KindValueChanged,
			Path:     path,
			Expected: formatValue(expected, maxValueLength),
			Actual:   formatValue(actual, maxValueLength),
		}}
	}
}

func compareObjects(path string, expected, actual map[string]any, ignored ignoreSet, depth int) []Difference {
	var diffs []Difference

	for _, key := range slices.Sorted(maps.Keys(expected)) {
		childPath := buildPath(path, key)
		actualVal, ok := actual[key]
		if !ok {
			if ignored.matches("/" + childPath) {
				continue
			}
			diffs = append(diffs, Difference{
				Kind:     KindValueRemoved,
				Path:     childPath,
				Expected: formatValue(expected[key], maxValueLength),
			})
			continue
		}
		diffs = append(diffs, structuralDiff(childPath, expected[key], actualVal, ignored, depth+1)...)
	}

	for _, key := range slices.Sorted(maps.Keys(actual)) {
		if _, ok := expected[key]; ok {
			continue
		}
		childPath := buildPath(path, key)
		if ignored.matches("/" + childPath) {
			continue
		}
		diffs = append(diffs, Difference{
			Kind:   KindValueAdded,
			Path:   childPath,
			Actual: formatValue(actual[key], maxValueLength),
		})
	}

	return diffs
}

// compareArrays matches elements order-independently: a live service is free
// to return a list reordered, and only genuinely added or removed elements
// are worth reporting. The quadratic scan is fine for fixture-sized arrays.
func compareArrays(path string, expected, actual []any) []Difference {
	var diffs []Difference
	if len(expected) != len(actual) {
		diffs = append(diffs, Difference{
			Kind:        KindArrayLengthChanged,
			Path:        path,
			ExpectedLen: len(expected),
			ActualLen:   len(actual),
		})
	}

	matchedExpected := make([]bool, len(expected))
	matchedActual := make([]bool, len(actual))
	for i, ev := range expected {
		for j, av := range actual {
			if !matchedActual[j] && reflect.DeepEqual(ev, av) {
				matchedExpected[i] = true
				matchedActual[j] = true
				break
			}
		}
	}

	for i, matched := range matchedExpected {
		if matched {
			continue
		}
		diffs = append(diffs, Difference{
			Kind:     KindArrayElementRemoved,
			Path:     fmt.Sprintf("%s[*]", path),
			Expected: formatValue(expected[i], maxValueLength),
		})
	}
	for j, matched := range matchedActual {
		if matched {
			continue
		}
		diffs = append(diffs, Difference{
			Kind:   KindArrayElementAdded,
			Path:   fmt.Sprintf("%s[*]", path),
			Actual: formatValue(actual[j], maxValueLength),
		})
	}

	return diffs
}

func buildPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "/" + key
}

// formatValue renders a JSON value for a report, keeping composites and long
// scalars readable.
func formatValue(value any, maxLength int) string {
	switch v := value.(type) {
	case string:
		if len(v) > maxLength {
			return fmt.Sprintf(`"%s..."`, v[:maxLength])
		}
		return fmt.Sprintf(`"%s"`, v)
	case []any:
		return fmt.Sprintf("Array[%d]", len(v))
	case map[string]any:
		return fmt.Sprintf("Object{%d keys}", len(v))
	default:
		s := fmt.Sprintf("%v", v)
		if len(s) > maxLength {
			return s[:maxLength] + "..."
		}
		return s
	}
}

// ignoreSet holds slash-rooted paths excluded from structural comparison.
type ignoreSet map[string]struct{}

// matches reports whether current is ignored, either exactly or because an
// ignored path is one of its ancestors. The bare root "/" never prunes.
func (s ignoreSet) matches(current string) bool {
	for ignored := range s {
		if ignored == "/" {
			continue
		}
		ignored = strings.TrimSuffix(ignored, "/")
		if current == ignored || strings.HasPrefix(current, ignored+"/") {
			return true
		}
	}
	return false
}
