package compare

import (
	"encoding/json"
	"fmt"
	"strings"
)

// lineDiff pairs the canonical serialized forms of both values line by line,
// up to the length of the shorter one, and reports every position where the
// lines are not byte-identical. Only the actual-side line is carried in the
// report, and extra trailing lines in the longer text are never compared.
// Both behaviors are contractual: recorded fixtures and operator habits
// depend on them.
func lineDiff(expected, actual any) ([]Difference, error) {
	actualText, err := serialize(actual)
	if err != nil {
		return nil, fmt.Errorf("could not serialize actual value: %v", err)
	}
	expectedText, err := serialize(expected)
	if err != nil {
		return nil, fmt.Errorf("could not serialize expected value: %v", err)
	}

	actualLines := strings.Split(actualText, "\n")
	expectedLines := strings.Split(expectedText, "\n")

	var diffs []Difference
	for i := range min(len(actualLines), len(expectedLines)) {
		if actualLines[i] == expectedLines[i] {
			continue
		}
		diffs = append(diffs, Difference{
			Kind:   KindLine,
			Line:   i + 1,
			Actual: actualLines[i],
		})
	}
	return diffs, nil
}

// serialize renders v in the canonical pretty-printed form the line mode is
// defined over: 4-space indentation, keys sorted, newline-separated.
func serialize(v any) (string, error) {
	text, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return "", err
	}
	return string(text), nil
}
