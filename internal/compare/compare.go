// Package compare is the implementation of the comparison engine, the core of
// the sanity check: given an expected and an actual JSON value it reports the
// differences between them.
//
// Two modes are supported. Structural mode (the default) walks the parsed
// values and reports path-qualified mismatches. Line mode reproduces the
// historical behavior of diffing the canonical serialized texts positionally,
// including its quirks: only the actual-side line is reported, and trailing
// extra lines in the longer text are never compared.
package compare

import (
	"fmt"
	"strings"
)

// Kind identifies what a Difference describes.
type Kind string

// The difference kinds. KindLine is the only kind produced in line mode;
// the others are produced by structural comparison.
const (
	KindLine                Kind = "line"
	KindValueChanged        Kind = "value-changed"
	KindValueAdded          Kind = "value-added"
	KindValueRemoved        Kind = "value-removed"
	KindArrayLengthChanged  Kind = "array-length-changed"
	KindArrayElementAdded   Kind = "array-element-added"
	KindArrayElementRemoved Kind = "array-element-removed"
)

// Difference is one unit of mismatch between an expected and an actual JSON value.
type Difference struct {
	Kind Kind `json:"kind"`

	// Path qualifies where in the document the mismatch sits, as slash-joined
	// keys ("meta/duration", "items[*]"). Empty at the document root and in
	// line mode.
	Path string `json:"path,omitempty"`

	// Line is the 1-based position of a mismatched line. Line mode only.
	Line int `json:"line,omitempty"`

	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`

	// Array lengths, set when Kind is KindArrayLengthChanged.
	ExpectedLen int `json:"expectedLen,omitempty"`
	ActualLen   int `json:"actualLen,omitempty"`
}

// String renders the difference as a single report line.
//
// A line-kind difference renders as the bare actual-side line, exactly as
// serialized; reports built on it depend on that exactness.
func (d Difference) String() string {
	path := d.Path
	if path == "" {
		path = "/"
	}

	switch d.Kind {
	case KindLine:
		return d.Actual
	case KindValueChanged:
		return fmt.Sprintf("changed value at '%s': expected %s, got %s", path, d.Expected, d.Actual)
	case KindValueAdded:
		return fmt.Sprintf("added value at '%s': %s", path, d.Actual)
	case KindValueRemoved:
		return fmt.Sprintf("removed value at '%s': was %s", path, d.Expected)
	case KindArrayLengthChanged:
		return fmt.Sprintf("array length changed at '%s': expected %d, got %d", path, d.ExpectedLen, d.ActualLen)
	case KindArrayElementAdded:
		return fmt.Sprintf("array element added at '%s': %s", path, d.Actual)
	case KindArrayElementRemoved:
		return fmt.Sprintf("array element removed at '%s': was %s", path, d.Expected)
	default:
		return fmt.Sprintf("%s at '%s'", d.Kind, path)
	}
}

// Mode selects the comparison algorithm.
type Mode string

const (
	// ModeStructural compares the parsed values recursively with path-qualified findings.
	ModeStructural Mode = "structural"
	// ModeLine compares the canonical serialized texts line by line.
	ModeLine Mode = "line"
)

// ParseMode returns the Mode named by s, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeStructural, ModeLine:
		return m, nil
	default:
		return "", fmt.Errorf("unknown comparison mode %q", s)
	}
}

type options struct {
	mode   Mode
	ignore ignoreSet
}

// Options represents an optional function to override Values default behavior.
type Options func(*options)

// WithMode selects the comparison mode. The default is ModeStructural.
func WithMode(m Mode) Options {
	return func(o *options) {
		o.mode = m
	}
}

// WithIgnoredPaths excludes the given JSON paths, and everything below them,
// from structural comparison. Paths are slash-separated from the document
// root; a missing leading slash is added. Line mode ignores them.
func WithIgnoredPaths(paths []string) Options {
	return func(o *options) {
		for _, p := range paths {
			if !strings.HasPrefix(p, "/") {
				p = "/" + p
			}
			o.ignore[p] = struct{}{}
		}
	}
}

// Values compares an actual JSON value against the expected one and returns
// the differences found, empty when the two match. Each call owns its own
// buffers, so concurrent calls do not interfere.
//
// The error is only non-nil in line mode, when a value cannot be serialized;
// values decoded from JSON always serialize.
func Values(expected, actual any, args ...Options) ([]Difference, error) {
	opts := options{
		mode:   ModeStructural,
		ignore: make(ignoreSet),
	}
	for _, opt := range args {
		opt(&opts)
	}

	if opts.mode == ModeLine {
		return lineDiff(expected, actual)
	}
	return structuralDiff("", expected, actual, opts.ignore, 0), nil
}
