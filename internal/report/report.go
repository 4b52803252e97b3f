// Package report renders run findings for the operator.
//
// Two renderers implement checker.Reporter: Text streams colorized lines as
// the run progresses, JSON holds everything back and prints the run summary
// as one machine-readable document.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/release-sanity/release-sanity/internal/checker"
)

// DiffMarker is the fixed prefix of every reported difference line.
const DiffMarker = "Found difference: "

// Format selects how run findings are rendered.
type Format string

const (
	// FormatText renders colorized human-readable lines.
	FormatText Format = "text"
	// FormatJSON renders the run summary as one indented JSON document.
	FormatJSON Format = "json"
)

// ParseFormat returns the Format named by s, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// New returns a reporter rendering the given format to out.
func New(format Format, out io.Writer) (checker.Reporter, error) {
	switch format {
	case FormatText:
		return NewText(out), nil
	case FormatJSON:
		return NewJSON(out), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Text renders findings as human-readable lines as the run progresses.
// Differences are red, endpoint headers and skips yellow, the summary bold;
// colors are dropped automatically when not writing to a terminal.
type Text struct {
	out io.Writer

	red    func(a ...any) string
	yellow func(a ...any) string
	bold   func(a ...any) string
}

// NewText returns a Text reporter writing to out.
func NewText(out io.Writer) *Text {
	return &Text{
		out: out,

		red:    color.New(color.FgRed).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		bold:   color.New(color.Bold).SprintFunc(),
	}
}

// EndpointChecked prints the differences of one endpoint, with a header
// identifying it. Endpoints that match their fixture print nothing;
// endpoints a dry run left unchecked print what would have been called.
func (t *Text) EndpointChecked(res checker.EndpointResult) {
	if !res.Checked {
		fmt.Fprintln(t.out, t.yellow(fmt.Sprintf("Would check %s %s (%s)", res.Service, res.Endpoint, res.URL)))
		return
	}
	if len(res.Differences) == 0 {
		return
	}

	fmt.Fprintln(t.out, t.yellow(fmt.Sprintf("Differences detected for %s %s (%s)", res.Service, res.Endpoint, res.URL)))
	for _, d := range res.Differences {
		fmt.Fprintln(t.out, t.red(DiffMarker+d.String()))
	}
}

// ServiceSkipped prints the microservice left out of the run and why.
func (t *Text) ServiceSkipped(skip checker.Skip) {
	fmt.Fprintln(t.out, t.yellow(fmt.Sprintf("Skipped %s: %s", skip.Service, skip.Reason)))
}

// Summarize prints the final run summary line.
func (t *Text) Summarize(s checker.Summary) {
	fmt.Fprintln(t.out, t.bold(fmt.Sprintf("Checked %d of %d endpoints: %d with differences, %d services skipped",
		s.Checked, len(s.Results), s.Changed, len(s.Skipped))))
}

// JSON renders the run summary as one indented JSON document once the run
// completes. Nothing is printed while the run progresses, so stdout stays a
// single parseable value.
type JSON struct {
	out io.Writer
}

// NewJSON returns a JSON reporter writing to out.
func NewJSON(out io.Writer) *JSON {
	return &JSON{out: out}
}

// EndpointChecked implements checker.Reporter. JSON output is not streamed.
func (j *JSON) EndpointChecked(checker.EndpointResult) {}

// ServiceSkipped implements checker.Reporter. Skips are part of the summary.
func (j *JSON) ServiceSkipped(checker.Skip) {}

// Summarize prints the whole summary, results and skips included.
func (j *JSON) Summarize(s checker.Summary) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		// A summary is plain data and always marshals; keep the run alive if not.
		fmt.Fprintf(j.out, `{"error": %q}`+"\n", err.Error())
		return
	}
	fmt.Fprintln(j.out, string(data))
}
