package commands_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/release-sanity/release-sanity/cmd/release-sanity/commands"
	"github.com/release-sanity/release-sanity/internal/testutils"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Keep command output stable regardless of the terminal running the tests.
	color.NoColor = true

	os.Exit(m.Run())
}

// newAppForTests returns an app set up to run args, with its output and error
// streams captured in the returned buffers.
func newAppForTests(t *testing.T, args []string) (a *commands.App, out, errOut *bytes.Buffer) {
	t.Helper()

	a, err := commands.New()
	require.NoError(t, err, "Setup: could not create app")

	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	a.SetOutput(out)
	a.SetErrOutput(errOut)
	a.SetArgs(args)
	return a, out, errOut
}

// newCatalogForTests writes a catalog file, filling the base URL placeholder
// of content with url.
func newCatalogForTests(t *testing.T, content, url string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.ini")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(content, url)), 0600), "Setup: could not write catalog file")
	return path
}

// newFixturesForTests copies the fixture tree to a temporary directory.
func newFixturesForTests(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, testutils.CopyDir(t, filepath.Join("testdata", "fixtures"), dir), "Setup: could not copy fixtures dir")
	return dir
}

// startServerForTests serves canned JSON responses by endpoint path, recording
// the requested paths in order.
func startServerForTests(t *testing.T, responses map[string]string, paths *[]string) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*paths = append(*paths, r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		body, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			body = "{}"
		}
		fmt.Fprintln(w, body)
	}))
	t.Cleanup(func() { ts.Close() })
	return ts
}
