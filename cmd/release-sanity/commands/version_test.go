package commands_test

import (
	"testing"

	"github.com/release-sanity/release-sanity/internal/constants"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	a, out, _ := newAppForTests(t, []string{"version"})

	err := a.Run()
	require.NoError(t, err, "Run should not return an error")
	require.Equal(t, constants.CmdName+"\t"+constants.Version+"\n", out.String(), "Unexpected version output")
}
