package commands_test

import (
	"path/filepath"
	"testing"

	"github.com/release-sanity/release-sanity/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args []string

		wantErr      bool
		wantUsageErr bool
	}{
		"Prints the whole catalog":                       {},
		"Prints a single environment":                    {args: []string{"test"}},
		"Environment name is matched case insensitively": {args: []string{"TEST"}},

		// Error cases
		"Error on an environment outside the known set":    {args: []string{"staging"}, wantErr: true},
		"Error on an environment missing from the catalog": {args: []string{"prod"}, wantErr: true},
		"Error when the catalog file does not exist":       {args: []string{"--catalog", "does-not-exist.ini"}, wantErr: true},
		"Usage error on extra arguments":                   {args: []string{"test", "extra"}, wantErr: true, wantUsageErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			args := []string{"catalog", "--catalog", filepath.Join("testdata", "catalog.ini")}
			args = append(args, tc.args...)
			a, out, _ := newAppForTests(t, args)

			err := a.Run()
			if tc.wantErr {
				require.Error(t, err, "Run should return an error")
			} else {
				require.NoError(t, err, "Run should not return an error")
			}
			if tc.wantUsageErr {
				assert.True(t, a.UsageError(), "Run error should be a usage error")
			} else {
				assert.False(t, a.UsageError(), "Run error should not be a usage error")
			}
			if tc.wantErr {
				return
			}

			want := testutils.LoadWithUpdateFromGolden(t, out.String())
			assert.Equal(t, want, out.String(), "Unexpected catalog output")
		})
	}
}
