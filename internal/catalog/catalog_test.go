package catalog_test

import (
	"path/filepath"
	"testing"

	"github.com/release-sanity/release-sanity/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		file string

		wantEnvironments []string
		wantErr          bool
	}{
		"Valid catalog file": {file: "catalog.ini", wantEnvironments: []string{"test", "prod", "dev"}},
		"Sparse catalog":     {file: "sparse.ini", wantEnvironments: []string{"test"}},

		"Error on missing file":   {file: "does-not-exist.ini", wantErr: true},
		"Error on malformed file": {file: "malformed.ini", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, err := catalog.Load(filepath.Join("testdata", tc.file))
			if tc.wantErr {
				require.Error(t, err, "Load should have failed")
				return
			}
			require.NoError(t, err, "Load should not have failed")

			assert.Equal(t, tc.wantEnvironments, c.Environments(), "unexpected environments")
		})
	}
}

func TestServices(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		file string
		env  string

		wantServices []catalog.Service
		wantErr      error
	}{
		"Returns services in file order": {
			env: "test",
			wantServices: []catalog.Service{
				{Name: "orders", BaseURL: "http://svc/"},
				{Name: "billing", BaseURL: "http://billing.test.internal"},
				{Name: "ghost", BaseURL: "http://ghost.test.internal"},
				{Name: "mute", BaseURL: "http://mute.test.internal"},
			},
		},
		"Matches environment case insensitively": {
			env: "PROD",
			wantServices: []catalog.Service{
				{Name: "orders", BaseURL: "https://orders.prod.internal"},
			},
		},
		"Empty urls section yields no services": {
			env:          "dev",
			wantServices: []catalog.Service{},
		},

		"Error on environment outside the known set":      {env: "staging", wantErr: catalog.ErrUnknownEnvironment},
		"Error on known environment missing from catalog": {file: "sparse.ini", env: "prod", wantErr: catalog.ErrEnvironmentNotConfigured},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if tc.file == "" {
				tc.file = "catalog.ini"
			}
			c, err := catalog.Load(filepath.Join("testdata", tc.file))
			require.NoError(t, err, "Setup: could not load catalog")

			services, err := c.Services(tc.env)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr, "Services returned the wrong error")
				return
			}
			require.NoError(t, err, "Services should not have failed")

			assert.Equal(t, tc.wantServices, services, "unexpected services")
		})
	}
}

func TestEndpoints(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		service string

		wantEndpoints []string
		wantErr       error
	}{
		"Returns declared endpoints":        {service: "orders", wantEndpoints: []string{"/list", "/detail"}},
		"Single endpoint without separator": {service: "billing", wantEndpoints: []string{"/invoices"}},

		"Error when microservice has no section":        {service: "ghost", wantErr: catalog.ErrServiceNotConfigured},
		"Error when endpoints key is missing":           {service: "mute", wantErr: catalog.ErrNoEndpoints},
		"Error when endpoints value is empty":           {service: "empty", wantErr: catalog.ErrNoEndpoints},
		"Error when endpoints value is only separators": {service: "commas", wantErr: catalog.ErrNoEndpoints},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, err := catalog.Load(filepath.Join("testdata", "catalog.ini"))
			require.NoError(t, err, "Setup: could not load catalog")

			endpoints, err := c.Endpoints(tc.service)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr, "Endpoints returned the wrong error")
				return
			}
			require.NoError(t, err, "Endpoints should not have failed")

			assert.Equal(t, tc.wantEndpoints, endpoints, "unexpected endpoints")
		})
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	c, err := catalog.Load(filepath.Join("testdata", "catalog.ini"))
	require.NoError(t, err, "Setup: could not load catalog")

	endpoints, err := c.Endpoints("orders")
	require.NoError(t, err, "Setup: could not resolve endpoints")
	endpoints[0] = "/mutated"

	again, err := c.Endpoints("orders")
	require.NoError(t, err, "Setup: could not resolve endpoints a second time")
	assert.Equal(t, []string{"/list", "/detail"}, again, "catalog content changed through a returned slice")

	services, err := c.Services("test")
	require.NoError(t, err, "Setup: could not resolve services")
	services[0].BaseURL = "http://mutated/"

	sAgain, err := c.Services("test")
	require.NoError(t, err, "Setup: could not resolve services a second time")
	assert.Equal(t, "http://svc/", sAgain[0].BaseURL, "catalog content changed through a returned service")
}
