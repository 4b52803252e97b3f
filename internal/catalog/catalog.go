// Package catalog is the implementation of the endpoint catalog component.
// The catalog is the immutable view of the INI configuration which maps environments
// to microservices and microservices to the endpoint paths to check.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/release-sanity/release-sanity/internal/constants"
	"github.com/ubuntu/decorate"
	"gopkg.in/ini.v1"
)

var (
	// ErrUnknownEnvironment is returned when the requested environment is not in the known set.
	ErrUnknownEnvironment = fmt.Errorf("unknown environment")

	// ErrEnvironmentNotConfigured is returned when a known environment has no urls section in the catalog file.
	ErrEnvironmentNotConfigured = fmt.Errorf("environment not configured in catalog")

	// ErrServiceNotConfigured is returned when a microservice has no section of its own in the catalog file.
	ErrServiceNotConfigured = fmt.Errorf("microservice not configured in catalog")

	// ErrNoEndpoints is returned when a microservice section declares no usable endpoints.
	ErrNoEndpoints = fmt.Errorf("no endpoints declared")
)

// Service is a microservice entry: a name paired with the base URL it is reachable
// at in a given environment.
type Service struct {
	Name    string
	BaseURL string
}

// Catalog is an endpoint catalog loaded from an INI file.
// It is read-only after Load and safe to share for the lifetime of a run.
type Catalog struct {
	environments []string
	services     map[string][]Service
	endpoints    map[string][]string
	declared     map[string]bool
}

// Load parses the catalog file at path into an immutable Catalog.
//
// Sections named urls-<environment> list the microservices of that environment,
// one key per microservice with the base URL as value. Every other section is
// treated as a microservice section, whose endpoints key holds a comma-separated
// list of endpoint paths.
func Load(path string) (c Catalog, err error) {
	defer decorate.OnError(&err, "could not load catalog %s", path)

	cfg, err := ini.Load(path)
	if err != nil {
		return Catalog{}, err
	}

	c = Catalog{
		services:  make(map[string][]Service),
		endpoints: make(map[string][]string),
		declared:  make(map[string]bool),
	}

	for _, sec := range cfg.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection {
			continue
		}

		if env, ok := strings.CutPrefix(name, constants.EnvSectionPrefix); ok {
			services := make([]Service, 0, len(sec.Keys()))
			for _, key := range sec.Keys() {
				services = append(services, Service{Name: key.Name(), BaseURL: key.String()})
			}
			c.services[env] = services
			c.environments = append(c.environments, env)
			continue
		}

		c.declared[name] = true
		if !sec.HasKey(constants.EndpointsKey) {
			continue
		}
		var endpoints []string
		for _, e := range sec.Key(constants.EndpointsKey).Strings(",") {
			if e == "" {
				continue
			}
			endpoints = append(endpoints, e)
		}
		c.endpoints[name] = endpoints
	}

	return c, nil
}

// Environments returns the environments that have a urls section in the catalog file,
// in file order.
func (c Catalog) Environments() []string {
	return slices.Clone(c.environments)
}

// Services returns the microservice entries of the given environment, in file order.
//
// The environment is matched case-insensitively against the known environment set;
// a name outside the set returns ErrUnknownEnvironment, a known name without a urls
// section returns ErrEnvironmentNotConfigured.
func (c Catalog) Services(env string) ([]Service, error) {
	env = strings.ToLower(env)
	if !slices.Contains(constants.KnownEnvironments, env) {
		return nil, fmt.Errorf("%q: %w", env, ErrUnknownEnvironment)
	}

	services, ok := c.services[env]
	if !ok {
		return nil, fmt.Errorf("%q: %w", env, ErrEnvironmentNotConfigured)
	}
	return slices.Clone(services), nil
}

// Endpoints returns the endpoint paths declared by the given microservice.
//
// A microservice without a section returns ErrServiceNotConfigured; a section
// without an endpoints key, or one whose value holds no usable path, returns
// ErrNoEndpoints. Those are the failures the orchestrator turns into skips.
func (c Catalog) Endpoints(service string) ([]string, error) {
	if !c.declared[service] {
		return nil, fmt.Errorf("%q: %w", service, ErrServiceNotConfigured)
	}

	endpoints := c.endpoints[service]
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("%q: %w", service, ErrNoEndpoints)
	}
	return slices.Clone(endpoints), nil
}
