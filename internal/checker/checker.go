// Package checker is the implementation of the orchestrator component.
// The checker drives one full sanity run: it walks the catalog of the selected
// environment and, per endpoint, loads the fixture pair, sends the recorded
// request and compares the live response against the expected one.
package checker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/release-sanity/release-sanity/internal/catalog"
	"github.com/release-sanity/release-sanity/internal/compare"
	"github.com/release-sanity/release-sanity/internal/fixture"
	"github.com/ubuntu/decorate"
)

// Fixtures is an interface for loading the fixture pair of an endpoint.
type Fixtures interface {
	Load(endpoint string) (fixture.Pair, error)
}

// Transport is an interface for posting a JSON body and getting the parsed JSON response.
type Transport interface {
	Send(ctx context.Context, url string, body any) (any, error)
}

// Reporter is the sink run findings are streamed to as the run progresses.
type Reporter interface {
	// EndpointChecked is called once per endpoint, in catalog order.
	EndpointChecked(EndpointResult)
	// ServiceSkipped is called for every microservice left out of the run.
	ServiceSkipped(Skip)
	// Summarize is called once, after the last endpoint, with the completed summary.
	Summarize(Summary)
}

// EndpointResult is the outcome of one endpoint check.
type EndpointResult struct {
	Service  string `json:"service"`
	Endpoint string `json:"endpoint"`
	URL      string `json:"url"`

	// Checked reports whether the endpoint was actually called and compared.
	// False on dry runs, which stop after validating the fixtures.
	Checked bool `json:"checked"`

	Differences []compare.Difference `json:"differences,omitempty"`
}

// Skip records a microservice left out of a run, and why.
type Skip struct {
	Service string `json:"service"`
	Reason  string `json:"reason"`
}

// Summary aggregates one full run.
type Summary struct {
	RunID       string           `json:"runId"`
	Environment string           `json:"environment"`
	Results     []EndpointResult `json:"results"`
	Skipped     []Skip           `json:"skipped,omitempty"`

	// Checked counts the endpoints called and compared; Changed the ones
	// that reported at least one difference.
	Checked int `json:"checked"`
	Changed int `json:"changed"`
}

// Checker is an abstraction of the orchestrator component.
type Checker struct {
	catalog  catalog.Catalog
	fixtures Fixtures
	client   Transport
	reporter Reporter

	mode   compare.Mode
	rules  compare.Rules
	dryRun bool

	log *slog.Logger
}

type options struct {
	mode   compare.Mode
	rules  compare.Rules
	dryRun bool
}

// Options represents an optional function to override Checker default values.
type Options func(*options)

// WithMode selects the comparison mode used for every endpoint.
// The default is compare.ModeStructural.
func WithMode(m compare.Mode) Options {
	return func(o *options) {
		o.mode = m
	}
}

// WithRules applies ignore rules to every comparison of the run.
func WithRules(r compare.Rules) Options {
	return func(o *options) {
		o.rules = r
	}
}

// WithDryRun makes Run validate the catalog and load every fixture pair
// without sending requests or comparing anything.
func WithDryRun(dryRun bool) Options {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

// New returns a new Checker over the given catalog.
func New(l *slog.Logger, cat catalog.Catalog, fixtures Fixtures, client Transport, reporter Reporter, args ...Options) (Checker, error) {
	if reporter == nil {
		return Checker{}, fmt.Errorf("reporter cannot be nil")
	}

	opts := options{
		mode: compare.ModeStructural,
	}
	for _, opt := range args {
		opt(&opts)
	}

	return Checker{
		catalog:  cat,
		fixtures: fixtures,
		client:   client,
		reporter: reporter,

		mode:   opts.mode,
		rules:  opts.rules,
		dryRun: opts.dryRun,

		log: l,
	}, nil
}

// Run checks every catalogued endpoint of the environment and returns the
// aggregated summary. Findings are streamed to the reporter as each endpoint
// completes, and the completed summary is handed to it last.
//
// A microservice whose endpoint list cannot be resolved is skipped and the
// run continues; a fixture or transport failure aborts the whole run. An
// environment outside the known set fails before any request is sent.
func (c Checker) Run(ctx context.Context, env string) (s Summary, err error) {
	defer decorate.OnError(&err, "sanity check of environment %q failed", env)

	services, err := c.catalog.Services(env)
	if err != nil {
		return Summary{}, err
	}

	s = Summary{
		RunID:       uuid.NewString(),
		Environment: strings.ToLower(env),
	}
	c.log.Info("Starting sanity run", "run", s.RunID, "environment", s.Environment, "services", len(services), "dryRun", c.dryRun)

	for _, svc := range services {
		endpoints, err := c.catalog.Endpoints(svc.Name)
		if err != nil {
			c.log.Warn("Skipping microservice", "service", svc.Name, "error", err)
			skip := Skip{Service: svc.Name, Reason: err.Error()}
			s.Skipped = append(s.Skipped, skip)
			c.reporter.ServiceSkipped(skip)
			continue
		}

		for _, endpoint := range endpoints {
			res, err := c.check(ctx, svc, endpoint)
			if err != nil {
				return Summary{}, err
			}

			s.Results = append(s.Results, res)
			if res.Checked {
				s.Checked++
			}
			if len(res.Differences) > 0 {
				s.Changed++
			}
			c.reporter.EndpointChecked(res)
		}
	}

	c.reporter.Summarize(s)
	return s, nil
}

// check runs a single endpoint: load the fixture pair, send the recorded
// request, compare the response against the expected fixture.
func (c Checker) check(ctx context.Context, svc catalog.Service, endpoint string) (EndpointResult, error) {
	// The full URL is plain concatenation: recorded catalogs rely on base
	// URLs carrying, or not carrying, their trailing slash.
	res := EndpointResult{
		Service:  svc.Name,
		Endpoint: endpoint,
		URL:      svc.BaseURL + endpoint,
	}

	pair, err := c.fixtures.Load(endpoint)
	if err != nil {
		return EndpointResult{}, err
	}

	if c.dryRun {
		c.log.Info("Dry run, skipping request", "service", svc.Name, "url", res.URL)
		return res, nil
	}

	actual, err := c.client.Send(ctx, res.URL, pair.Request)
	if err != nil {
		return EndpointResult{}, fmt.Errorf("check of %s failed: %w", res.URL, err)
	}

	diffs, err := compare.Values(pair.Expected, actual,
		compare.WithMode(c.mode),
		compare.WithIgnoredPaths(c.rules.PathsFor(endpoint)))
	if err != nil {
		return EndpointResult{}, fmt.Errorf("could not compare responses of %s: %v", res.URL, err)
	}

	res.Checked = true
	res.Differences = diffs
	return res, nil
}
