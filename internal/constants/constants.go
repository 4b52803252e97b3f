// Package constants is responsible for defining the constants used in the application.
package constants

import (
	"log/slog"
)

var (
	// Version is the version of the application.
	Version = "Dev"
)

const (
	// CmdName is the name of the command line tool.
	CmdName = "release-sanity"

	// DefaultLogLevel is the default log level selected without any verbosity flags.
	DefaultLogLevel = slog.LevelWarn

	// DefaultCatalogFile is the default name of the endpoint catalog file.
	DefaultCatalogFile = "config.ini"

	// EnvSectionPrefix is the prefix of the per-environment sections in the catalog file.
	EnvSectionPrefix = "urls-"

	// EndpointsKey is the catalog key listing a microservice's endpoint paths.
	EndpointsKey = "endpoints"

	// RequestFixturePrefix is the path prefix request-body fixtures are resolved under.
	RequestFixturePrefix = "requests"

	// ResponseFixturePrefix is the path prefix expected-response fixtures are resolved under.
	ResponseFixturePrefix = "responses"

	// FixtureExt is the extension of fixture files.
	FixtureExt = ".json"
)

var (
	// KnownEnvironments is the fixed set of deployment targets a check can run against.
	KnownEnvironments = []string{"dev", "test", "prod"}
)
