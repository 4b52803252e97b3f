// Package fixture is the implementation of the fixture loader component.
// Fixtures are the stored JSON documents of an endpoint check: the request body
// to send and the response expected back.
package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/release-sanity/release-sanity/internal/constants"
	"github.com/ubuntu/decorate"
)

var (
	// ErrNotFound is returned when a fixture file does not exist.
	ErrNotFound = fmt.Errorf("fixture file not found")

	// ErrInvalid is returned when a fixture file does not hold valid JSON.
	ErrInvalid = fmt.Errorf("fixture file is not valid JSON")
)

// Pair is the fixture pair of an endpoint.
type Pair struct {
	Request  any
	Expected any
}

// Loader locates and parses fixture pairs under a root directory.
type Loader struct {
	root string

	log *slog.Logger
}

// New returns a Loader resolving fixtures under root.
func New(l *slog.Logger, root string) Loader {
	return Loader{log: l, root: root}
}

// Load reads and parses both fixtures of the given endpoint path.
//
// For endpoint /list the request body is read from requests/list.json and the
// expected response from responses/list.json: prefix, endpoint path and .json
// extension are concatenated literally, with no separator inserted. Recorded
// fixtures rely on that convention, so it must not be normalized.
func (l Loader) Load(endpoint string) (p Pair, err error) {
	defer decorate.OnError(&err, "could not load fixtures for endpoint %s", endpoint)

	if p.Request, err = l.parse(constants.RequestFixturePrefix + endpoint + constants.FixtureExt); err != nil {
		return Pair{}, err
	}
	if p.Expected, err = l.parse(constants.ResponseFixturePrefix + endpoint + constants.FixtureExt); err != nil {
		return Pair{}, err
	}
	return p, nil
}

func (l Loader) parse(rel string) (v any, err error) {
	path := filepath.Join(l.root, rel)
	l.log.Debug("Loading fixture", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Join(ErrNotFound, err)
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Join(ErrInvalid, fmt.Errorf("%s: %v", path, err))
	}
	return v, nil
}
