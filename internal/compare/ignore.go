package compare

import (
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
)

// Rules are optional, operator-maintained exclusions: JSON paths whose values
// are expected to differ between runs (timestamps, generated identifiers) and
// must not be reported. Loaded from a TOML file, applied per endpoint.
type Rules struct {
	Rules []Rule `toml:"rules"`
}

// Rule excludes paths from structural comparison for a set of endpoints.
// An empty endpoint list applies the rule to every endpoint.
type Rule struct {
	Endpoints []string `toml:"endpoints"`
	Paths     []string `toml:"paths"`
}

// LoadRules parses the TOML ignore-rules file at path.
func LoadRules(path string) (Rules, error) {
	var r Rules
	if _, err := toml.DecodeFile(path, &r); err != nil {
		return Rules{}, fmt.Errorf("could not load ignore rules %s: %v", path, err)
	}
	return r, nil
}

// PathsFor returns the ignored paths applying to the given endpoint.
func (r Rules) PathsFor(endpoint string) []string {
	var paths []string
	for _, rule := range r.Rules {
		if len(rule.Endpoints) == 0 || slices.Contains(rule.Endpoints, endpoint) {
			paths = append(paths, rule.Paths...)
		}
	}
	return paths
}
