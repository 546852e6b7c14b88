package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
)

// StateSchemaVersion is the current persisted mutator-state schema. Bump
// its major number whenever MutatorState's shape changes incompatibly;
// LoadState derives its compatibility constraint from that major number.
const StateSchemaVersion = "1.0.0"

// MutatorState is the persisted, learned score for a single
// mutator id, saved across runs via -save-state/-load-state.
type MutatorState struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
}

// PersistedState is the on-disk shape written by SaveState and read by
// LoadState, stamped with a semver schema version so a future incompatible
// layout change can be detected and rejected rather than silently
// misinterpreted.
type PersistedState struct {
	SchemaVersion string         `json:"schema_version"`
	Mutators      []MutatorState `json:"mutators"`
}

// SaveState writes mutator scores to path, stamped with the current schema
// version.
func SaveState(path string, mutators []MutatorState) error {
	ps := PersistedState{SchemaVersion: StateSchemaVersion, Mutators: mutators}
	data, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal mutator state: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadState reads mutator scores from path, rejecting any file whose
// schema version is not compatible with StateSchemaVersion under semver's
// caret-range rules (same major version).
func LoadState(path string) ([]MutatorState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mutator state: %w", err)
	}

	var ps PersistedState
	if err := json.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("parse mutator state: %w", err)
	}

	have, err := semver.NewVersion(ps.SchemaVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid schema version %q: %w", ps.SchemaVersion, err)
	}

	current, err := semver.NewVersion(StateSchemaVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid current schema version: %w", err)
	}

	constraint, err := semver.NewConstraint(fmt.Sprintf("^%d.0.0", current.Major()))
	if err != nil {
		return nil, fmt.Errorf("build schema constraint: %w", err)
	}

	if !constraint.Check(have) {
		return nil, fmt.Errorf("mutator state schema %s is incompatible with %s", have, current)
	}

	return ps.Mutators, nil
}
