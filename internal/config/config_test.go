package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/microsoft/rusty-radamsa/internal/testutil"
)

func TestParseWeightedEmptyInputReturnsNil(t *testing.T) {
	entries, err := ParseWeighted("", nil)
	testutil.NoError(t, err)
	testutil.Nil(t, entries)
}

func TestParseWeightedBareIDDefaultsToPriorityOne(t *testing.T) {
	entries, err := ParseWeighted("bd,bf", nil)
	testutil.NoError(t, err)
	testutil.Equal(t, len(entries), 2)
	testutil.Equal(t, entries[0].Priority, 1)
	testutil.Equal(t, entries[1].Priority, 1)
}

func TestParseWeightedExplicitPriority(t *testing.T) {
	entries, err := ParseWeighted("bd=5", nil)
	testutil.NoError(t, err)
	testutil.Equal(t, entries[0].ID, "bd")
	testutil.Equal(t, entries[0].Priority, 5)
}

func TestParseWeightedNonPositivePriorityNormalizesToOneAndUnparseableErrors(t *testing.T) {
	entries, err := ParseWeighted("bd=0,bf=-3", nil)
	testutil.NoError(t, err)
	for _, e := range entries {
		testutil.Equal(t, e.Priority, 1)
	}
	_, err = ParseWeighted("bd=0,bf=-3,sr=bogus", nil)
	testutil.Error(t, err)
}

func TestParseWeightedRejectsUnknownIDWhenValidSetGiven(t *testing.T) {
	_, err := ParseWeighted("zz", map[string]bool{"bd": true})
	testutil.Error(t, err)
}

func TestParseWeightedSkipsBlankTokens(t *testing.T) {
	entries, err := ParseWeighted("bd,,bf,", nil)
	testutil.NoError(t, err)
	testutil.Equal(t, len(entries), 2)
}

func TestSaveAndLoadStateRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	in := []MutatorState{{ID: "bd", Score: 7}, {ID: "bf", Score: 3}}

	testutil.NoError(t, SaveState(path, in))
	out, err := LoadState(path)
	testutil.NoError(t, err)
	testutil.Equal(t, len(out), 2)
	testutil.Equal(t, out[0].ID, "bd")
	testutil.Equal(t, out[0].Score, 7)
}

func TestLoadStateRejectsIncompatibleMajorVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	testutil.NoError(t, os.WriteFile(path, []byte(`{"schema_version":"99.0.0","mutators":[]}`), 0o644))

	_, err := LoadState(path)
	testutil.Error(t, err)
}

func TestLoadStateRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	testutil.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))

	_, err := LoadState(path)
	testutil.Error(t, err)
}

func TestLoadStateMissingFileErrors(t *testing.T) {
	_, err := LoadState(filepath.Join(t.TempDir(), "missing.json"))
	testutil.Error(t, err)
}
