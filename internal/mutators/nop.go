package mutators

import "github.com/microsoft/rusty-radamsa/internal/rng"

// mutateNop never changes data; it exists purely for debugging and test
// configurations that want a mutator guaranteed to fall through.
func mutateNop(s *rng.Source, data []byte) ([]byte, int) {
	return nil, 0
}
