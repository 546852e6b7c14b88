package mutators

import (
	"math/big"

	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/shared"
)

// interestingNumbers returns the literal set of "round" numbers mutate_num
// biases toward: powers of two (and their neighbors) at bit widths
// {1,7,8,15,16,31,32,63,64,127,128}.
func interestingNumbers() []*big.Int {
	widths := []uint{1, 7, 8, 15, 16, 31, 32, 63, 64, 127, 128}
	var out []*big.Int
	one := big.NewInt(1)
	for _, w := range widths {
		x := new(big.Int).Lsh(one, w)
		out = append(out, x)
		out = append(out, new(big.Int).Sub(x, one))
		out = append(out, new(big.Int).Add(x, one))
	}
	return out
}

func randBigElem(s *rng.Source, list []*big.Int) *big.Int {
	if len(list) == 0 {
		return big.NewInt(0)
	}
	return list[s.Elem(len(list))]
}

// bigRands draws a value in [0, n) for a possibly-negative n: negative n
// draws from (n, 0].
func bigRands(s *rng.Source, n *big.Int) *big.Int {
	if n.Sign() == 0 {
		return big.NewInt(0)
	}
	if n.Sign() > 0 {
		return s.BigRange(n)
	}
	neg := new(big.Int).Neg(n)
	return new(big.Int).Neg(s.BigRange(neg))
}

// mutateNum perturbs a ≥256-bit signed integer using the same twelve-way
// dispatch as the reference engine's mutate_num, using math/big.Int as the
// direct Go analogue of its arbitrary-width i256 type.
func mutateNum(s *rng.Source, num *big.Int) *big.Int {
	choice := s.RangeInt(12)
	nums := interestingNumbers()
	switch choice {
	case 0:
		return new(big.Int).Add(num, big.NewInt(1))
	case 1:
		return new(big.Int).Sub(num, big.NewInt(1))
	case 2:
		return big.NewInt(0)
	case 3:
		return big.NewInt(1)
	case 4, 5, 6:
		return randBigElem(s, nums)
	case 7:
		return new(big.Int).Add(bigRands(s, randBigElem(s, nums)), num)
	case 8:
		return new(big.Int).Sub(bigRands(s, randBigElem(s, nums)), num)
	case 9:
		doubled := new(big.Int).Mul(num, big.NewInt(2))
		return new(big.Int).Sub(bigRands(s, doubled), num)
	default:
		n := int64(1 + s.RangeInt(128))
		n = int64(s.RandLog(uint64(n)))
		if s.RangeInt(3) == 0 {
			return new(big.Int).Sub(num, big.NewInt(n))
		}
		return new(big.Int).Add(num, big.NewInt(n))
	}
}

// getNum reads a leading run of ASCII digits from data, returning its
// value and byte length. Returns (nil, 0) if data is empty and
// (nil, 1) if data is non-empty but doesn't start with a digit (the caller
// advances by one byte and retries, per the reference engine's scan loop).
func getNum(data []byte) (*big.Int, int) {
	end := 0
	for end < len(data) && data[end] >= '0' && data[end] <= '9' {
		end++
	}
	if end == 0 {
		if len(data) > 0 {
			return nil, 1
		}
		return nil, 0
	}
	n, ok := new(big.Int).SetString(string(data[:end]), 10)
	if !ok {
		return nil, end
	}
	return n, end
}

type numOccurrence struct {
	val    *big.Int
	offset int
	length int
}

func mutateANum(s *rng.Source, data []byte) (int, []byte) {
	if len(data) == 0 {
		return 0, nil
	}
	var occurrences []numOccurrence
	offset := 0
	for offset < len(data) {
		if val, length := getNum(data[offset:]); val != nil {
			occurrences = append(occurrences, numOccurrence{val, offset, length})
			offset += length
			continue
		}
		offset++
	}
	if len(occurrences) == 0 {
		return 0, nil
	}
	which := s.Elem(len(occurrences))
	target := occurrences[which]
	newNum := []byte(mutateNum(s, target.val).String())
	out := append([]byte(nil), data[:target.offset]...)
	out = append(out, newNum...)
	out = append(out, data[target.offset+target.length:]...)
	return which + 1, out
}

// mutateSedNum is the `num` mutator: find a textual number, perturb it,
// and report a learning delta that favors finding more numbers and
// disfavors operating on binary-looking data.
func mutateSedNum(s *rng.Source, data []byte) ([]byte, int) {
	which, out := mutateANum(s, data)
	isBin := out != nil && shared.IsBinarish(out)

	if which == 0 {
		if s.RangeInt(10) == 0 {
			return out, -1
		}
		return out, 0
	}
	if isBin {
		return out, -1
	}
	return out, 2
}
