package mutators

import "github.com/microsoft/rusty-radamsa/internal/rng"

func mutateByteDrop(s *rng.Source, data []byte) ([]byte, int) {
	d := s.RandDelta()
	out := append([]byte(nil), data...)
	if len(out) > 0 {
		p := s.RangeInt(len(out))
		out = append(out[:p], out[p+1:]...)
	}
	return out, d
}

func mutateByteInc(s *rng.Source, data []byte) ([]byte, int) {
	d := s.RandDelta()
	out := append([]byte(nil), data...)
	if len(out) > 0 {
		p := s.RangeInt(len(out))
		out[p]++
	}
	return out, d
}

func mutateByteDec(s *rng.Source, data []byte) ([]byte, int) {
	d := s.RandDelta()
	out := append([]byte(nil), data...)
	if len(out) > 0 {
		p := s.RangeInt(len(out))
		out[p]--
	}
	return out, d
}

func mutateByteFlip(s *rng.Source, data []byte) ([]byte, int) {
	d := s.RandDelta()
	out := append([]byte(nil), data...)
	if len(out) > 0 {
		bit := byte(1) << uint(s.RangeInt(8))
		p := s.RangeInt(len(out))
		out[p] ^= bit
	}
	return out, d
}

func mutateByteInsert(s *rng.Source, data []byte) ([]byte, int) {
	d := s.RandDelta()
	out := append([]byte(nil), data...)
	b := byte(s.Range(256))
	p := s.RangeInt(len(out) + 1)
	out = append(out, 0)
	copy(out[p+1:], out[p:])
	out[p] = b
	return out, d
}

// repeatLen draws a power-of-two-bounded repeat count, growing the limit
// by doubling while coin flips keep coming up heads (capped at 0x20000).
func repeatLen(s *rng.Source) int {
	limit := 0b10
	for s.Bool() && limit != 0x20000 {
		limit <<= 1
	}
	return s.RangeInt(limit)
}

func mutateByteRepeat(s *rng.Source, data []byte) ([]byte, int) {
	d := s.RandDelta()
	n := repeatLen(s)
	out := append([]byte(nil), data...)
	if len(out) > 0 {
		p := s.RangeInt(len(out))
		toRepeat := out[p]
		ins := make([]byte, n)
		for i := range ins {
			ins[i] = toRepeat
		}
		tail := append([]byte(nil), out[p:]...)
		out = append(out[:p], ins...)
		out = append(out, tail...)
	}
	return out, d
}

func mutateByteRandom(s *rng.Source, data []byte) ([]byte, int) {
	d := s.RandDelta()
	out := append([]byte(nil), data...)
	if len(out) > 0 {
		b := byte(s.Range(256))
		p := s.RangeInt(len(out))
		out[p] = b
	}
	return out, d
}

func mutateBytePerm(s *rng.Source, data []byte) ([]byte, int) {
	d := s.RandDelta()
	out := append([]byte(nil), data...)
	if len(out) > 0 {
		p := s.RangeInt(len(out))
		span := p + 2 + s.RangeInt(18)
		n := span
		if n > len(out) {
			n = len(out)
		}
		shuffleBytes(s, out[p:n])
	}
	return out, d
}

func shuffleBytes(s *rng.Source, b []byte) {
	for i := len(b) - 1; i > 0; i-- {
		j := s.RangeInt(i + 1)
		b[i], b[j] = b[j], b[i]
	}
}

func mutateSeqRepeat(s *rng.Source, data []byte) ([]byte, int) {
	if len(data) < 2 {
		return append([]byte(nil), data...), 0
	}
	start := s.RangeInt(len(data) - 1)
	end := start + 1 + s.RangeInt(len(data)-start-1)
	pre := data[:start]
	post := data[end:]
	stut := data[start:end]

	n := int(s.RandLog(10))
	if n > 1024 {
		n = 1024 // bounded per spec.md's literal min(1024, rand_log(10)); see DESIGN.md Open Question 1
	}
	d := s.RandDelta()

	out := append([]byte(nil), pre...)
	for i := 0; i < n; i++ {
		out = append(out, stut...)
	}
	out = append(out, post...)
	return out, d
}

func mutateSeqDel(s *rng.Source, data []byte) ([]byte, int) {
	d := s.RandDelta()
	out := listDelSeqBytes(s, data)
	return out, d
}
