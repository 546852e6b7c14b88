package mutators

import (
	"testing"

	"github.com/microsoft/rusty-radamsa/internal/rng"
	"github.com/microsoft/rusty-radamsa/internal/testutil"
)

func TestIsTextyAcceptsPrintableAndCommonControls(t *testing.T) {
	testutil.True(t, isTexty('a'))
	testutil.True(t, isTexty('Z'))
	testutil.True(t, isTexty(9))
	testutil.True(t, isTexty(10))
	testutil.True(t, isTexty(13))
	testutil.False(t, isTexty(0))
	testutil.False(t, isTexty(127))
}

func TestIsTextyEnoughShortInputUsesWhatsThere(t *testing.T) {
	testutil.True(t, isTextyEnough([]byte("ab")))
	testutil.False(t, isTextyEnough([]byte{0x00, 0x01}))
}

func TestLexAsciiSeparatesTextAndByteRuns(t *testing.T) {
	data := append([]byte("hello"), 0x00, 0x01, 0x02, 0x03, 0x04, 0x05)
	data = append(data, []byte("world")...)
	lex := lexAscii(data)
	testutil.True(t, len(lex.chunks) >= 2)
	testutil.Equal(t, lex.chunks[0].kind, lexText)
}

func TestLexAsciiRoundTripsViaUnlex(t *testing.T) {
	data := []byte("plain ascii text with no binary runs")
	lex := lexAscii(data)
	testutil.Equal(t, string(lex.unlex()), string(data))
}

func TestFirstBlockHasTextOnEmptyChunks(t *testing.T) {
	lex := &asciiLex{}
	testutil.False(t, lex.firstBlockHasText())
}

func TestFirstBlockHasTextWhenLeadingRunIsBinary(t *testing.T) {
	data := append([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}, []byte("hello")...)
	lex := lexAscii(data)
	testutil.False(t, lex.firstBlockHasText())
}

func TestMutateAsciiBadOnTextyInputChangesDataAndReportsUpDelta(t *testing.T) {
	s := rng.New(3)
	data := []byte("some plain text to corrupt with silly strings")
	out, delta := mutateAsciiBad(s, data)
	testutil.NotNil(t, out)
	testutil.True(t, delta >= 0)
}

func TestMutateAsciiBadOnLeadingBinaryIsNoopWithNegativeDelta(t *testing.T) {
	s := rng.New(3)
	data := append([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}, []byte("hello")...)
	out, delta := mutateAsciiBad(s, data)
	testutil.Equal(t, string(out), string(data))
	testutil.Equal(t, delta, -1)
}

func TestRandomBadnessProducesNonEmptyOutput(t *testing.T) {
	s := rng.New(9)
	out := randomBadness(s)
	testutil.True(t, len(out) > 0)
}

func TestMutateTextDataOnEmptyIsNoop(t *testing.T) {
	s := rng.New(1)
	out := mutateTextData(s, nil)
	testutil.Equal(t, len(out), 0)
}
