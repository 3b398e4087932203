package rle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAaabb(t *testing.T) {
	assert.Equal(t, []Group{{Symbol: "a", Count: 3}, {Symbol: "b", Count: 2}}, Groups("aaabb"))
	assert.Equal(t, "3a2b", Encode("aaabb"))
	assert.Greater(t, Ratio("aaabb", "3a2b"), 0.0)

	steps := Steps("aaabb")
	last := steps[len(steps)-1]
	assert.Equal(t, Done, last.Phase)
	assert.Equal(t, "3a2b", last.Encoded)
	assert.InDelta(t, 0.2, last.Ratio, 1e-9)
}

func TestRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"a",
		"abc",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaab",
		"111223",
		`\\\a\`,
		"12\\34",
		"héééllo wörld",
		"🎮🎮🎮x",
		"  \t\n\n",
		"a\xffb",
		"\xff\xfe\xfe9",
	}
	for _, c := range cases {
		got, err := Decode(Encode(c))
		require.NoError(t, err, c)
		assert.Equal(t, c, got)
	}
}

func TestInvalidUTF8(t *testing.T) {
	assert.Equal(t, []Group{{Symbol: "a", Count: 1}, {Symbol: "\xff", Count: 2}}, Groups("a\xff\xff"))

	steps := Steps("a\xffb")
	last := steps[len(steps)-1]
	assert.Equal(t, "a\uFFFDb", last.Text)
	assert.Equal(t, "1a1\uFFFD1b", last.Encoded)
}

func TestDigitsAreEscaped(t *testing.T) {
	assert.Equal(t, `3\12\2`, Encode("11122"))
	assert.Equal(t, `1\\`, Encode(`\`))
}

func TestDecodeMalformed(t *testing.T) {
	for _, bad := range []string{"a", "3", `2\`, "0a"} {
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrMalformed, bad)
	}
}

func TestStepsOnePerGroup(t *testing.T) {
	steps := Steps("aab")
	require.Len(t, steps, 4)
	assert.Equal(t, Start, steps[0].Phase)
	assert.Equal(t, Run, steps[1].Phase)
	assert.Equal(t, 0, steps[1].From)
	assert.Equal(t, 2, steps[1].To)
	assert.Equal(t, "2a", steps[1].Encoded)
	assert.Equal(t, 2, steps[2].From)
	assert.Equal(t, "2a1b", steps[2].Encoded)
	assert.Len(t, steps[2].Groups, 2)
	assert.Len(t, steps[1].Groups, 1)
}

func TestGrowthReported(t *testing.T) {
	steps := Steps("abc")
	last := steps[len(steps)-1]
	assert.Less(t, last.Ratio, 0.0)
	assert.Contains(t, last.Message, "larger")
}

func TestEmpty(t *testing.T) {
	steps := Steps("")
	require.Len(t, steps, 1)
	assert.Equal(t, Empty, steps[0].Phase)
}
