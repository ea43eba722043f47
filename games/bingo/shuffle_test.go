package bingo

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberLabels() []string {
	return Builtin()[0].Labels
}

func TestShuffleDeterministic(t *testing.T) {
	labels := numberLabels()

	a := Shuffle(labels, "alice")
	b := Shuffle(labels, "alice")

	assert.Equal(t, a, b)
}

func TestShuffleSeedsDiffer(t *testing.T) {
	labels := numberLabels()

	seeds := []string{"alice", "bob", "carol", "Alice", ""}
	seen := make(map[string]string, len(seeds))

	for _, seed := range seeds {
		got := Shuffle(labels, seed)

		key := ""
		for _, l := range got {
			key += l + ","
		}

		prev, dup := seen[key]
		assert.False(t, dup, "seeds %q and %q produced the same order", prev, seed)
		seen[key] = seed
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	labels := numberLabels()
	original := append([]string(nil), labels...)

	got := Shuffle(labels, "permutation")
	require.Len(t, got, len(labels))

	assert.Equal(t, original, labels, "input modified")

	sortedGot := append([]string(nil), got...)
	sort.Strings(sortedGot)
	sortedIn := append([]string(nil), labels...)
	sort.Strings(sortedIn)
	assert.Equal(t, sortedIn, sortedGot)

	assert.NotEqual(t, labels, got)
}

func TestShuffleSmallInputs(t *testing.T) {
	assert.Empty(t, Shuffle(nil, "x"))
	assert.Equal(t, []string{"only"}, Shuffle([]string{"only"}, "x"))
}

func TestByteStreamCrossesRounds(t *testing.T) {
	bs := newByteStream("seed")

	first := make([]byte, 64)
	for i := range first {
		first[i] = bs.next()
	}

	assert.Equal(t, uint64(1), bs.round)
	assert.NotEqual(t, first[:32], first[32:])

	again := newByteStream("seed")
	for i := range first {
		assert.Equal(t, first[i], again.next())
	}
}
