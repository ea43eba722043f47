package bingo

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allTiles(marked bool) Tiles {
	var t Tiles
	for i := range t {
		t[i] = marked
	}

	return t
}

func tilesOf(indexes ...int) Tiles {
	var t Tiles
	for _, i := range indexes {
		t[i] = true
	}

	return t
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  string
	}{
		{
			name:  "dataset 0 unmarked",
			state: State{DatasetID: 0},
			want:  "QsZET6",
		},
		{
			name:  "dataset 1 fully marked",
			state: State{DatasetID: 1, Tiles: allTiles(true)},
			want:  "RTmHsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.state)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := Encode(tt.state)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestEncodeBitOrder(t *testing.T) {
	// Tile 0 is the high bit of the first group: 32 ^ 18 = 50 ('Y').
	got, err := Encode(State{Tiles: tilesOf(0)})
	require.NoError(t, err)
	assert.Equal(t, byte('Y'), got[1])

	// Tile 5 is the low bit: 1 ^ 18 = 19 ('t').
	got, err = Encode(State{Tiles: tilesOf(5)})
	require.NoError(t, err)
	assert.Equal(t, byte('t'), got[1])
}

func TestEncodeRejectsDatasetOutOfRange(t *testing.T) {
	for _, id := range []int{-1, 64, 1000} {
		_, err := Encode(State{DatasetID: id})
		assert.ErrorIs(t, err, ErrInvalidDataset, "id %d", id)
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for id := 0; id <= MaxDatasetID; id++ {
		for n := 0; n < 64; n++ {
			var tiles Tiles
			for i := range tiles {
				tiles[i] = rng.Intn(2) == 1
			}

			in := State{DatasetID: id, Tiles: tiles}

			token, err := Encode(in)
			require.NoError(t, err)
			require.Len(t, token, TokenLength)

			out, err := Decode(token)
			require.NoError(t, err)
			require.Equal(t, in, out, "token %s", token)
		}
	}
}

func TestRoundTripEveryGroupValue(t *testing.T) {
	for v := 0; v < 64; v++ {
		var tiles Tiles
		for g := 0; g < groups; g++ {
			unpackGroup(byte(v), tiles[g*groupSize:(g+1)*groupSize])
		}

		token, err := Encode(State{DatasetID: 7, Tiles: tiles})
		require.NoError(t, err)

		out, err := Decode(token)
		require.NoError(t, err)
		assert.Equal(t, tiles, out.Tiles)
	}
}

func TestDecodeLength(t *testing.T) {
	for _, n := range []int{0, 1, 5, 7, 100} {
		_, err := Decode(strings.Repeat("a", n))
		assert.ErrorIs(t, err, ErrInvalidLength, "length %d", n)
	}
}

func TestDecodeOutsideAlphabet(t *testing.T) {
	valid := "QsZET6"

	for pos := 0; pos < TokenLength; pos++ {
		for _, ch := range []byte{' ', '!', '_', '/'} {
			b := []byte(valid)
			b[pos] = ch

			_, err := Decode(string(b))
			assert.ErrorIs(t, err, ErrInvalidToken, "%q", b)
		}
	}

	// Six bytes, but not six alphabet characters.
	_, err := Decode("QsZé6")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeChecksum(t *testing.T) {
	valid, err := Encode(State{DatasetID: 1, Tiles: tilesOf(0, 6, 12, 18)})
	require.NoError(t, err)

	for i := 0; i < len(StandardAlphabet); i++ {
		ch := StandardAlphabet[i]
		if ch == valid[TokenLength-1] {
			continue
		}

		corrupted := valid[:TokenLength-1] + string(ch)

		_, err := Decode(corrupted)
		assert.ErrorIs(t, err, ErrInvalidChecksum, corrupted)
	}
}

func TestDecodeSingleContentCorruption(t *testing.T) {
	valid := "QsZET6"

	for pos := 0; pos < TokenLength-1; pos++ {
		for i := 0; i < len(StandardAlphabet); i++ {
			ch := StandardAlphabet[i]
			if ch == valid[pos] {
				continue
			}

			b := []byte(valid)
			b[pos] = ch

			// A single changed content value always shifts the sum by a
			// nonzero amount below 64.
			_, err := Decode(string(b))
			assert.ErrorIs(t, err, ErrInvalidChecksum, "%q", b)
		}
	}
}

func TestNewCodec(t *testing.T) {
	tests := []struct {
		name     string
		alphabet string
		keys     [TokenLength]byte
		wantErr  bool
	}{
		{
			name:     "standard",
			alphabet: StandardAlphabet,
			keys:     StandardKeys(),
		},
		{
			name:     "short alphabet",
			alphabet: StandardAlphabet[:63],
			keys:     StandardKeys(),
			wantErr:  true,
		},
		{
			name:     "repeated character",
			alphabet: "a" + StandardAlphabet[1:63] + "a",
			keys:     StandardKeys(),
			wantErr:  true,
		},
		{
			name:     "key out of range",
			alphabet: StandardAlphabet,
			keys:     [TokenLength]byte{64},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCodec(tt.alphabet, tt.keys)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, c)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestCustomCodec(t *testing.T) {
	c, err := NewCodec(StandardAlphabet, [TokenLength]byte{})
	require.NoError(t, err)

	// With zero keys, dataset 0 and no marks encode to the first character,
	// and the checksum is zero too.
	token, err := c.Encode(State{})
	require.NoError(t, err)
	assert.Equal(t, "aaaaaa", token)

	in := State{DatasetID: 63, Tiles: tilesOf(1, 2, 3, 23)}

	token, err = c.Encode(in)
	require.NoError(t, err)

	out, err := c.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// The checksum covers raw values only, so the standard codec accepts the
	// token but reads a different state from it.
	other, err := Decode(token)
	require.NoError(t, err)
	assert.NotEqual(t, in, other)
}

func TestTilesMarked(t *testing.T) {
	assert.Equal(t, []int{0, 12, 23}, tilesOf(23, 0, 12).Marked())
	assert.Empty(t, Tiles{}.Marked())
}
