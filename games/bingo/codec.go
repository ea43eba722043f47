/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package bingo implements the board logic behind the Bingo game: the state
// token codec, win detection, seeded label shuffling, and the datasets the
// boards are filled from.
//
// A board's full state is a dataset ID plus 24 tile flags (the 5x5 grid minus
// the free center cell). It is packed into a 6-character token so the board
// can live entirely in a URL:
//
//	position 0     dataset ID, XOR key[0]
//	positions 1-4  six tiles each, MSB first, XOR key[1..4]
//	position 5     sum of the five encoded values, mod 64
package bingo

import (
	"errors"
	"fmt"
)

const (
	// TileCount is the number of markable tiles on a board.
	TileCount = 24

	// TokenLength is the length in bytes of an encoded state.
	TokenLength = 6

	// MaxDatasetID is the largest dataset ID a token can carry.
	MaxDatasetID = 63

	groupSize = 6
	groups    = TileCount / groupSize
	symbols   = 64
)

const (
	// StandardAlphabet maps 6-bit values to token characters by index.
	StandardAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789+-"
)

// StandardKeys returns the values XORed into each token position before
// lookup. The last entry is unused; the checksum is stored as-is.
func StandardKeys() [TokenLength]byte {
	return [TokenLength]byte{42, 18, 51, 30, 45, 27}
}

var (
	ErrInvalidLength   = errors.New("invalid state length")
	ErrInvalidToken    = errors.New("invalid state character")
	ErrInvalidChecksum = errors.New("invalid state checksum")
	ErrInvalidDataset  = errors.New("dataset id out of range")
)

// Tiles holds the marked flag of every non-free tile, in board order.
type Tiles [TileCount]bool

// Marked returns the indexes of all marked tiles in ascending order.
func (t Tiles) Marked() []int {
	marked := make([]int, 0, TileCount)
	for i, m := range t {
		if m {
			marked = append(marked, i)
		}
	}

	return marked
}

// State is everything a token carries.
type State struct {
	DatasetID int
	Tiles     Tiles
}

// Codec converts between States and tokens. A Codec is immutable and safe
// for concurrent use.
type Codec struct {
	alphabet string
	keys     [TokenLength]byte
	index    [256]int8
}

// NewCodec builds a codec over alphabet, which must hold exactly 64 distinct
// ASCII characters, and the per-position XOR keys, which must each be below 64.
func NewCodec(alphabet string, keys [TokenLength]byte) (*Codec, error) {
	if len(alphabet) != symbols {
		return nil, fmt.Errorf("alphabet must have %d characters, got %d", symbols, len(alphabet))
	}

	c := &Codec{
		alphabet: alphabet,
		keys:     keys,
	}

	for i := range c.index {
		c.index[i] = -1
	}

	for i := 0; i < len(alphabet); i++ {
		ch := alphabet[i]
		if ch >= 0x80 {
			return nil, fmt.Errorf("alphabet character at %d is not ascii", i)
		}
		if c.index[ch] != -1 {
			return nil, fmt.Errorf("alphabet character %q repeated", ch)
		}
		c.index[ch] = int8(i)
	}

	for i, k := range keys {
		if k >= symbols {
			return nil, fmt.Errorf("key %d out of range: %d", i, k)
		}
	}

	return c, nil
}

func mustCodec(alphabet string, keys [TokenLength]byte) *Codec {
	c, err := NewCodec(alphabet, keys)
	if err != nil {
		panic(err)
	}

	return c
}

var standard = mustCodec(StandardAlphabet, StandardKeys())

// Standard returns the codec used for URLs.
func Standard() *Codec {
	return standard
}

// Encode packs s into a token using the standard codec.
func Encode(s State) (string, error) {
	return standard.Encode(s)
}

// Decode unpacks a token using the standard codec.
func Decode(token string) (State, error) {
	return standard.Decode(token)
}

// Encode packs s into a token. It fails only when the dataset ID does not fit
// in a single token character.
func (c *Codec) Encode(s State) (string, error) {
	if s.DatasetID < 0 || s.DatasetID > MaxDatasetID {
		return "", fmt.Errorf("%w: %d", ErrInvalidDataset, s.DatasetID)
	}

	var out [TokenLength]byte
	sum := 0

	v := byte(s.DatasetID) ^ c.keys[0]
	out[0] = c.alphabet[v]
	sum += int(v)

	for g := 0; g < groups; g++ {
		v = packGroup(s.Tiles[g*groupSize:(g+1)*groupSize]) ^ c.keys[g+1]
		out[g+1] = c.alphabet[v]
		sum += int(v)
	}

	out[TokenLength-1] = c.alphabet[sum%symbols]

	return string(out[:]), nil
}

// Decode unpacks token into the State it was encoded from. The returned
// dataset ID is within 0-63 but may not name a known dataset.
func (c *Codec) Decode(token string) (State, error) {
	var s State

	if len(token) != TokenLength {
		return s, fmt.Errorf("%w: got %d, want %d", ErrInvalidLength, len(token), TokenLength)
	}

	var raw [TokenLength]byte
	for i := 0; i < TokenLength; i++ {
		idx := c.index[token[i]]
		if idx < 0 {
			return s, fmt.Errorf("%w: %q at position %d", ErrInvalidToken, token[i], i)
		}
		raw[i] = byte(idx)
	}

	sum := 0
	for i := 0; i < TokenLength-1; i++ {
		sum += int(raw[i])
	}
	if sum%symbols != int(raw[TokenLength-1]) {
		return s, fmt.Errorf("%w: got %q, want %q", ErrInvalidChecksum, token[TokenLength-1], c.alphabet[sum%symbols])
	}

	s.DatasetID = int(raw[0] ^ c.keys[0])

	for g := 0; g < groups; g++ {
		unpackGroup(raw[g+1]^c.keys[g+1], s.Tiles[g*groupSize:(g+1)*groupSize])
	}

	return s, nil
}

// packGroup packs six flags into a value, first flag in bit 5.
func packGroup(tiles []bool) byte {
	var v byte
	for _, t := range tiles {
		v <<= 1
		if t {
			v |= 1
		}
	}

	return v
}

func unpackGroup(v byte, dst []bool) {
	for i := range dst {
		dst[i] = v&(1<<(groupSize-1-i)) != 0
	}
}
