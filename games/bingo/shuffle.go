/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package bingo

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
)

// byteStream yields HMAC-SHA256(seed, "bingo:<round>") blocks back to back.
type byteStream struct {
	seed  []byte
	round uint64
	pos   int
	buf   [sha256.Size]byte
}

func newByteStream(seed string) *byteStream {
	bs := &byteStream{seed: []byte(seed)}
	bs.generateRound()

	return bs
}

func (bs *byteStream) generateRound() {
	h := hmac.New(sha256.New, bs.seed)
	h.Write([]byte("bingo:" + strconv.FormatUint(bs.round, 10)))
	copy(bs.buf[:], h.Sum(nil))
	bs.pos = 0
}

func (bs *byteStream) next() byte {
	if bs.pos >= len(bs.buf) {
		bs.round++
		bs.generateRound()
	}

	b := bs.buf[bs.pos]
	bs.pos++

	return b
}

func (bs *byteStream) uint32() uint32 {
	var b [4]byte
	for i := range b {
		b[i] = bs.next()
	}

	return binary.BigEndian.Uint32(b[:])
}

// Shuffle returns a copy of labels in an order determined only by seed.
// labels itself is left untouched.
func Shuffle(labels []string, seed string) []string {
	shuffled := append([]string(nil), labels...)
	bs := newByteStream(seed)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(bs.uint32() % uint32(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}
