// Package hash implements HalfSipHash-2-4, the keyed hash used to derive
// widget identities.
//
// HalfSipHash works on 32-bit words with a 64-bit key. It is cheap on short
// inputs such as widget identifiers and keyed, so folding the parent's hash
// into the key separates identical identifiers under different parents.
package hash

import (
	"encoding/binary"
	"math/bits"
)

// Key is a 64-bit HalfSipHash key.
type Key [8]byte

// KeyFrom builds a key from two little-endian words.
func KeyFrom(k0, k1 uint32) Key {
	var k Key
	binary.LittleEndian.PutUint32(k[0:4], k0)
	binary.LittleEndian.PutUint32(k[4:8], k1)
	return k
}

type state struct {
	v0, v1, v2, v3 uint32
}

func (s *state) round() {
	s.v0 += s.v1
	s.v1 = bits.RotateLeft32(s.v1, 5)
	s.v1 ^= s.v0
	s.v0 = bits.RotateLeft32(s.v0, 16)
	s.v2 += s.v3
	s.v3 = bits.RotateLeft32(s.v3, 8)
	s.v3 ^= s.v2
	s.v0 += s.v3
	s.v3 = bits.RotateLeft32(s.v3, 7)
	s.v3 ^= s.v0
	s.v2 += s.v1
	s.v1 = bits.RotateLeft32(s.v1, 13)
	s.v1 ^= s.v2
	s.v2 = bits.RotateLeft32(s.v2, 16)
}

func (s *state) compress(m uint32) {
	s.v3 ^= m
	s.round()
	s.round()
	s.v0 ^= m
}

func (s *state) finalRounds() {
	s.round()
	s.round()
	s.round()
	s.round()
}

func newState(key Key, wide bool) state {
	k0 := binary.LittleEndian.Uint32(key[0:4])
	k1 := binary.LittleEndian.Uint32(key[4:8])
	s := state{
		v0: k0,
		v1: k1,
		v2: 0x6c796765 ^ k0,
		v3: 0x74656462 ^ k1,
	}
	if wide {
		s.v1 ^= 0xee
	}
	return s
}

func absorb(s *state, data []byte) {
	n := len(data)
	end := n - n%4
	for i := 0; i < end; i += 4 {
		s.compress(binary.LittleEndian.Uint32(data[i:]))
	}
	b := uint32(n) << 24
	switch n % 4 {
	case 3:
		b |= uint32(data[end+2]) << 16
		fallthrough
	case 2:
		b |= uint32(data[end+1]) << 8
		fallthrough
	case 1:
		b |= uint32(data[end])
	}
	s.compress(b)
}

// Sum32 returns the 32-bit HalfSipHash-2-4 of data.
func Sum32(key Key, data []byte) uint32 {
	s := newState(key, false)
	absorb(&s, data)
	s.v2 ^= 0xff
	s.finalRounds()
	return s.v1 ^ s.v3
}

// Sum64 returns the 64-bit HalfSipHash-2-4 of data. The first output word
// is the low half.
func Sum64(key Key, data []byte) uint64 {
	s := newState(key, true)
	absorb(&s, data)
	s.v2 ^= 0xee
	s.finalRounds()
	lo := s.v1 ^ s.v3
	s.v1 ^= 0xdd
	s.finalRounds()
	hi := s.v1 ^ s.v3
	return uint64(hi)<<32 | uint64(lo)
}

// String hashes s. Identifiers that fit in 64 bytes do not allocate.
func String(key Key, s string) uint32 {
	var buf [64]byte
	if len(s) <= len(buf) {
		n := copy(buf[:], s)
		return Sum32(key, buf[:n])
	}
	return Sum32(key, []byte(s))
}
