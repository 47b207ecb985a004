// Package lmbin validates the binary KenLM language model format.
//
// Every binary model starts with a fixed-size sanity header written by the
// native engine. The header is compared byte-for-byte with the reference
// header before any native code is allowed to touch the rest of the file.
package lmbin

import (
	"encoding/binary"
	"math"
)

const (
	// FormatVersion is the binary format version this package accepts.
	FormatVersion = 5

	// MagicV5 identifies binary models of format version 5. The trailing NUL
	// is part of the on-disk bytes.
	MagicV5 = "mmap lm http://kheafield.com/code format version 5\n\x00"

	// PaddedMagicSize is len(MagicV5) rounded up to a multiple of 8.
	PaddedMagicSize = ((len(MagicV5)-1)/8 + 1) * 8

	// SanityHeaderSize is sizeof(Sanity) in the native engine.
	SanityHeaderSize = 88
)

// Offsets of the encoded fields. The native struct aligns the 64-bit canary,
// which leaves an explicit zero gap after WordIdxMax.
const (
	offFloatZero      = PaddedMagicSize
	offFloatOne       = offFloatZero + 4
	offFloatMinusHalf = offFloatOne + 4
	offWordIdxOne     = offFloatMinusHalf + 4
	offWordIdxMax     = offWordIdxOne + 4
	offPad            = offWordIdxMax + 4
	offUsizeSanity    = (offPad + 7) &^ 7
	layoutSize        = offUsizeSanity + 8
)

// Build fails if the magic overflows its padded width or the layout drifts
// from the size agreed with the native engine.
var (
	_ [PaddedMagicSize - len(MagicV5)]struct{}
	_ [SanityHeaderSize - layoutSize]struct{}
	_ [layoutSize - SanityHeaderSize]struct{}
)

// hostOrder is the byte order the native engine writes canaries in.
var hostOrder = binary.NativeEndian

func hostLittleEndian() bool {
	return hostOrder.Uint16([]byte{1, 0}) == 1
}

// HostByteOrder names the byte order canaries are written in on this machine.
func HostByteOrder() string {
	if hostLittleEndian() {
		return "little-endian"
	}
	return "big-endian"
}

// SanityHeader is the fixed-layout prefix of a binary model.
type SanityHeader struct {
	Magic          [PaddedMagicSize]byte
	FloatZero      float32
	FloatOne       float32
	FloatMinusHalf float32
	WordIdxOne     uint32
	WordIdxMax     uint32
	UsizeSanity    uint64
}

var (
	reference = SanityHeader{
		Magic:          paddedMagic(),
		FloatZero:      0,
		FloatOne:       1,
		FloatMinusHalf: -0.5,
		WordIdxOne:     1,
		WordIdxMax:     math.MaxUint32,
		UsizeSanity:    1,
	}
	referenceBytes = reference.Bytes()
)

// Reference returns the header every valid version 5 model carries.
func Reference() SanityHeader {
	return reference
}

// ReferenceBytes returns the encoded reference header.
func ReferenceBytes() [SanityHeaderSize]byte {
	return referenceBytes
}

// Align8 rounds n up to the next multiple of 8. n must be positive.
func Align8(n int) int {
	return ((n-1)/8 + 1) * 8
}

func paddedMagic() (m [PaddedMagicSize]byte) {
	copy(m[:], MagicV5)
	return m
}

// Bytes returns the encoded header. Padding bytes are always zero.
func (h SanityHeader) Bytes() [SanityHeaderSize]byte {
	var b [SanityHeaderSize]byte
	h.encode(b[:], hostOrder)
	return b
}

// Equal reports whether both headers encode to identical bytes. Unlike ==,
// it tells 0.0 from -0.0.
func (h SanityHeader) Equal(other SanityHeader) bool {
	return h.Bytes() == other.Bytes()
}

func (h SanityHeader) encode(b []byte, order binary.ByteOrder) {
	_ = b[SanityHeaderSize-1]
	copy(b[:PaddedMagicSize], h.Magic[:])
	order.PutUint32(b[offFloatZero:], math.Float32bits(h.FloatZero))
	order.PutUint32(b[offFloatOne:], math.Float32bits(h.FloatOne))
	order.PutUint32(b[offFloatMinusHalf:], math.Float32bits(h.FloatMinusHalf))
	order.PutUint32(b[offWordIdxOne:], h.WordIdxOne)
	order.PutUint32(b[offWordIdxMax:], h.WordIdxMax)
	clear(b[offPad:offUsizeSanity])
	order.PutUint64(b[offUsizeSanity:], h.UsizeSanity)
}

// DecodeSanityHeader reinterprets the first SanityHeaderSize bytes of b.
// It reports false when b is too short. Values are not checked.
func DecodeSanityHeader(b []byte) (SanityHeader, bool) {
	if len(b) < SanityHeaderSize {
		return SanityHeader{}, false
	}
	var h SanityHeader
	copy(h.Magic[:], b[:PaddedMagicSize])
	h.FloatZero = math.Float32frombits(hostOrder.Uint32(b[offFloatZero:]))
	h.FloatOne = math.Float32frombits(hostOrder.Uint32(b[offFloatOne:]))
	h.FloatMinusHalf = math.Float32frombits(hostOrder.Uint32(b[offFloatMinusHalf:]))
	h.WordIdxOne = hostOrder.Uint32(b[offWordIdxOne:])
	h.WordIdxMax = hostOrder.Uint32(b[offWordIdxMax:])
	h.UsizeSanity = hostOrder.Uint64(b[offUsizeSanity:])
	return h, true
}

func (h SanityHeader) MarshalBinary() ([]byte, error) {
	b := h.Bytes()
	return b[:], nil
}

func (h *SanityHeader) UnmarshalBinary(data []byte) error {
	if h == nil {
		return errNilHeader
	}
	decoded, ok := DecodeSanityHeader(data)
	if !ok {
		return errShortHeader(len(data))
	}
	*h = decoded
	return nil
}
