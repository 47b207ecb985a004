package lmbin

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	magicPrefix = "mmap lm http://kheafield.com/code format version "
	arpaPrefix  = `\data\`
)

type field struct {
	name       string
	start, end int
}

var layout = []field{
	{"magic", 0, PaddedMagicSize},
	{"float_zero", offFloatZero, offFloatOne},
	{"float_one", offFloatOne, offFloatMinusHalf},
	{"float_minus_half", offFloatMinusHalf, offWordIdxOne},
	{"word_idx_one", offWordIdxOne, offWordIdxMax},
	{"word_idx_max", offWordIdxMax, offPad},
	{"padding", offPad, offUsizeSanity},
	{"usize_sanity", offUsizeSanity, layoutSize},
}

// swappedBytes is the reference header as a machine of the other byte order
// would write it.
var swappedBytes = func() [SanityHeaderSize]byte {
	var order binary.ByteOrder = binary.BigEndian
	if !hostLittleEndian() {
		order = binary.LittleEndian
	}
	var b [SanityHeaderSize]byte
	reference.encode(b[:], order)
	return b
}()

func fieldAt(off int) string {
	for _, f := range layout {
		if off >= f.start && off < f.end {
			return f.name
		}
	}
	return "unknown"
}

// validate compares a full header against the reference.
func validate(b []byte) (SanityHeader, error) {
	if len(b) < SanityHeaderSize {
		return SanityHeader{}, errShortHeader(len(b))
	}
	if !bytes.Equal(b[:SanityHeaderSize], referenceBytes[:]) {
		return SanityHeader{}, diagnose(b[:SanityHeaderSize])
	}
	h, _ := DecodeSanityHeader(b)
	return h, nil
}

// diagnose explains a mismatching header. It never accepts one.
func diagnose(b []byte) *FormatError {
	off := 0
	for off < len(b) && b[off] == referenceBytes[off] {
		off++
	}
	e := &FormatError{Offset: off, Field: fieldAt(off)}

	switch {
	case bytes.HasPrefix(b, []byte(arpaPrefix)):
		e.Reason = "not a binary model (ARPA text)"
	case off < len(MagicV5) && bytes.HasPrefix(b, []byte(magicPrefix)):
		e.Reason = fmt.Sprintf("format version mismatch: found version %q, want %q",
			foundVersion(b), versionOf(MagicV5))
	case off < len(MagicV5):
		e.Reason = "unknown file magic"
	case off < PaddedMagicSize:
		e.Reason = "nonzero magic padding"
	case bytes.Equal(b[PaddedMagicSize:], swappedBytes[PaddedMagicSize:]):
		e.Reason = "byte order mismatch"
	default:
		e.Reason = "canary mismatch"
	}
	return e
}

func foundVersion(b []byte) string {
	end := min(len(b), PaddedMagicSize)
	return versionOf(string(b[:end]))
}

func versionOf(magic string) string {
	v := strings.TrimPrefix(magic, magicPrefix)
	if i := strings.IndexAny(v, "\n\x00"); i >= 0 {
		v = v[:i]
	}
	return v
}
