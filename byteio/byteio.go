// Package byteio provides the little-endian fixed-width codecs and the
// variable-length BIFF12 id/size integer codecs that every other package in
// this module builds on. Nothing here knows about records, sheets, or cells —
// it is pure byte-to-number (and back) plumbing.
package byteio

import (
	"encoding/binary"
	"fmt"
)

// Uint16 decodes a 2-byte little-endian unsigned integer.
func Uint16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }

// Uint32 decodes a 4-byte little-endian unsigned integer.
func Uint32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// Uint64 decodes an 8-byte little-endian unsigned integer.
func Uint64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

// PutUint16 encodes v as 2 little-endian bytes appended to dst.
func PutUint16(dst []byte, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return append(dst, buf[:]...)
}

// PutUint32 encodes v as 4 little-endian bytes appended to dst.
func PutUint32(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

// PutUint64 encodes v as 8 little-endian bytes appended to dst.
func PutUint64(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

// maxVarintBytes is the widest encoding this module ever produces or
// accepts for a BIFF12 id/size varint. A 4th byte with its continuation bit
// still set means the stream is corrupt rather than merely large.
const maxVarintBytes = 4

// DecodeID decodes a BIFF12 record-type id from the front of b.
// Each byte contributes its full 8 bits at an increasing byte position
// (byte-shift accumulation, not 7-bit stripping) and bit 7 of a byte signals
// that another byte follows — this is the encoding BIFF12 writers actually
// emit, grounded in the original reference scanner rather than in a
// simplified 7-bit description. It returns the decoded id and the number of
// bytes consumed.
func DecodeID(b []byte) (id int, n int, err error) {
	var v uint32
	for i := 0; i < maxVarintBytes; i++ {
		if i >= len(b) {
			return 0, 0, fmt.Errorf("byteio: DecodeID: short buffer (%d bytes)", len(b))
		}
		c := uint32(b[i])
		v += c << (8 * i)
		if c&0x80 == 0 {
			return int(v), i + 1, nil
		}
		if i == maxVarintBytes-1 {
			return 0, 0, fmt.Errorf("byteio: DecodeID: continuation bit set on 4th byte")
		}
	}
	panic("byteio: DecodeID: unreachable")
}

// EncodeID appends the BIFF12 varint encoding of id to dst.
// The inverse of DecodeID for every id the byte-shift scheme can represent:
// emits the fewest bytes such that re-decoding yields id, using byte-shift
// composition with the continuation bit in bit 7. Under that scheme every
// non-final byte keeps its bit 7 in the value, so an id above 0x7F whose low
// byte has bit 7 clear (e.g. 0x100, 0x4000) has no encoding; for such an id
// the bytes EncodeID emits decode to a different id.
func EncodeID(dst []byte, id int) []byte {
	v := uint32(id)
	for {
		b := byte(v & 0xFF)
		v >>= 8
		if v != 0 {
			dst = append(dst, b|0x80)
			continue
		}
		// Last byte: only set the continuation bit if the low 7 bits of what
		// remains would otherwise be ambiguous with a following byte — BIFF12
		// ids never need this, so the terminal byte is emitted bare unless its
		// own top bit happens to be part of the value (id <= 0x7F for 1 byte).
		if b&0x80 != 0 && id > 0x7F {
			// Values needing a final byte with bit7 set require one more
			// (all-zero) continuation byte to remain decodable.
			dst = append(dst, b)
			dst = append(dst, 0x00)
			return dst
		}
		dst = append(dst, b)
		return dst
	}
}

// DecodeSize decodes a BIFF12 record length from the front of b as a
// standard 7-bit little-endian (LEB128-style) varint: bits 0-6 of each byte
// carry payload, bit 7 signals continuation. Returns the decoded size and
// bytes consumed.
func DecodeSize(b []byte) (size int, n int, err error) {
	var v uint32
	for i := 0; i < maxVarintBytes; i++ {
		if i >= len(b) {
			return 0, 0, fmt.Errorf("byteio: DecodeSize: short buffer (%d bytes)", len(b))
		}
		c := uint32(b[i])
		v += (c & 0x7F) << (7 * uint32(i))
		if c&0x80 == 0 {
			return int(v), i + 1, nil
		}
		if i == maxVarintBytes-1 {
			return 0, 0, fmt.Errorf("byteio: DecodeSize: continuation bit set on 4th byte")
		}
	}
	panic("byteio: DecodeSize: unreachable")
}

// EncodeSize appends the 7-bit varint encoding of size to dst.
func EncodeSize(dst []byte, size int) []byte {
	v := uint32(size)
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			dst = append(dst, b|0x80)
			continue
		}
		dst = append(dst, b)
		return dst
	}
}
