package record

import "github.com/rxlsgo/rxls/byteio"

// Encode appends the BIFF12 wire encoding of a single (id, payload) record
// to dst: a variable-length id, a variable-length length, then the payload
// bytes verbatim. It is the exact inverse of Reader.Next/Scan for every id
// byteio.EncodeID can represent, and exists so
// the round-trip properties (encode then decode yields the original record)
// can be tested without a third-party fixture library.
func Encode(dst []byte, id int, payload []byte) []byte {
	dst = byteio.EncodeID(dst, id)
	dst = byteio.EncodeSize(dst, len(payload))
	dst = append(dst, payload...)
	return dst
}

// EncodeAll concatenates the wire encoding of every record in recs, in order.
func EncodeAll(recs []Record) []byte {
	var buf []byte
	for _, rec := range recs {
		buf = Encode(buf, rec.ID, rec.Data)
	}
	return buf
}
