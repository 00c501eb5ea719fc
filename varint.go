package engine

import (
	"bytes"
	"fmt"
	"math"
)

// Compressed-varint (cvarint): an unsigned integer coded in 7-bit
// payload groups, MSB set meaning "continue". Used for every on-disk
// integer in a postings block (§6.1/§6.2) and, pre-delta, for the
// in-memory absolute posting triple (§4.2).
//
// Encoded and decoded byte-at-a-time by hand rather than with
// encoding/binary's fixed-width helpers (which serialization.go uses),
// since the whole point of cvarint is variable width.

// putUvarint appends the cvarint encoding of v to buf and returns the
// extended slice.
func putUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// uvarintSize returns the number of bytes putUvarint would emit for v.
func uvarintSize(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// getUvarint decodes a cvarint from the front of buf, returning the
// value, the number of bytes consumed, and an error wrapping ErrCorrupt
// if buf is exhausted before a terminating byte (MSB clear) is seen.
func getUvarint(buf []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i, b := range buf {
		if shift >= 64 {
			return 0, 0, fmt.Errorf("cvarint: %w: too many continuation bytes", ErrCorrupt)
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, fmt.Errorf("cvarint: %w: truncated varint", ErrCorrupt)
}

// cvarintReader is a forward-only cursor over a byte slice that decodes
// a stream of cvarints. It mirrors the teacher's indexDecoder cursor
// shape in serialization.go.
type cvarintReader struct {
	data []byte
	pos  int
}

func newCvarintReader(data []byte) *cvarintReader {
	return &cvarintReader{data: data}
}

func (r *cvarintReader) done() bool {
	return r.pos >= len(r.data)
}

func (r *cvarintReader) readUvarint() (uint64, error) {
	v, n, err := getUvarint(r.data[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}

func (r *cvarintReader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, fmt.Errorf("cvarint: %w: short read", ErrCorrupt)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// cvarintWriter accumulates a sequence of cvarint-encoded values.
type cvarintWriter struct {
	buf bytes.Buffer
}

func (w *cvarintWriter) writeUvarint(v uint64) {
	var tmp [10]byte
	n := 0
	for v >= 0x80 {
		tmp[n] = byte(v) | 0x80
		v >>= 7
		n++
	}
	tmp[n] = byte(v)
	n++
	w.buf.Write(tmp[:n])
}

func (w *cvarintWriter) writeBytes(b []byte) {
	w.buf.Write(b)
}

func (w *cvarintWriter) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *cvarintWriter) Len() int {
	return w.buf.Len()
}

func (w *cvarintWriter) Reset() {
	w.buf.Reset()
}

// encodeAbsolutePosting appends the in-memory (pre-merge) absolute
// encoding of one posting — three (or four, if weighted) compressed
// varints: doc_id, position, field_id[, weight_bits] — per §4.2's "three
// compressed-varints per posting" rule. Weight, when present, is carried
// as its IEEE-754 bit pattern zig-zag-free (weights are always >= 0 in
// this engine's usage) so it round-trips exactly through a cvarint.
func encodeAbsolutePosting(w *cvarintWriter, p Posting) {
	w.writeUvarint(uint64(p.DocId))
	w.writeUvarint(uint64(p.Position))
	w.writeUvarint(uint64(p.FieldId))
	if p.HasWeight {
		w.writeUvarint(weightToBits(p.TermWeight))
	}
}

// decodeAbsolutePosting reads one posting in the in-memory absolute
// triple/quad form. hasWeights tells the decoder whether a trailing
// weight field is present, since the format has no per-posting flag
// (per §9 Open Question #3 / SUPPLEMENTED FEATURES #2, gated per block).
func decodeAbsolutePosting(r *cvarintReader, hasWeights bool) (Posting, error) {
	var p Posting
	doc, err := r.readUvarint()
	if err != nil {
		return p, err
	}
	pos, err := r.readUvarint()
	if err != nil {
		return p, err
	}
	fid, err := r.readUvarint()
	if err != nil {
		return p, err
	}
	p.DocId = DocId(doc)
	p.Position = uint32(pos)
	p.FieldId = FieldId(fid)
	if hasWeights {
		bits, err := r.readUvarint()
		if err != nil {
			return p, err
		}
		p.TermWeight = bitsToWeight(bits)
		p.HasWeight = true
	}
	return p, nil
}

// encodeDeltaPosting appends the on-disk delta form of one posting per
// §6.2: Δdoc, then (absolute position if Δdoc>0, else positional gap),
// then field_id, then an optional trailing weight.
//
// prevDoc/prevPos is the previous posting's (doc_id, position) in the
// same walk; callers start with prevDoc=0, prevPos=0 since DocId 0 is
// never assigned and so a Δdoc against it is always > 0 for the first
// posting.
func encodeDeltaPosting(w *cvarintWriter, p Posting, prevDoc DocId, prevPos uint32) {
	deltaDoc := uint64(p.DocId) - uint64(prevDoc)
	w.writeUvarint(deltaDoc)
	if deltaDoc > 0 {
		w.writeUvarint(uint64(p.Position))
	} else {
		w.writeUvarint(uint64(p.Position - prevPos))
	}
	w.writeUvarint(uint64(p.FieldId))
	if p.HasWeight {
		w.writeUvarint(weightToBits(p.TermWeight))
	}
}

// decodeDeltaPosting reads one posting in the on-disk delta form,
// reconstructing the absolute (doc_id, position) from the running
// prevDoc/prevPos state per the rule in §6.2.
func decodeDeltaPosting(r *cvarintReader, prevDoc DocId, prevPos uint32, hasWeights bool) (p Posting, nextDoc DocId, nextPos uint32, err error) {
	deltaDoc, err := r.readUvarint()
	if err != nil {
		return p, prevDoc, prevPos, err
	}
	second, err := r.readUvarint()
	if err != nil {
		return p, prevDoc, prevPos, err
	}
	fid, err := r.readUvarint()
	if err != nil {
		return p, prevDoc, prevPos, err
	}
	var doc DocId
	var pos uint32
	if deltaDoc > 0 {
		doc = prevDoc + DocId(deltaDoc)
		pos = uint32(second)
	} else {
		doc = prevDoc
		pos = prevPos + uint32(second)
	}
	p = Posting{DocId: doc, Position: pos, FieldId: FieldId(fid)}
	if hasWeights {
		bits, err := r.readUvarint()
		if err != nil {
			return p, prevDoc, prevPos, err
		}
		p.TermWeight = bitsToWeight(bits)
		p.HasWeight = true
	}
	return p, doc, pos, nil
}

// weightToBits/bitsToWeight carry a non-negative float64 term weight as
// a cvarint by way of its IEEE-754 bit pattern. No sign handling is
// done: the bit pattern is carried unchanged.
func weightToBits(f float64) uint64 {
	return math.Float64bits(f)
}

func bitsToWeight(b uint64) float64 {
	return math.Float64frombits(b)
}
