// Package wire implements the binary token format of PumpkinScript programs
// (spec.md §4.1): a self-describing, streaming, zero-copy decoder that turns
// a program buffer into a sequence of data pushes and instruction tokens.
package wire

import (
	"fmt"

	"github.com/256dpi/turing/coding"
)

// Kind distinguishes the two token shapes the decoder can produce.
type Kind int

const (
	// KindPush marks a data push token; Bytes is the payload, borrowed
	// directly from the program buffer (zero-copy).
	KindPush Kind = iota
	// KindInstruction marks an instruction invocation; Bytes is the
	// instruction name, borrowed from the program buffer.
	KindInstruction
)

// Token is one decoded element of a program.
type Token struct {
	Kind  Kind
	Bytes []byte
}

// reserved markers, per spec §4.1.
const (
	tagByte1    = 0x79
	tagByte2    = 0x7A
	tagByte4    = 0x7B
	reservedLo  = 0x7C
	reservedHi  = 0x7F
	internalTag = 0x80
	instrLo     = 0x81
	instrHi     = 0xFF
)

// Decoder streams tokens out of a program buffer without copying payloads.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder wraps a program buffer. The buffer must outlive every Token
// produced by the decoder, since push/instruction bytes are slices into it.
func NewDecoder(program []byte) *Decoder {
	return &Decoder{buf: program}
}

// Done reports whether the stream has been fully consumed.
func (d *Decoder) Done() bool {
	return d.pos >= len(d.buf)
}

// Next decodes and returns the next token, or io.EOF-like (ok=false) at the
// end of the stream. Malformed streams return a decoding error.
func (d *Decoder) Next() (Token, bool, error) {
	if d.Done() {
		return Token{}, false, nil
	}

	tag := d.buf[d.pos]

	switch {
	case tag <= 0x78:
		return d.readPush(int(tag), 1)
	case tag == tagByte1:
		return d.readVarPush(1, 1)
	case tag == tagByte2:
		return d.readVarPush(2, 1)
	case tag == tagByte4:
		return d.readVarPush(4, 1)
	case tag >= reservedLo && tag <= reservedHi:
		return Token{}, false, fmt.Errorf("wire: reserved tag 0x%02X", tag)
	case tag == internalTag:
		return Token{}, false, fmt.Errorf("wire: internal marker not allowed in user program")
	default: // instrLo..instrHi
		nameLen := int(tag & 0x7F)
		if nameLen < 1 {
			return Token{}, false, fmt.Errorf("wire: empty instruction name")
		}
		return d.readInstruction(nameLen, 1)
	}
}

// readPush reads a fixed-tag data push (tag itself is the length).
func (d *Decoder) readPush(length, headerLen int) (Token, bool, error) {
	start := d.pos + headerLen
	end := start + length
	if end > len(d.buf) {
		return Token{}, false, fmt.Errorf("wire: push length %d exceeds remaining stream", length)
	}
	tok := Token{Kind: KindPush, Bytes: d.buf[start:end]}
	d.pos = end
	return tok, true, nil
}

// readVarPush reads a push whose length is given by the following
// sizeBytes big-endian bytes.
func (d *Decoder) readVarPush(sizeBytes, headerLen int) (Token, bool, error) {
	lenStart := d.pos + headerLen
	lenEnd := lenStart + sizeBytes
	if lenEnd > len(d.buf) {
		return Token{}, false, fmt.Errorf("wire: truncated length prefix")
	}
	length := 0
	for _, b := range d.buf[lenStart:lenEnd] {
		length = length<<8 | int(b)
	}
	start := lenEnd
	end := start + length
	if end > len(d.buf) || end < start {
		return Token{}, false, fmt.Errorf("wire: push length %d exceeds remaining stream", length)
	}
	tok := Token{Kind: KindPush, Bytes: d.buf[start:end]}
	d.pos = end
	return tok, true, nil
}

// readInstruction reads an instruction name of nameLen bytes.
func (d *Decoder) readInstruction(nameLen, headerLen int) (Token, bool, error) {
	start := d.pos + headerLen
	end := start + nameLen
	if end > len(d.buf) {
		return Token{}, false, fmt.Errorf("wire: instruction name length %d exceeds remaining stream", nameLen)
	}
	if nameLen > 127 {
		return Token{}, false, fmt.Errorf("wire: instruction name longer than 127 bytes")
	}
	tok := Token{Kind: KindInstruction, Bytes: d.buf[start:end]}
	d.pos = end
	return tok, true, nil
}

// Validate decodes program without producing tokens, returning whether it is
// well-formed. It backs the EVAL/VALID? instruction and never mutates state.
func Validate(program []byte) bool {
	dec := NewDecoder(program)
	for {
		_, ok, err := dec.Next()
		if err != nil {
			return false
		}
		if !ok {
			return true
		}
	}
}

// EncodePush encodes a value as a self-delimiting data-push token, choosing
// the shortest valid tag form, mirroring the decoder's token shapes exactly
// so that encode-then-decode round-trips (spec §8's decoding round-trip
// property).
func EncodePush(value []byte) []byte {
	n := len(value)

	switch {
	case n <= 0x78:
		buf := make([]byte, 1+n)
		buf[0] = byte(n)
		copy(buf[1:], value)
		return buf
	case n <= 0xFF:
		buf := make([]byte, 2+n)
		buf[0] = tagByte1
		buf[1] = byte(n)
		copy(buf[2:], value)
		return buf
	case n <= 0xFFFF:
		buf := make([]byte, 3+n)
		buf[0] = tagByte2
		buf[1] = byte(n >> 8)
		buf[2] = byte(n)
		copy(buf[3:], value)
		return buf
	default:
		buf := make([]byte, 5+n)
		buf[0] = tagByte4
		buf[1] = byte(n >> 24)
		buf[2] = byte(n >> 16)
		buf[3] = byte(n >> 8)
		buf[4] = byte(n)
		copy(buf[5:], value)
		return buf
	}
}

// EncodeValues concatenates a sequence of values as consecutive data-push
// tokens, as used by the WRAP instruction and by STACK serialization.
func EncodeValues(values [][]byte) ([]byte, *coding.Ref) {
	size := 0
	for _, v := range values {
		size += len(EncodePush(v))
	}
	buf, ref := coding.Borrow(size)
	off := 0
	for _, v := range values {
		tok := EncodePush(v)
		off += copy(buf[off:], tok)
	}
	return buf, ref
}

// DecodeValues re-decodes a values-only program (no instruction tokens
// permitted), as required by UNWRAP. It fails if any instruction token is
// encountered.
func DecodeValues(program []byte) ([][]byte, error) {
	dec := NewDecoder(program)
	var out [][]byte
	for {
		tok, ok, err := dec.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		if tok.Kind != KindPush {
			return nil, fmt.Errorf("wire: instruction token in values-only program")
		}
		out = append(out, tok.Bytes)
	}
}
