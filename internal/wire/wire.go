/*
Copyright © 2020 ConsenSys

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package wire implements the canonical binary codec used by every
// top-level entity's to_bytes/from_bytes pair. The external .proto schema
// this wire format ultimately belongs to is out of scope for this module;
// what is in scope is emitting and consuming bytes that obey the same
// framing rules (tag/varint/length-delimited) that schema compiles down
// to, using the standard protobuf wire primitives directly rather than
// reimplementing them.
package wire

import (
	"math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Writer accumulates a length-delimited protobuf-wire-format message body.
// Fields with a Go zero value are omitted, matching proto3 semantics.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated message body.
func (w *Writer) Bytes() []byte { return w.buf }

// Empty reports whether nothing has been written.
func (w *Writer) Empty() bool { return len(w.buf) == 0 }

// Double appends a fixed64-encoded double field, unless v is the zero value.
func (w *Writer) Double(field protowire.Number, v float64) {
	if v == 0 {
		return
	}
	w.buf = protowire.AppendTag(w.buf, field, protowire.Fixed64Type)
	w.buf = protowire.AppendFixed64(w.buf, math.Float64bits(v))
}

// DoubleAlways appends a fixed64-encoded double field unconditionally, used
// for fields where the zero value is itself meaningful (e.g. a constant
// term of exactly 0 in a non-empty polynomial still needs the term absent,
// but a State value of exactly 0.0 must round-trip).
func (w *Writer) DoubleAlways(field protowire.Number, v float64) {
	w.buf = protowire.AppendTag(w.buf, field, protowire.Fixed64Type)
	w.buf = protowire.AppendFixed64(w.buf, math.Float64bits(v))
}

// Varint appends a varint field, unless v is zero.
func (w *Writer) Varint(field protowire.Number, v uint64) {
	if v == 0 {
		return
	}
	w.buf = protowire.AppendTag(w.buf, field, protowire.VarintType)
	w.buf = protowire.AppendVarint(w.buf, v)
}

// VarintAlways appends a varint field unconditionally.
func (w *Writer) VarintAlways(field protowire.Number, v uint64) {
	w.buf = protowire.AppendTag(w.buf, field, protowire.VarintType)
	w.buf = protowire.AppendVarint(w.buf, v)
}

// Bool appends a boolean field encoded as a varint, unless v is false.
func (w *Writer) Bool(field protowire.Number, v bool) {
	if !v {
		return
	}
	w.Varint(field, 1)
}

// String appends a length-delimited string field, unless s is empty.
func (w *Writer) String(field protowire.Number, s string) {
	if s == "" {
		return
	}
	w.buf = protowire.AppendTag(w.buf, field, protowire.BytesType)
	w.buf = protowire.AppendBytes(w.buf, []byte(s))
}

// BytesField appends a length-delimited bytes field, unless b is empty.
func (w *Writer) BytesField(field protowire.Number, b []byte) {
	if len(b) == 0 {
		return
	}
	w.buf = protowire.AppendTag(w.buf, field, protowire.BytesType)
	w.buf = protowire.AppendBytes(w.buf, b)
}

// Message appends sub as a length-delimited embedded message, unless it is
// empty.
func (w *Writer) Message(field protowire.Number, sub *Writer) {
	if sub == nil || sub.Empty() {
		return
	}
	w.buf = protowire.AppendTag(w.buf, field, protowire.BytesType)
	w.buf = protowire.AppendBytes(w.buf, sub.buf)
}

// MessageAlways appends sub as an embedded message even if empty, used for
// repeated-submessage fields where an empty entry is still a real element
// (e.g. a RemovedConstraint list position).
func (w *Writer) MessageAlways(field protowire.Number, sub *Writer) {
	if sub == nil {
		sub = NewWriter()
	}
	w.buf = protowire.AppendTag(w.buf, field, protowire.BytesType)
	w.buf = protowire.AppendBytes(w.buf, sub.buf)
}

// Field is one decoded (tag, payload) pair from a message body.
type Field struct {
	Number  protowire.Number
	Type    protowire.Type
	Varint  uint64
	Fixed64 uint64
	Bytes   []byte
}

// AsDouble interprets a Fixed64Type field as a float64.
func (f Field) AsDouble() float64 { return math.Float64frombits(f.Fixed64) }

// AsBool interprets a VarintType field as a bool.
func (f Field) AsBool() bool { return f.Varint != 0 }

// Reader consumes a message body field by field, in wire order.
type Reader struct {
	buf []byte
}

// NewReader wraps b for field-by-field consumption.
func NewReader(b []byte) *Reader { return &Reader{buf: b} }

// Next returns the next field, or ok=false when the buffer is exhausted.
func (r *Reader) Next() (Field, bool, error) {
	if len(r.buf) == 0 {
		return Field{}, false, nil
	}
	num, typ, n := protowire.ConsumeTag(r.buf)
	if n < 0 {
		return Field{}, false, errors.Wrap(protowire.ParseError(n), "consume tag")
	}
	r.buf = r.buf[n:]

	switch typ {
	case protowire.VarintType:
		v, n := protowire.ConsumeVarint(r.buf)
		if n < 0 {
			return Field{}, false, errors.Wrap(protowire.ParseError(n), "consume varint")
		}
		r.buf = r.buf[n:]
		return Field{Number: num, Type: typ, Varint: v}, true, nil
	case protowire.Fixed64Type:
		v, n := protowire.ConsumeFixed64(r.buf)
		if n < 0 {
			return Field{}, false, errors.Wrap(protowire.ParseError(n), "consume fixed64")
		}
		r.buf = r.buf[n:]
		return Field{Number: num, Type: typ, Fixed64: v}, true, nil
	case protowire.BytesType:
		v, n := protowire.ConsumeBytes(r.buf)
		if n < 0 {
			return Field{}, false, errors.Wrap(protowire.ParseError(n), "consume bytes")
		}
		r.buf = r.buf[n:]
		return Field{Number: num, Type: typ, Bytes: v}, true, nil
	case protowire.Fixed32Type:
		v, n := protowire.ConsumeFixed32(r.buf)
		if n < 0 {
			return Field{}, false, errors.Wrap(protowire.ParseError(n), "consume fixed32")
		}
		r.buf = r.buf[n:]
		return Field{Number: num, Type: typ, Varint: uint64(v)}, true, nil
	default:
		return Field{}, false, errors.Errorf("unsupported wire type %d", typ)
	}
}
