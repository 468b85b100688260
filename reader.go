// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package classfile

import "encoding/binary"

// reader is a random-access, big-endian, bounds-checked cursor over a
// borrowed byte slice. It is the only place in this package where bounds
// checking happens; every higher layer relies on it.
type reader struct {
	buf    []byte
	offset uint32
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) len() uint32 { return uint32(len(r.buf)) }

func (r *reader) remaining() uint32 { return r.len() - r.offset }

func (r *reader) pos() uint32 { return r.offset }

// seek sets the cursor to an absolute offset. The decoders in this package
// do not call it; the instruction decoder walks a code window with its own
// reader.
func (r *reader) seek(offset uint32) {
	r.offset = offset
}

func (r *reader) checkAdvance(width uint32) error {
	if r.offset > r.len() || width > r.len()-r.offset {
		return newParseError(ErrTruncated, int64(r.offset), nil)
	}
	return nil
}

func (r *reader) u8() (uint8, error) {
	if err := r.checkAdvance(1); err != nil {
		return 0, err
	}
	b := r.buf[r.offset]
	r.offset++
	return b, nil
}

func (r *reader) u16() (uint16, error) {
	if err := r.checkAdvance(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.offset:])
	r.offset += 2
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if err := r.checkAdvance(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.offset:])
	r.offset += 4
	return v, nil
}

func (r *reader) i32() (int32, error) {
	v, err := r.u32()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// slice returns a borrowed subslice of length n, advancing the cursor. The
// returned slice aliases the reader's backing array; callers must not
// retain it past the lifetime of the input buffer.
func (r *reader) slice(n uint32) ([]byte, error) {
	if err := r.checkAdvance(n); err != nil {
		return nil, err
	}
	s := r.buf[r.offset : r.offset+n]
	r.offset += n
	return s, nil
}
