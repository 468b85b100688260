// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package classfile

import "encoding/binary"

// classBuilder hand-assembles a well-formed class file byte buffer for use
// as a test fixture. There is no javac available to produce real .class
// files in this environment, so tests build the minimal buffers they need
// directly — see DESIGN.md for why this replaces the teacher's disk-fixture
// convention.
//
// Usage: append constant pool entries first (the cp* methods, which return
// the 1-based index just written), then call header() to start appending the
// access_flags-onward portion, then finish() to get the full buffer.
type classBuilder struct {
	pool      []byte
	poolSlots int // number of 1-based slots consumed so far
	rest      []byte
}

func newClassBuilder() *classBuilder {
	return &classBuilder{}
}

func appendU8(buf []byte, v uint8) []byte { return append(buf, v) }
func appendU16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}
func appendU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func (b *classBuilder) cpUtf8(s string) uint16 {
	b.poolSlots++
	idx := uint16(b.poolSlots)
	b.pool = appendU8(b.pool, uint8(ConstantUtf8))
	b.pool = appendU16(b.pool, uint16(len(s)))
	b.pool = append(b.pool, []byte(s)...)
	return idx
}

func (b *classBuilder) cpClass(nameIndex uint16) uint16 {
	b.poolSlots++
	idx := uint16(b.poolSlots)
	b.pool = appendU8(b.pool, uint8(ConstantClass))
	b.pool = appendU16(b.pool, nameIndex)
	return idx
}

func (b *classBuilder) cpNameAndType(nameIndex, descIndex uint16) uint16 {
	b.poolSlots++
	idx := uint16(b.poolSlots)
	b.pool = appendU8(b.pool, uint8(ConstantNameAndType))
	b.pool = appendU16(b.pool, nameIndex)
	b.pool = appendU16(b.pool, descIndex)
	return idx
}

func (b *classBuilder) cpMethodref(classIndex, natIndex uint16) uint16 {
	b.poolSlots++
	idx := uint16(b.poolSlots)
	b.pool = appendU8(b.pool, uint8(ConstantMethodref))
	b.pool = appendU16(b.pool, classIndex)
	b.pool = appendU16(b.pool, natIndex)
	return idx
}

func (b *classBuilder) cpFieldref(classIndex, natIndex uint16) uint16 {
	b.poolSlots++
	idx := uint16(b.poolSlots)
	b.pool = appendU8(b.pool, uint8(ConstantFieldref))
	b.pool = appendU16(b.pool, classIndex)
	b.pool = appendU16(b.pool, natIndex)
	return idx
}

func (b *classBuilder) cpInteger(v int32) uint16 {
	b.poolSlots++
	idx := uint16(b.poolSlots)
	b.pool = appendU8(b.pool, uint8(ConstantInteger))
	b.pool = appendU32(b.pool, uint32(v))
	return idx
}

// cpLong occupies two pool slots, per the Long/Double dual-slot rule.
func (b *classBuilder) cpLong(v uint64) uint16 {
	b.poolSlots++
	idx := uint16(b.poolSlots)
	b.poolSlots++ // the unusable placeholder slot that follows
	b.pool = appendU8(b.pool, uint8(ConstantLong))
	b.pool = appendU32(b.pool, uint32(v>>32))
	b.pool = appendU32(b.pool, uint32(v))
	return idx
}

func (b *classBuilder) cpMethodHandle(kind ReferenceKind, refIndex uint16) uint16 {
	b.poolSlots++
	idx := uint16(b.poolSlots)
	b.pool = appendU8(b.pool, uint8(ConstantMethodHandle))
	b.pool = appendU8(b.pool, uint8(kind))
	b.pool = appendU16(b.pool, refIndex)
	return idx
}

func (b *classBuilder) cpMethodType(descIndex uint16) uint16 {
	b.poolSlots++
	idx := uint16(b.poolSlots)
	b.pool = appendU8(b.pool, uint8(ConstantMethodType))
	b.pool = appendU16(b.pool, descIndex)
	return idx
}

func (b *classBuilder) cpInvokeDynamic(bootstrapIndex, natIndex uint16) uint16 {
	b.poolSlots++
	idx := uint16(b.poolSlots)
	b.pool = appendU8(b.pool, uint8(ConstantInvokeDynamic))
	b.pool = appendU16(b.pool, bootstrapIndex)
	b.pool = appendU16(b.pool, natIndex)
	return idx
}

// poolCount returns the constant_pool_count value for the entries
// appended so far: one more than the number of slots consumed.
func (b *classBuilder) poolCount() uint16 {
	return uint16(b.poolSlots + 1)
}

// header appends access_flags, this_class, super_class, and an empty
// interfaces table to the post-pool portion of the buffer.
func (b *classBuilder) header(accessFlags AccessFlags, thisClass, superClass uint16) *classBuilder {
	b.rest = appendU16(b.rest, uint16(accessFlags))
	b.rest = appendU16(b.rest, thisClass)
	b.rest = appendU16(b.rest, superClass)
	b.rest = appendU16(b.rest, 0) // interfaces_count
	return b
}

func (b *classBuilder) u16(v uint16) *classBuilder {
	b.rest = appendU16(b.rest, v)
	return b
}

func (b *classBuilder) u32(v uint32) *classBuilder {
	b.rest = appendU32(b.rest, v)
	return b
}

func (b *classBuilder) bytes(v []byte) *classBuilder {
	b.rest = append(b.rest, v...)
	return b
}

// finish assembles the complete class file: magic, the given minor/major
// version, the constant pool, and whatever was appended to rest via
// header/u16/u32/bytes.
func (b *classBuilder) finish(minor, major uint16) []byte {
	out := appendU32(nil, ClassMagic)
	out = appendU16(out, minor)
	out = appendU16(out, major)
	out = appendU16(out, b.poolCount())
	out = append(out, b.pool...)
	out = append(out, b.rest...)
	return out
}

// minimalClassBytes returns the smallest valid class file: a public class
// named Minimal extending java/lang/Object, with no interfaces, fields,
// methods, or class attributes.
func minimalClassBytes() []byte {
	b := newClassBuilder()
	objectName := b.cpUtf8("java/lang/Object")
	objectClass := b.cpClass(objectName)
	thisName := b.cpUtf8("Minimal")
	thisClass := b.cpClass(thisName)

	b.header(AccPublic, thisClass, objectClass)
	b.u16(0) // fields_count
	b.u16(0) // methods_count
	b.u16(0) // attributes_count
	return b.finish(0, 61)
}
