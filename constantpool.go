// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package classfile

// Constant is a single constant pool entry. Only the fields relevant to
// its Tag are populated; the rest carry their zero value. Utf8Bytes and
// FloatBytes/HighBytes/LowBytes-derived float/double values are not
// produced here because this package never copies the pool's raw bytes —
// see ConstantFloatBits/ConstantDoubleBits on ClassFile.
type Constant struct {
	Tag ConstantTag

	// Class, String, MethodType
	NameIndex       uint16 // Class.name_index, NameAndType.name_index
	StringIndex     uint16 // String.string_index
	DescriptorIndex uint16 // NameAndType.descriptor_index, MethodType.descriptor_index

	// Fieldref, Methodref, InterfaceMethodref
	ClassIndex       uint16
	NameAndTypeIndex uint16

	// Integer
	IntValue int32

	// Float: raw 4 bytes, borrowed from the input buffer.
	FloatBytes []byte

	// Long, Double: high/low 32-bit halves, per JVM spec order.
	HighBytes uint32
	LowBytes  uint32

	// Utf8: length-prefixed borrowed byte slice. Not decoded or
	// validated as UTF-8 at this layer — see §4.3 step c.
	Utf8Bytes []byte

	// MethodHandle
	ReferenceKind  ReferenceKind
	ReferenceIndex uint16

	// InvokeDynamic
	BootstrapMethodAttrIndex uint16

	// longDoublePlaceholder marks the unusable slot that follows a Long
	// or Double entry, per JVM spec §4.4.5.
	longDoublePlaceholder bool
}

// ConstantPool is the ordered, 1-indexed table of constant pool entries.
// Index 0 and the slot following every Long/Double are unusable
// placeholders; Entries[0] is always the zero Constant.
type ConstantPool struct {
	Entries []Constant
}

// Count returns constant_pool_count — one more than the highest usable
// index, mirroring the raw class file field.
func (p *ConstantPool) Count() int { return len(p.Entries) }

// At returns the entry at the given 1-based pool index, or an error if the
// index is 0, out of range, or lands on a Long/Double placeholder slot.
func (p *ConstantPool) At(index uint16) (*Constant, error) {
	if index == 0 || int(index) >= len(p.Entries) {
		return nil, newParseError(ErrMalformedPool, -1, index)
	}
	c := &p.Entries[index]
	if c.longDoublePlaceholder {
		return nil, newParseError(ErrMalformedPool, -1, index)
	}
	return c, nil
}

// Utf8 resolves index to a Utf8 constant's bytes. It does not validate
// UTF-8; callers that need a Go string should call ClassFile.Utf8String,
// which does.
func (p *ConstantPool) Utf8(index uint16) ([]byte, error) {
	c, err := p.At(index)
	if err != nil {
		return nil, err
	}
	if c.Tag != ConstantUtf8 {
		return nil, newParseError(ErrMalformedPool, -1, index)
	}
	return c.Utf8Bytes, nil
}

// decodeConstantPool implements §4.3: a linear scan of constant_pool_count-1
// entries. Long and Double each occupy two slots; the decoder inserts a
// placeholder at the gap and advances the loop index by one extra, per JVM
// spec §4.4.5. The placeholder rule is the one the original implementation
// this format was distilled from does not apply — see DESIGN.md.
func decodeConstantPool(r *reader, count uint16) (*ConstantPool, error) {
	pool := &ConstantPool{Entries: make([]Constant, count)}

	for i := uint16(1); i < count; i++ {
		tagOffset := int64(r.pos())
		tagByte, err := r.u8()
		if err != nil {
			return nil, err
		}
		tag, err := constantTagOf(tagByte, tagOffset)
		if err != nil {
			return nil, err
		}

		c := Constant{Tag: tag}
		switch tag {
		case ConstantClass:
			c.NameIndex, err = r.u16()
		case ConstantFieldref, ConstantMethodref, ConstantInterfaceMethodref:
			c.ClassIndex, err = r.u16()
			if err == nil {
				c.NameAndTypeIndex, err = r.u16()
			}
		case ConstantString:
			c.StringIndex, err = r.u16()
		case ConstantInteger:
			c.IntValue, err = r.i32()
		case ConstantFloat:
			c.FloatBytes, err = r.slice(4)
		case ConstantLong, ConstantDouble:
			c.HighBytes, err = r.u32()
			if err == nil {
				c.LowBytes, err = r.u32()
			}
		case ConstantNameAndType:
			c.NameIndex, err = r.u16()
			if err == nil {
				c.DescriptorIndex, err = r.u16()
			}
		case ConstantUtf8:
			var length uint16
			length, err = r.u16()
			if err == nil {
				c.Utf8Bytes, err = r.slice(uint32(length))
			}
		case ConstantMethodHandle:
			var kindByte uint8
			kindOffset := int64(r.pos())
			kindByte, err = r.u8()
			if err == nil {
				c.ReferenceKind, err = referenceKindOf(kindByte, kindOffset)
			}
			if err == nil {
				c.ReferenceIndex, err = r.u16()
			}
		case ConstantMethodType:
			c.DescriptorIndex, err = r.u16()
		case ConstantInvokeDynamic:
			c.BootstrapMethodAttrIndex, err = r.u16()
			if err == nil {
				c.NameAndTypeIndex, err = r.u16()
			}
		}
		if err != nil {
			return nil, err
		}

		if int(i) >= len(pool.Entries) {
			return nil, newParseError(ErrMalformedPool, tagOffset, nil)
		}
		pool.Entries[i] = c

		if tag == ConstantLong || tag == ConstantDouble {
			i++
			if int(i) >= len(pool.Entries) {
				return nil, newParseError(ErrMalformedPool, tagOffset, nil)
			}
			pool.Entries[i] = Constant{longDoublePlaceholder: true}
		}
	}

	return pool, nil
}
