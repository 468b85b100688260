// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package classfile

// Field describes one field_info structure: access flags, a name and
// descriptor resolved through the constant pool, and its attributes (most
// commonly ConstantValue for a compile-time-constant static field).
type Field struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []Attribute
}

// Attribute returns the first attribute on f with the given name, or nil
// if none matches.
func (f *Field) Attribute(name string) *Attribute {
	return findAttribute(f.Attributes, name)
}

func decodeField(r *reader, ctx *attributeDecoderContext) (Field, error) {
	accessFlags, err := decodeAccessFlags(r, fieldAccessMask, ctx.onUnknownAccess)
	if err != nil {
		return Field{}, err
	}
	nameIndex, err := r.u16()
	if err != nil {
		return Field{}, err
	}
	descriptorIndex, err := r.u16()
	if err != nil {
		return Field{}, err
	}
	attributesCount, err := r.u16()
	if err != nil {
		return Field{}, err
	}
	attrs, err := ctx.decodeAttributes(r, attributesCount)
	if err != nil {
		return Field{}, err
	}
	return Field{
		AccessFlags:     accessFlags,
		NameIndex:       nameIndex,
		DescriptorIndex: descriptorIndex,
		Attributes:      attrs,
	}, nil
}

func findAttribute(attrs []Attribute, name string) *Attribute {
	for i := range attrs {
		if attrs[i].Name == name {
			return &attrs[i]
		}
	}
	return nil
}
