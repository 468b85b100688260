// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package classfile

// Method describes one method_info structure. Its shape is identical to
// Field's — access flags, a name and descriptor, and attributes — but the
// attributes that matter in practice differ: methods with a body carry a
// Code attribute, abstract and native methods do not.
type Method struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []Attribute
}

// Attribute returns the first attribute on m with the given name, or nil
// if none matches.
func (m *Method) Attribute(name string) *Attribute {
	return findAttribute(m.Attributes, name)
}

// Code returns m's Code attribute, or nil for an abstract or native
// method, which carry none.
func (m *Method) Code() *CodeAttribute {
	if a := m.Attribute(attrCode); a != nil {
		return a.Code
	}
	return nil
}

func decodeMethod(r *reader, ctx *attributeDecoderContext) (Method, error) {
	accessFlags, err := decodeAccessFlags(r, methodAccessMask, ctx.onUnknownAccess)
	if err != nil {
		return Method{}, err
	}
	nameIndex, err := r.u16()
	if err != nil {
		return Method{}, err
	}
	descriptorIndex, err := r.u16()
	if err != nil {
		return Method{}, err
	}
	attributesCount, err := r.u16()
	if err != nil {
		return Method{}, err
	}
	attrs, err := ctx.decodeAttributes(r, attributesCount)
	if err != nil {
		return Method{}, err
	}
	return Method{
		AccessFlags:     accessFlags,
		NameIndex:       nameIndex,
		DescriptorIndex: descriptorIndex,
		Attributes:      attrs,
	}, nil
}
