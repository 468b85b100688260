// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package classfile

import (
	"encoding/binary"
	"math"
)

// This file provides read-only projections over an already-decoded
// ClassFile, resolving constant pool indices into their referenced values.
// They stay at the level of the class file's own structures (internal
// names, UTF-8 strings, raw descriptors) and never build a typed Java
// language AST from them — that resolution belongs to a layer above this
// package.

// ClassName resolves ThisClass through the constant pool to the class's
// internal name (e.g. "java/lang/String").
func (c *ClassFile) ClassName() (string, error) {
	return c.resolveClassName(c.ThisClass)
}

// SuperClassName resolves SuperClass to its internal name. It returns ""
// with no error for java/lang/Object, whose SuperClass index is 0.
func (c *ClassFile) SuperClassName() (string, error) {
	if c.SuperClass == 0 {
		return "", nil
	}
	return c.resolveClassName(c.SuperClass)
}

// InterfaceNames resolves every entry of Interfaces to its internal name,
// in declaration order.
func (c *ClassFile) InterfaceNames() ([]string, error) {
	names := make([]string, len(c.Interfaces))
	for i, idx := range c.Interfaces {
		name, err := c.resolveClassName(idx)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

func (c *ClassFile) resolveClassName(index uint16) (string, error) {
	entry, err := c.ConstantPool.At(index)
	if err != nil {
		return "", err
	}
	if entry.Tag != ConstantClass {
		return "", newParseError(ErrMalformedPool, -1, index)
	}
	return c.Utf8String(entry.NameIndex)
}

// Utf8String resolves index to a Utf8 constant's bytes, validates them as
// UTF-8, and converts them to a Go string. Conversion is a copy;
// ConstantPool.Utf8 avoids it when the caller only needs to inspect, not
// retain, the value.
func (c *ClassFile) Utf8String(index uint16) (string, error) {
	b, err := c.ConstantPool.Utf8(index)
	if err != nil {
		return "", err
	}
	if !validUTF8(b) {
		return "", newParseError(ErrInvalidUtf8, -1, index)
	}
	return string(b), nil
}

// ConstantFloatBits resolves index to a Float constant and decodes its raw
// 4 bytes into a float32, per IEEE 754 single format (JVM spec §4.4.4).
func (c *ClassFile) ConstantFloatBits(index uint16) (float32, error) {
	entry, err := c.ConstantPool.At(index)
	if err != nil {
		return 0, err
	}
	if entry.Tag != ConstantFloat {
		return 0, newParseError(ErrMalformedPool, -1, index)
	}
	return math.Float32frombits(binary.BigEndian.Uint32(entry.FloatBytes)), nil
}

// ConstantDoubleBits resolves index to a Double constant and decodes its
// high/low 32-bit halves into a float64, per IEEE 754 double format (JVM
// spec §4.4.5).
func (c *ClassFile) ConstantDoubleBits(index uint16) (float64, error) {
	entry, err := c.ConstantPool.At(index)
	if err != nil {
		return 0, err
	}
	if entry.Tag != ConstantDouble {
		return 0, newParseError(ErrMalformedPool, -1, index)
	}
	bits := uint64(entry.HighBytes)<<32 | uint64(entry.LowBytes)
	return math.Float64frombits(bits), nil
}

// FieldName resolves f's NameIndex to a string.
func (c *ClassFile) FieldName(f *Field) (string, error) {
	return c.Utf8String(f.NameIndex)
}

// FieldDescriptor resolves f's DescriptorIndex to a string.
func (c *ClassFile) FieldDescriptor(f *Field) (string, error) {
	return c.Utf8String(f.DescriptorIndex)
}

// MethodName resolves m's NameIndex to a string.
func (c *ClassFile) MethodName(m *Method) (string, error) {
	return c.Utf8String(m.NameIndex)
}

// MethodDescriptor resolves m's DescriptorIndex to a string.
func (c *ClassFile) MethodDescriptor(m *Method) (string, error) {
	return c.Utf8String(m.DescriptorIndex)
}

// SourceFileName resolves the class's SourceFile attribute, if present, to
// a string. It returns "", nil when the class carries no SourceFile
// attribute (common for synthetic and generated classes).
func (c *ClassFile) SourceFileName() (string, error) {
	attr := c.Attribute(attrSourceFile)
	if attr == nil || attr.SourceFile == nil {
		return "", nil
	}
	return c.Utf8String(attr.SourceFile.SourceFileIndex)
}

// FindMethod returns the first method named name with descriptor desc, or
// nil if none matches. Constructors are named "<init>".
func (c *ClassFile) FindMethod(name, desc string) (*Method, error) {
	for i := range c.Methods {
		m := &c.Methods[i]
		mName, err := c.MethodName(m)
		if err != nil {
			return nil, err
		}
		if mName != name {
			continue
		}
		mDesc, err := c.MethodDescriptor(m)
		if err != nil {
			return nil, err
		}
		if mDesc == desc {
			return m, nil
		}
	}
	return nil, nil
}

// FindField returns the first field named name, or nil if none matches.
func (c *ClassFile) FindField(name string) (*Field, error) {
	for i := range c.Fields {
		f := &c.Fields[i]
		fName, err := c.FieldName(f)
		if err != nil {
			return nil, err
		}
		if fName == name {
			return f, nil
		}
	}
	return nil, nil
}
