// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

// Package classfile decodes the binary .class file format defined by the
// Java Virtual Machine specification, chapter 4, into a structured,
// inspectable in-memory representation. It does not execute, verify, link,
// or re-encode bytecode; it only parses.
package classfile

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/classfmt/classfile/log"
)

// ClassMagic is the required value of a class file's first four bytes.
const ClassMagic = 0xCAFEBABE

// DefaultMaxAttributeDepth bounds Code-in-Code (in Code...) recursion when
// Options.MaxAttributeDepth is left at zero.
const DefaultMaxAttributeDepth = 16

// Options configures parsing policy. A zero Options selects every default:
// skip unknown attributes, ignore unknown access bits, a recursion ceiling
// of DefaultMaxAttributeDepth, and a warn-level logger to stderr.
type Options struct {
	// OnUnknownAttribute selects the behavior for an attribute whose name
	// is not one of the eight recognized variants.
	OnUnknownAttribute UnknownAttributePolicy

	// OnUnknownAccessBits selects the behavior for an access-flags field
	// carrying bits outside its context's defined mask.
	OnUnknownAccessBits UnknownAccessBitsPolicy

	// MaxAttributeDepth bounds recursive Code-attribute nesting. Zero
	// selects DefaultMaxAttributeDepth.
	MaxAttributeDepth int

	// Logger receives non-fatal diagnostics without aborting the parse:
	// a debug-level summary after a successful parse. Skipped unknown
	// attributes and ignored unknown access bits are not logged. Nil
	// selects log.Default().
	Logger log.Logger
}

func (o *Options) normalized() *Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.MaxAttributeDepth == 0 {
		out.MaxAttributeDepth = DefaultMaxAttributeDepth
	}
	return &out
}

func (o *Options) helper() *log.Helper {
	if o.Logger == nil {
		return log.Default()
	}
	return log.NewHelper(o.Logger)
}

// ClassFile is the fully materialized Class Image described by §3: the
// root record produced by a successful Parse. Utf8Bytes, FloatBytes, and
// the operand slices of fixed-width instructions are borrowed views into
// the buffer the ClassFile was built from — see §3.3 — and remain valid
// only as long as that buffer is not mutated or discarded. The operands of
// wide, tableswitch, and lookupswitch are copies.
type ClassFile struct {
	Magic          uint32
	MinorVersion   uint16
	MajorVersion   uint16
	ConstantPool   *ConstantPool
	AccessFlags    AccessFlags
	ThisClass      uint16
	SuperClass     uint16
	Interfaces     []uint16
	Fields         []Field
	Methods        []Method
	Attributes     []Attribute

	data   []byte
	mapped mmap.MMap
	file   *os.File
	opts   *Options
	logger *log.Helper
}

// Attribute returns the first top-level class attribute named name, or nil
// if none matches.
func (c *ClassFile) Attribute(name string) *Attribute {
	return findAttribute(c.Attributes, name)
}

// Close releases any OS resources backing a ClassFile obtained from Open.
// It is a no-op for a ClassFile obtained from Parse or ParseWithOptions.
func (c *ClassFile) Close() error {
	if c.mapped != nil {
		_ = c.mapped.Unmap()
		c.mapped = nil
	}
	if c.file != nil {
		err := c.file.Close()
		c.file = nil
		return err
	}
	return nil
}

// Parse decodes a Java class file from a contiguous byte buffer using
// default options. The buffer is borrowed for the lifetime of the returned
// ClassFile; the caller must not mutate it afterward.
func Parse(data []byte) (*ClassFile, error) {
	return ParseWithOptions(data, nil)
}

// ParseWithOptions decodes a Java class file from a contiguous byte buffer
// under the given options. A nil opts behaves like Parse.
func ParseWithOptions(data []byte, opts *Options) (*ClassFile, error) {
	normalized := opts.normalized()
	cf := &ClassFile{data: data, opts: normalized, logger: normalized.helper()}
	if err := cf.parse(); err != nil {
		return nil, err
	}
	return cf, nil
}

// Open memory-maps the file at path and parses it. This is the convenience
// layer the teacher repo always ships alongside its byte-buffer entry
// point — the core decoder itself only ever needs Parse/ParseWithOptions.
// Callers must call Close when done.
func Open(path string, opts *Options) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	normalized := opts.normalized()
	cf := &ClassFile{data: data, mapped: data, file: f, opts: normalized, logger: normalized.helper()}
	if err := cf.parse(); err != nil {
		cf.Close()
		return nil, err
	}
	return cf, nil
}

// parse implements the top-level driver, §4.6: magic, versions, constant
// pool, access flags, this/super, interfaces, fields, methods, class
// attributes, then a trailing-bytes check.
func (c *ClassFile) parse() error {
	r := newReader(c.data)

	magic, err := r.u32()
	if err != nil {
		return err
	}
	if magic != ClassMagic {
		return newParseError(ErrBadMagic, 0, magic)
	}
	c.Magic = magic

	if c.MinorVersion, err = r.u16(); err != nil {
		return err
	}
	if c.MajorVersion, err = r.u16(); err != nil {
		return err
	}

	poolCount, err := r.u16()
	if err != nil {
		return err
	}
	c.ConstantPool, err = decodeConstantPool(r, poolCount)
	if err != nil {
		return err
	}

	ctx := &attributeDecoderContext{
		pool:               c.ConstantPool,
		onUnknownAttribute: c.opts.OnUnknownAttribute,
		onUnknownAccess:    c.opts.OnUnknownAccessBits,
		maxDepth:           c.opts.MaxAttributeDepth,
	}

	if c.AccessFlags, err = decodeAccessFlags(r, classAccessMask, c.opts.OnUnknownAccessBits); err != nil {
		return err
	}
	if c.ThisClass, err = r.u16(); err != nil {
		return err
	}
	if c.SuperClass, err = r.u16(); err != nil {
		return err
	}

	interfaceCount, err := r.u16()
	if err != nil {
		return err
	}
	c.Interfaces = make([]uint16, interfaceCount)
	for i := range c.Interfaces {
		if c.Interfaces[i], err = r.u16(); err != nil {
			return err
		}
	}

	fieldCount, err := r.u16()
	if err != nil {
		return err
	}
	c.Fields = make([]Field, fieldCount)
	for i := range c.Fields {
		if c.Fields[i], err = decodeField(r, ctx); err != nil {
			return err
		}
	}

	methodCount, err := r.u16()
	if err != nil {
		return err
	}
	c.Methods = make([]Method, methodCount)
	for i := range c.Methods {
		if c.Methods[i], err = decodeMethod(r, ctx); err != nil {
			return err
		}
	}

	attributesCount, err := r.u16()
	if err != nil {
		return err
	}
	if c.Attributes, err = ctx.decodeAttributes(r, attributesCount); err != nil {
		return err
	}

	if r.pos() != r.len() {
		return newParseError(ErrTrailingBytes, int64(r.pos()), r.len()-r.pos())
	}

	c.logger.Debugf("parsed class file: %d constants, %d fields, %d methods, %d attributes",
		c.ConstantPool.Count(), len(c.Fields), len(c.Methods), len(c.Attributes))
	return nil
}
