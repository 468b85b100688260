// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package classfile

// UnknownAttributePolicy controls what happens when an attribute's name
// does not match one of the recognized variants, per §4.4 step 4.
type UnknownAttributePolicy int

const (
	// SkipUnknownAttribute advances past the attribute's bytes without
	// decoding them and keeps the attribute with its undecoded body in
	// Raw. This is the default: attribute_length is authoritative, so
	// skipping is always safe in byte count.
	SkipUnknownAttribute UnknownAttributePolicy = iota
	// RejectUnknownAttribute aborts the parse with ErrUnknownAttribute.
	RejectUnknownAttribute
)

// UnknownAccessBitsPolicy controls what happens when an access-flags field
// carries bits outside the mask defined for its context.
type UnknownAccessBitsPolicy int

const (
	// IgnoreUnknownAccessBits preserves unknown bits without complaint.
	// This is the default.
	IgnoreUnknownAccessBits UnknownAccessBitsPolicy = iota
	// RejectUnknownAccessBits aborts the parse with ErrUnknownAccessBits.
	RejectUnknownAccessBits
)

// Recognized attribute names, per §4.4's dispatch table.
const (
	attrConstantValue    = "ConstantValue"
	attrCode             = "Code"
	attrInnerClasses     = "InnerClasses"
	attrSourceFile       = "SourceFile"
	attrLineNumberTable  = "LineNumberTable"
	attrBootstrapMethods = "BootstrapMethods"
	attrMethodParameters = "MethodParameters"
	attrNestMembers      = "NestMembers"
)

// Attribute is a single decoded class/field/method/Code attribute. Name is
// the resolved UTF-8 attribute name; exactly one of the typed payload
// fields below is meaningful, selected by Name, except for attributes
// skipped under SkipUnknownAttribute, which carry only Raw.
type Attribute struct {
	NameIndex uint16
	Length    uint32
	Name      string

	ConstantValue    *ConstantValueAttribute
	Code             *CodeAttribute
	InnerClasses     *InnerClassesAttribute
	SourceFile       *SourceFileAttribute
	LineNumberTable  *LineNumberTableAttribute
	BootstrapMethods *BootstrapMethodsAttribute
	MethodParameters *MethodParametersAttribute
	NestMembers      *NestMembersAttribute

	// Raw holds the attribute's undecoded body, present only when the
	// attribute was skipped under SkipUnknownAttribute.
	Raw []byte
}

// ConstantValueAttribute carries a field's compile-time constant value, as
// an index into the constant pool.
type ConstantValueAttribute struct {
	ConstantValueIndex uint16
}

// ExceptionTableEntry is one row of a Code attribute's exception table.
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

// CodeAttribute carries a method's bytecode plus its ancillary tables. It
// is recursive: Attributes may itself contain nested attributes, decoded
// through the same dispatcher.
type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	CodeLength     uint32
	Instructions   []Instruction
	ExceptionTable []ExceptionTableEntry
	Attributes     []Attribute
}

// InnerClassEntry is one row of an InnerClasses attribute.
type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

// InnerClassesAttribute lists the classes and interfaces that are not
// package members, per JVM §4.7.6.
type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

// SourceFileAttribute names the source file a class was compiled from.
type SourceFileAttribute struct {
	SourceFileIndex uint16
}

// LineNumberTableEntry maps a bytecode offset to a source line.
type LineNumberTableEntry struct {
	StartPC    uint16
	LineNumber uint16
}

// LineNumberTableAttribute is debug info correlating bytecode offsets with
// source lines.
type LineNumberTableAttribute struct {
	Entries []LineNumberTableEntry
}

// BootstrapMethodEntry is one row of a BootstrapMethods attribute.
type BootstrapMethodEntry struct {
	BootstrapMethodRef uint16
	Arguments          []uint16
}

// BootstrapMethodsAttribute holds the bootstrap methods referenced by
// invokedynamic instructions' InvokeDynamic constants.
type BootstrapMethodsAttribute struct {
	Methods []BootstrapMethodEntry
}

// MethodParameterEntry is one row of a MethodParameters attribute.
type MethodParameterEntry struct {
	NameIndex uint16
	Flags     AccessFlags
}

// MethodParametersAttribute names a method's formal parameters.
type MethodParametersAttribute struct {
	Parameters []MethodParameterEntry
}

// NestMembersAttribute lists the classes permitted to claim membership in
// a nest hosted by this class, per JVM §4.7.29.
type NestMembersAttribute struct {
	Classes []uint16
}

// attributeDecoderContext threads the constant pool and the configured
// policies through attribute decoding, including across Code's recursive
// descent into nested attributes.
type attributeDecoderContext struct {
	pool               *ConstantPool
	onUnknownAttribute UnknownAttributePolicy
	onUnknownAccess    UnknownAccessBitsPolicy
	maxDepth           int
	depth              int
}

// decodeAttributes implements §4.4: read a fixed count of attributes, each
// resolved by name against the pool and dispatched into its structured
// variant.
func (ctx *attributeDecoderContext) decodeAttributes(r *reader, count uint16) ([]Attribute, error) {
	if ctx.depth > ctx.maxDepth {
		return nil, newParseError(ErrAttributeDepthExceeded, int64(r.pos()), ctx.depth)
	}

	attrs := make([]Attribute, 0, count)
	for i := uint16(0); i < count; i++ {
		attr, err := ctx.decodeOne(r)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func (ctx *attributeDecoderContext) decodeOne(r *reader) (Attribute, error) {
	nameIndexOffset := int64(r.pos())
	nameIndex, err := r.u16()
	if err != nil {
		return Attribute{}, err
	}
	length, err := r.u32()
	if err != nil {
		return Attribute{}, err
	}

	nameBytes, err := ctx.pool.Utf8(nameIndex)
	if err != nil {
		return Attribute{}, newParseError(ErrInvalidNameIndex, nameIndexOffset, nameIndex)
	}
	if !validUTF8(nameBytes) {
		return Attribute{}, newParseError(ErrInvalidUtf8, nameIndexOffset, nameIndex)
	}
	name := string(nameBytes)

	attr := Attribute{NameIndex: nameIndex, Length: length, Name: name}

	bodyStart := r.pos()
	switch name {
	case attrConstantValue:
		attr.ConstantValue, err = ctx.decodeConstantValue(r)
	case attrCode:
		attr.Code, err = ctx.decodeCode(r)
	case attrInnerClasses:
		attr.InnerClasses, err = ctx.decodeInnerClasses(r)
	case attrSourceFile:
		attr.SourceFile, err = ctx.decodeSourceFile(r)
	case attrLineNumberTable:
		attr.LineNumberTable, err = ctx.decodeLineNumberTable(r)
	case attrBootstrapMethods:
		attr.BootstrapMethods, err = ctx.decodeBootstrapMethods(r)
	case attrMethodParameters:
		attr.MethodParameters, err = ctx.decodeMethodParameters(r)
	case attrNestMembers:
		attr.NestMembers, err = ctx.decodeNestMembers(r)
	default:
		if ctx.onUnknownAttribute == RejectUnknownAttribute {
			return Attribute{}, newParseError(ErrUnknownAttribute, nameIndexOffset, name)
		}
		attr.Raw, err = r.slice(length)
	}
	if err != nil {
		return Attribute{}, err
	}

	if consumed := r.pos() - bodyStart; consumed != length && attr.Raw == nil {
		return Attribute{}, newParseError(ErrMalformedPool, int64(bodyStart), name)
	}
	return attr, nil
}

func (ctx *attributeDecoderContext) decodeConstantValue(r *reader) (*ConstantValueAttribute, error) {
	idx, err := r.u16()
	if err != nil {
		return nil, err
	}
	return &ConstantValueAttribute{ConstantValueIndex: idx}, nil
}

// decodeCode implements the Code attribute layout in §4.4, including the
// recursive descent into nested attributes via the same decoder.
func (ctx *attributeDecoderContext) decodeCode(r *reader) (*CodeAttribute, error) {
	maxStack, err := r.u16()
	if err != nil {
		return nil, err
	}
	maxLocals, err := r.u16()
	if err != nil {
		return nil, err
	}
	codeLength, err := r.u32()
	if err != nil {
		return nil, err
	}
	codeStart := r.pos()
	codeBytes, err := r.slice(codeLength)
	if err != nil {
		return nil, err
	}
	instructions, err := decodeInstructions(codeBytes, codeStart)
	if err != nil {
		return nil, err
	}

	exceptionTableLength, err := r.u16()
	if err != nil {
		return nil, err
	}
	exceptionTable := make([]ExceptionTableEntry, exceptionTableLength)
	for i := range exceptionTable {
		startPC, err := r.u16()
		if err != nil {
			return nil, err
		}
		endPC, err := r.u16()
		if err != nil {
			return nil, err
		}
		handlerPC, err := r.u16()
		if err != nil {
			return nil, err
		}
		catchType, err := r.u16()
		if err != nil {
			return nil, err
		}
		exceptionTable[i] = ExceptionTableEntry{StartPC: startPC, EndPC: endPC, HandlerPC: handlerPC, CatchType: catchType}
	}

	attributesCount, err := r.u16()
	if err != nil {
		return nil, err
	}

	ctx.depth++
	nested, err := ctx.decodeAttributes(r, attributesCount)
	ctx.depth--
	if err != nil {
		return nil, err
	}

	return &CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		CodeLength:     codeLength,
		Instructions:   instructions,
		ExceptionTable: exceptionTable,
		Attributes:     nested,
	}, nil
}

func (ctx *attributeDecoderContext) decodeInnerClasses(r *reader) (*InnerClassesAttribute, error) {
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	classes := make([]InnerClassEntry, n)
	for i := range classes {
		innerIdx, err := r.u16()
		if err != nil {
			return nil, err
		}
		outerIdx, err := r.u16()
		if err != nil {
			return nil, err
		}
		nameIdx, err := r.u16()
		if err != nil {
			return nil, err
		}
		flags, err := decodeAccessFlags(r, innerClassAccessMask, ctx.onUnknownAccess)
		if err != nil {
			return nil, err
		}
		classes[i] = InnerClassEntry{
			InnerClassInfoIndex:   innerIdx,
			OuterClassInfoIndex:   outerIdx,
			InnerNameIndex:        nameIdx,
			InnerClassAccessFlags: flags,
		}
	}
	return &InnerClassesAttribute{Classes: classes}, nil
}

func (ctx *attributeDecoderContext) decodeSourceFile(r *reader) (*SourceFileAttribute, error) {
	idx, err := r.u16()
	if err != nil {
		return nil, err
	}
	return &SourceFileAttribute{SourceFileIndex: idx}, nil
}

func (ctx *attributeDecoderContext) decodeLineNumberTable(r *reader) (*LineNumberTableAttribute, error) {
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	entries := make([]LineNumberTableEntry, n)
	for i := range entries {
		startPC, err := r.u16()
		if err != nil {
			return nil, err
		}
		lineNumber, err := r.u16()
		if err != nil {
			return nil, err
		}
		entries[i] = LineNumberTableEntry{StartPC: startPC, LineNumber: lineNumber}
	}
	return &LineNumberTableAttribute{Entries: entries}, nil
}

func (ctx *attributeDecoderContext) decodeBootstrapMethods(r *reader) (*BootstrapMethodsAttribute, error) {
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	methods := make([]BootstrapMethodEntry, n)
	for i := range methods {
		ref, err := r.u16()
		if err != nil {
			return nil, err
		}
		argCount, err := r.u16()
		if err != nil {
			return nil, err
		}
		args := make([]uint16, argCount)
		for j := range args {
			args[j], err = r.u16()
			if err != nil {
				return nil, err
			}
		}
		methods[i] = BootstrapMethodEntry{BootstrapMethodRef: ref, Arguments: args}
	}
	return &BootstrapMethodsAttribute{Methods: methods}, nil
}

func (ctx *attributeDecoderContext) decodeMethodParameters(r *reader) (*MethodParametersAttribute, error) {
	n, err := r.u8()
	if err != nil {
		return nil, err
	}
	params := make([]MethodParameterEntry, n)
	for i := range params {
		nameIdx, err := r.u16()
		if err != nil {
			return nil, err
		}
		flags, err := decodeAccessFlags(r, parameterAccessMask, ctx.onUnknownAccess)
		if err != nil {
			return nil, err
		}
		params[i] = MethodParameterEntry{NameIndex: nameIdx, Flags: flags}
	}
	return &MethodParametersAttribute{Parameters: params}, nil
}

func (ctx *attributeDecoderContext) decodeNestMembers(r *reader) (*NestMembersAttribute, error) {
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	classes := make([]uint16, n)
	for i := range classes {
		classes[i], err = r.u16()
		if err != nil {
			return nil, err
		}
	}
	return &NestMembersAttribute{Classes: classes}, nil
}
