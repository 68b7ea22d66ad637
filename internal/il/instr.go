// Package il defines the IL Operation Model (spec.md §4.2): a typed
// instruction record and a method record, the unit of emission the IL
// Emitter assembles and the back-ends (Text Renderer, Binary Builder)
// consume. This package is pure data -- it performs no lowering itself.
package il

import "fmt"

// OpCode identifies one verifiable instruction of the target stack machine.
type OpCode int

const (
	// Loads
	OpLdarg OpCode = iota
	OpLdarga
	OpLdloc
	OpLdloca
	OpLdfld
	OpLdflda
	OpLdsfld
	OpLdsflda
	OpLdelem
	OpLdelema
	OpLdelemRef
	OpLdind
	OpLdnull
	OpLdcI4
	OpLdcI8
	OpLdcR4
	OpLdcR8
	OpLdcStr
	OpLdlen
	OpDup

	// Stores
	OpStarg
	OpStloc
	OpStfld
	OpStsfld
	OpStelem
	OpStelemRef
	OpStind
	OpPop

	// Arithmetic / logic
	OpAdd
	OpSub
	OpMul
	OpDivOp // real division / floor
	OpRem
	OpNeg
	OpNot // bitwise/set complement
	OpAnd
	OpOr
	OpXor
	OpAndNot
	OpShl
	OpShr

	// Compare
	OpCeq
	OpCgt
	OpClt
	OpCge
	OpCle

	// Branch
	OpBr
	OpBrTrue
	OpBrFalse
	OpLabel

	// Calls / objects
	OpCall
	OpCallVirt
	OpNewObj
	OpNewArr
	OpIsInst
	OpLdvirtftn
	OpLdftn
	OpLdtoken
	OpBox
	OpUnbox

	// Conversion
	OpConv

	// Misc
	OpRet
	OpThrow
	OpNop
	OpLine
)

// stackEffect holds the known net stack delta of every opcode that has a
// delta independent of its operand (spec.md §4.2: "each opcode has a known
// net effect"). Call, CallVirt, NewObj and NewArr are excluded here: the
// emitter computes their delta itself (from the argument count for calls
// and constructors) and appends them through Emitter.emitDelta.
var stackEffect = map[OpCode]int{
	OpLdarg: 1, OpLdarga: 1, OpLdloc: 1, OpLdloca: 1,
	OpLdnull: 1, OpLdcI4: 1, OpLdcI8: 1, OpLdcR4: 1, OpLdcR8: 1, OpLdcStr: 1,
	OpDup: 1,
	OpLdfld: 0, OpLdflda: 0, OpLdsfld: 1, OpLdsflda: 1,
	OpLdelem: -1, OpLdelema: -1, OpLdelemRef: -1, OpLdind: 0, OpLdlen: 0,

	OpStarg: -1, OpStloc: -1, OpStfld: -2, OpStsfld: -1,
	OpStelem: -3, OpStelemRef: -3, OpStind: -2, OpPop: -1,

	OpAdd: -1, OpSub: -1, OpMul: -1, OpDivOp: -1, OpRem: -1,
	OpNeg: 0, OpNot: 0,
	OpAnd: -1, OpOr: -1, OpXor: -1, OpAndNot: -1, OpShl: -1, OpShr: -1,

	OpCeq: -1, OpCgt: -1, OpClt: -1, OpCge: -1, OpCle: -1,

	OpBr: 0, OpBrTrue: -1, OpBrFalse: -1, OpLabel: 0,

	OpIsInst: 0, OpLdvirtftn: 0, OpLdftn: 1, OpLdtoken: 1,
	OpBox: 0, OpUnbox: 0,

	OpConv: 0,

	OpRet: 0, OpThrow: -1, OpNop: 0, OpLine: 0,
}

// StackEffect returns the fixed net stack delta of op, or (0, false) if op's
// effect depends on its operand's arity.
func StackEffect(op OpCode) (int, bool) {
	d, ok := stackEffect[op]
	return d, ok
}

// Flag bits set on an Instr beyond its opcode and operand.
type Flag int

const (
	// FlagTail marks an opcode that bypasses virtual dispatch (a super-call
	// compiled as `call` instead of `callvirt` -- spec.md §4.6.5).
	FlagTail Flag = 1 << iota
	// FlagVolatile marks a load/store that must not be reordered or cached
	// by a peephole pass.
	FlagVolatile
)

// Instr is one instruction: an opcode, a single textual operand (already
// rendered through the Signature Resolver grammar when it denotes a type or
// member), and flag bits.
type Instr struct {
	Op      OpCode
	Operand string
	Flags   Flag

	// Line is non-zero for an OpLine marker recording the source row:col
	// the following instructions were lowered from.
	Line, Col int

	// ArgCount is set for Call/CallVirt/NewObj so StackEffect-independent
	// callers can compute the delta without re-parsing Operand.
	ArgCount int

	// HasResult is set for Call/CallVirt to indicate the callee pushes a
	// value (false for a void return type).
	HasResult bool
}

func (i Instr) String() string {
	if i.Operand == "" {
		return opNames[i.Op]
	}
	return fmt.Sprintf("%s %s", opNames[i.Op], i.Operand)
}

var opNames = map[OpCode]string{
	OpLdarg: "ldarg", OpLdarga: "ldarga", OpLdloc: "ldloc", OpLdloca: "ldloca",
	OpLdfld: "ldfld", OpLdflda: "ldflda", OpLdsfld: "ldsfld", OpLdsflda: "ldsflda",
	OpLdelem: "ldelem", OpLdelema: "ldelema", OpLdelemRef: "ldelem.ref",
	OpLdind: "ldind", OpLdnull: "ldnull", OpLdcI4: "ldc.i4", OpLdcI8: "ldc.i8",
	OpLdcR4: "ldc.r4", OpLdcR8: "ldc.r8", OpLdcStr: "ldstr", OpLdlen: "ldlen",
	OpDup: "dup",

	OpStarg: "starg", OpStloc: "stloc", OpStfld: "stfld", OpStsfld: "stsfld",
	OpStelem: "stelem", OpStelemRef: "stelem.ref", OpStind: "stind", OpPop: "pop",

	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDivOp: "div", OpRem: "rem",
	OpNeg: "neg", OpNot: "not", OpAnd: "and", OpOr: "or", OpXor: "xor",
	OpAndNot: "andnot", OpShl: "shl", OpShr: "shr",

	OpCeq: "ceq", OpCgt: "cgt", OpClt: "clt", OpCge: "cge", OpCle: "cle",

	OpBr: "br", OpBrTrue: "brtrue", OpBrFalse: "brfalse", OpLabel: "label",

	OpCall: "call", OpCallVirt: "callvirt", OpNewObj: "newobj", OpNewArr: "newarr",
	OpIsInst: "isinst", OpLdvirtftn: "ldvirtftn", OpLdftn: "ldftn",
	OpLdtoken: "ldtoken", OpBox: "box", OpUnbox: "unbox",

	OpConv: "conv",

	OpRet: "ret", OpThrow: "throw", OpNop: "nop", OpLine: ".line",
}
