package emitter

import "github.com/seanpm2001/Oberon/internal/il"

// emit appends an instruction with a fixed, operand-independent stack
// effect and updates the running depth/max-stack counters.
func (e *Emitter) emit(op il.OpCode, operand string) {
	e.requireMethod("emit")
	delta, ok := il.StackEffect(op)
	if !ok {
		panic("emit: opcode has an operand-dependent stack effect; use emitDelta")
	}
	e.appendDelta(il.Instr{Op: op, Operand: operand}, delta)
}

// emitDelta appends an instruction whose stack effect the caller has
// already computed (calls, object construction, array allocation).
func (e *Emitter) emitDelta(instr il.Instr, delta int) {
	e.requireMethod("emit")
	e.appendDelta(instr, delta)
}

func (e *Emitter) appendDelta(instr il.Instr, delta int) {
	e.meth.Body = append(e.meth.Body, instr)
	e.depth += delta
	if e.depth > e.meth.MaxStack {
		e.meth.MaxStack = e.depth
	}
}

// -- Loads --------------------------------------------------------------

func (e *Emitter) LoadArg(index int, name string)    { e.emit(il.OpLdarg, argRef(index, name)) }
func (e *Emitter) LoadArgAddr(index int, name string) { e.emit(il.OpLdarga, argRef(index, name)) }
func (e *Emitter) LoadLocal(index int, name string)  { e.emit(il.OpLdloc, argRef(index, name)) }
func (e *Emitter) LoadLocalAddr(index int, name string) {
	e.emit(il.OpLdloca, argRef(index, name))
}
func (e *Emitter) LoadField(fieldRef string)  { e.emit(il.OpLdfld, fieldRef) }
func (e *Emitter) LoadFieldAddr(fieldRef string) { e.emit(il.OpLdflda, fieldRef) }
func (e *Emitter) LoadStaticField(fieldRef string) { e.emit(il.OpLdsfld, fieldRef) }
func (e *Emitter) LoadStaticFieldAddr(fieldRef string) { e.emit(il.OpLdsflda, fieldRef) }
func (e *Emitter) LoadElem(typeRef string)     { e.emit(il.OpLdelem, typeRef) }
func (e *Emitter) LoadElemAddr(typeRef string) { e.emit(il.OpLdelema, typeRef) }
func (e *Emitter) LoadElemRef()                { e.emit(il.OpLdelemRef, "") }
func (e *Emitter) LoadIndirect(typeRef string) { e.emit(il.OpLdind, typeRef) }
func (e *Emitter) LoadNull()                   { e.emit(il.OpLdnull, "") }
func (e *Emitter) LoadInt32(v int32)           { e.emit(il.OpLdcI4, itoa(int(v))) }
func (e *Emitter) LoadInt64(v int64)           { e.emit(il.OpLdcI8, itoa64(v)) }
func (e *Emitter) LoadFloat32(operand string)  { e.emit(il.OpLdcR4, operand) }
func (e *Emitter) LoadFloat64(operand string)  { e.emit(il.OpLdcR8, operand) }
func (e *Emitter) LoadString(quoted string)     { e.emit(il.OpLdcStr, quoted) }
func (e *Emitter) LoadLen()                     { e.emit(il.OpLdlen, "") }
func (e *Emitter) Dup()                         { e.emit(il.OpDup, "") }

// -- Stores ---------------------------------------------------------------

func (e *Emitter) StoreArg(index int, name string)   { e.emit(il.OpStarg, argRef(index, name)) }
func (e *Emitter) StoreLocal(index int, name string) { e.emit(il.OpStloc, argRef(index, name)) }
func (e *Emitter) StoreField(fieldRef string)        { e.emit(il.OpStfld, fieldRef) }
func (e *Emitter) StoreStaticField(fieldRef string)  { e.emit(il.OpStsfld, fieldRef) }
func (e *Emitter) StoreElem(typeRef string)          { e.emit(il.OpStelem, typeRef) }
func (e *Emitter) StoreElemRef()                     { e.emit(il.OpStelemRef, "") }
func (e *Emitter) StoreIndirect(typeRef string)       { e.emit(il.OpStind, typeRef) }
func (e *Emitter) Pop()                              { e.emit(il.OpPop, "") }

// -- Arithmetic / logic -----------------------------------------------------

func (e *Emitter) Add()    { e.emit(il.OpAdd, "") }
func (e *Emitter) Sub()    { e.emit(il.OpSub, "") }
func (e *Emitter) Mul()    { e.emit(il.OpMul, "") }
func (e *Emitter) DivF()   { e.emit(il.OpDivOp, "") }
func (e *Emitter) Rem()    { e.emit(il.OpRem, "") }
func (e *Emitter) Neg()    { e.emit(il.OpNeg, "") }
func (e *Emitter) Not()    { e.emit(il.OpNot, "") }
func (e *Emitter) And()    { e.emit(il.OpAnd, "") }
func (e *Emitter) Or()     { e.emit(il.OpOr, "") }
func (e *Emitter) Xor()    { e.emit(il.OpXor, "") }
func (e *Emitter) AndNot() { e.emit(il.OpAndNot, "") }
func (e *Emitter) Shl()    { e.emit(il.OpShl, "") }
func (e *Emitter) Shr()    { e.emit(il.OpShr, "") }

// -- Compare / branch --------------------------------------------------

func (e *Emitter) Ceq() { e.emit(il.OpCeq, "") }
func (e *Emitter) Cgt() { e.emit(il.OpCgt, "") }
func (e *Emitter) Clt() { e.emit(il.OpClt, "") }
func (e *Emitter) Cge() { e.emit(il.OpCge, "") }
func (e *Emitter) Cle() { e.emit(il.OpCle, "") }

func (e *Emitter) Br(label int)       { e.emit(il.OpBr, labelRef(label)) }
func (e *Emitter) BrTrue(label int)   { e.emit(il.OpBrTrue, labelRef(label)) }
func (e *Emitter) BrFalse(label int)  { e.emit(il.OpBrFalse, labelRef(label)) }
func (e *Emitter) PlaceLabel(label int) { e.emit(il.OpLabel, labelRef(label)) }

// -- Calls / objects ------------------------------------------------------

// Call emits a non-virtual call (used for static calls and super-calls,
// which always bypass virtual dispatch per spec.md §4.6.5).
func (e *Emitter) Call(methodRef string, argCount int, hasResult bool) {
	delta := -argCount
	if hasResult {
		delta++
	}
	e.emitDelta(il.Instr{Op: il.OpCall, Operand: methodRef, ArgCount: argCount, HasResult: hasResult}, delta)
}

// CallVirt emits a virtual call (includes the receiver in argCount).
func (e *Emitter) CallVirt(methodRef string, argCount int, hasResult bool) {
	delta := -argCount
	if hasResult {
		delta++
	}
	e.emitDelta(il.Instr{Op: il.OpCallVirt, Operand: methodRef, ArgCount: argCount, HasResult: hasResult}, delta)
}

// NewObj emits a constructor call: argCount values are consumed, one
// object reference is produced.
func (e *Emitter) NewObj(ctorRef string, argCount int) {
	e.emitDelta(il.Instr{Op: il.OpNewObj, Operand: ctorRef, ArgCount: argCount}, 1-argCount)
}

// NewArr allocates a single-dimension array: consumes the length, produces
// the array reference.
func (e *Emitter) NewArr(elemTypeRef string) {
	e.emitDelta(il.Instr{Op: il.OpNewArr, Operand: elemTypeRef}, 0)
}

func (e *Emitter) IsInst(typeRef string)  { e.emit(il.OpIsInst, typeRef) }
func (e *Emitter) LdVirtFtn(methodRef string) { e.emit(il.OpLdvirtftn, methodRef) }
func (e *Emitter) LdFtn(methodRef string)     { e.emit(il.OpLdftn, methodRef) }
func (e *Emitter) LdToken(ref string)         { e.emit(il.OpLdtoken, ref) }
func (e *Emitter) Box(typeRef string)         { e.emit(il.OpBox, typeRef) }
func (e *Emitter) Unbox(typeRef string)       { e.emit(il.OpUnbox, typeRef) }

// -- Conversion -------------------------------------------------------------

func (e *Emitter) Conv(typeRef string) { e.emit(il.OpConv, typeRef) }

// -- Misc ---------------------------------------------------------------

func (e *Emitter) Ret() { e.emit(il.OpRet, "") }

// ---------------------------------------------------------------------------

func argRef(index int, name string) string {
	if name == "" {
		return itoa(index)
	}
	return itoa(index) + " " + name
}

func labelRef(label int) string {
	return "L" + itoa(label)
}

func itoa(v int) string {
	return itoa64(int64(v))
}

func itoa64(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
