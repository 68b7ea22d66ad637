package objmodel

import "github.com/seanpm2001/Oberon/internal/il"

// shortFormLimit is the operand magnitude below which an
// ldarg/ldarga/ldloc/ldloca/starg/stloc collapses to its short ("dot-s")
// encoding (spec.md §4.4: "short-form
// instruction selection (e.g., ldarg -> ldarg.s)").
const shortFormLimit = 256

// optimize runs the trivial peephole pass spec.md §4.4 describes: redundant
// dup/pop pairs are dropped and argument/local loads and stores get their short-form
// flag set once the operand is known small. It never changes a method's
// net stack effect, so MaxStack computed by the emitter stays valid.
func optimize(body []il.Instr) []il.Instr {
	out := make([]il.Instr, 0, len(body))
	for i := 0; i < len(body); i++ {
		instr := body[i]

		if i+1 < len(body) && instr.Op == il.OpDup && body[i+1].Op == il.OpPop {
			i++
			continue
		}

		out = append(out, shortForm(instr))
	}
	return out
}

func shortForm(instr il.Instr) il.Instr {
	switch instr.Op {
	case il.OpLdarg, il.OpLdarga, il.OpLdloc, il.OpLdloca, il.OpStarg, il.OpStloc:
		if n, ok := smallOperand(instr.Operand); ok && n < shortFormLimit {
			instr.Flags |= FlagShortForm
		}
	}
	return instr
}

// FlagShortForm marks an operand-bearing instruction whose index fits the
// VM's compact encoding; this package's text rendering, which the binary
// container also carries, honors it to pick the ".s" mnemonic.
const FlagShortForm il.Flag = 1 << 7

func smallOperand(operand string) (int, bool) {
	n := 0
	i := 0
	for i < len(operand) && operand[i] >= '0' && operand[i] <= '9' {
		n = n*10 + int(operand[i]-'0')
		i++
	}
	if i == 0 {
		return 0, false
	}
	return n, true
}
