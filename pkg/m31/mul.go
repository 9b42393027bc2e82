package m31

import "github.com/bitcoin-wildlife/tapscript-m31/pkg/script"

// splitDivMod emits `DUP {d} DIV DUP {d} MUL ROT SWAP SUB`: given a on top,
// leaves hi lo on the stack where a = hi*d + lo. Pre: [a]. Post: [hi, lo].
func splitDivMod(d int64) script.Fragment {
	return script.NewBuilder().
		Op(script.OpDup).
		Push(d).
		Op(script.OpDiv).
		Op(script.OpDup).
		Push(d).
		Op(script.OpMul).
		Op(script.OpRot).
		Op(script.OpSwap).
		Op(script.OpSub).
		Finish()
}

// Mul emits `m31_mul`: pops a, b (b on top) and pushes (a*b) mod Mod,
// computed without ever letting an intermediate OP_MUL operand exceed the
// host's signed-multiply-without-overflow budget.
//
// a is split as a_h*2^15 + a_l (a_l < 2^15, a_h < 2^16); b is split as
// b_h*2^16 + b_l (b_l < 2^16, b_h < 2^15), giving
//
//	a*b = (a_l*b_l + a_h*b_h) + (a_h*b_l + a_l*b_h*2)*2^15  (mod Mod)
//
// a_h*b_l is itself split by halving a_h (tracking the lost low bit
// separately) before multiplying, since both operands would otherwise be
// up to 16 bits wide.
//
// Pre: [.., a, b]. Post: [.., a*b mod Mod].
func Mul() script.Fragment {
	b := script.NewBuilder()

	b.Op(script.OpSwap)
	// stack: b a

	b.Splice(splitDivMod(1 << 15))
	// stack: b a_h a_l

	b.Op(script.OpRot)
	b.Splice(splitDivMod(1 << 16))
	// stack: a_h a_l b_h b_l

	// a_h * b_h -> altstack
	b.PickN(3)
	b.PickN(2)
	b.Op(script.OpMul)
	b.Op(script.OpToAltStack)

	// a_l * b_l -> altstack
	b.PickN(2)
	b.Op(script.OpOver)
	b.Op(script.OpMul)
	b.Op(script.OpToAltStack)

	// bring a_h to top for the a_h*b_l term
	b.RollN(3)

	// split a_h = a_h'*2 + a_lsb
	b.Op(script.OpDup)
	b.Push(2)
	b.Op(script.OpDiv)
	b.Op(script.OpDup)
	b.Push(2)
	b.Op(script.OpMul)
	b.Op(script.OpRot)
	b.Op(script.OpSwap)
	b.Op(script.OpSub)

	thenBranch := script.NewBuilder().Op(script.OpOver).Finish()
	elseBranch := script.NewBuilder().Push(0).Finish()
	b.If(thenBranch, &elseBranch)
	b.Op(script.OpToAltStack)
	b.Op(script.OpMul)
	b.Splice(Double())
	b.Op(script.OpToAltStack)

	// a_l * b_h * 2
	b.Op(script.OpMul)
	b.Splice(Double())

	// c = a_l*b_h*2 + a_h*b_l
	b.Op(script.OpFromAltStack)
	b.Splice(Add())
	b.Op(script.OpFromAltStack)
	b.Splice(Add())

	// split c = c_h*2^16 + c_l
	b.Splice(splitDivMod(1 << 16))

	b.Push(1 << 15)
	b.Op(script.OpMul)
	b.Splice(Add())
	b.Op(script.OpFromAltStack)
	b.Splice(Add())
	b.Op(script.OpFromAltStack)
	b.Splice(Add())

	return b.Finish()
}
