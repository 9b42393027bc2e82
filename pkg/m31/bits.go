package m31

import "github.com/bitcoin-wildlife/tapscript-m31/pkg/script"

// ToBits emits `m31_to_bits`: pops a and pushes its 31-bit binary expansion,
// least-significant bit deepest and most-significant bit (bit 30) on top.
//
// Each round peels off the current value's low bit via the same
// divide-and-recombine idiom Mul uses to split its operands (DUP {2} DIV
// DUP {2} MUL ROT SWAP SUB), leaving the remainder one level below the
// quotient so thirty rounds accumulate the low 30 bits in increasing
// order of significance while the quotient shrinks toward the final bit.
// Every intermediate magnitude is bounded by the previous round's
// quotient, so it never approaches the host's multiply-overflow limit.
//
// Pre: [.., a]. Post: [.., b0, b1, ..., b29, b30] (b0 = LSB, b30 = MSB).
func ToBits() script.Fragment {
	b := script.NewBuilder()
	for i := 0; i < 30; i++ {
		b.Splice(splitDivMod(2))
		b.Op(script.OpSwap)
	}
	return b.Finish()
}
