// Package qm31 emits Tapscript fragments for QM31 arithmetic: the degree-4
// extension CM31[j]/(j^2-2-i), built on top of pkg/m31 and pkg/cm31.
package qm31

import (
	"github.com/bitcoin-wildlife/tapscript-m31/pkg/cm31"
	"github.com/bitcoin-wildlife/tapscript-m31/pkg/m31"
	"github.com/bitcoin-wildlife/tapscript-m31/pkg/script"
)

// KaratsubaBig emits `karatsuba_big`. Given two QM31 operands a, b, each
// laid out as two CM31 "digits" deep-to-top — a = (a_imag1, a_real1,
// a_imag0, a_real0), i.e. a.X1 then a.X0, and b likewise — it leaves three
// CM31 products on the stack, deep-to-top:
//
//	a.X1 * b.X1
//	a.X1*b.X0 + a.X0*b.X1
//	a.X0 * b.X0
//
// the three cross terms qm31_mul needs to assemble the full QM31 product
// via the binomial extension's j^2 = 2+i relation, computed with three
// karatsuba_small calls (the standard three-multiplication complex
// Karatsuba) instead of the four a naive decomposition would need.
//
// Pre: [.., a_im1, a_re1, a_im0, a_re0, b_im1, b_re1, b_im0, b_re0].
// Post: [.., g1_first, g1_second, g2_first, g2_second, g3_first, g3_second].
func KaratsubaBig() script.Fragment {
	small := cm31.KaratsubaSmall()
	add := m31.Add()
	sub := m31.Sub()

	return script.NewBuilder().
		// group 1: a.X1 * b.X1
		PickN(7).
		PickN(7).
		PickN(5).
		PickN(5).
		Splice(small).
		Op(script.OpToAltStack).
		Op(script.OpToAltStack).

		// group 3: a.X0 * b.X0 (b.X0 duplicated by 2DUP, a.X0 picked;
		// both products wait on the alt stack until group 2 needs them)
		Op(script.Op2Dup).
		PickN(7).
		PickN(7).
		Splice(small).
		Op(script.OpToAltStack).
		Op(script.OpToAltStack).

		// group 2: a.X0*b.X1 + a.X1*b.X0, computed as a third
		// karatsuba_small call on the lane-wise sums (a.X0+a.X1) and
		// (b.X0+b.X1), minus the group 1 and group 3 products (m31_add
		// of those two, then m31_sub), one lane at a time.
		Op(script.OpRot).
		Splice(add).
		Op(script.OpToAltStack).
		Splice(add).
		Op(script.OpToAltStack).
		Op(script.OpRot).
		Splice(add).
		Op(script.OpToAltStack).
		Splice(add).
		Op(script.OpFromAltStack).
		Op(script.OpFromAltStack).
		Op(script.OpFromAltStack).
		Splice(small).
		Op(script.OpFromAltStack).
		Op(script.OpFromAltStack).
		Op(script.OpFromAltStack).
		Op(script.OpFromAltStack).
		RollN(5).
		PickN(2).
		PickN(5).
		Splice(add).
		Splice(sub).
		RollN(5).
		PickN(2).
		PickN(5).
		Splice(add).
		Splice(sub).
		RollN(5).
		RollN(5).
		Finish()
}
