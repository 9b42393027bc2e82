// Package cm31 emits the Tapscript fragment for CM31 Karatsuba
// multiplication, the cross-term building block pkg/qm31's karatsuba_big
// composes into full QM31 multiplication.
package cm31

import (
	"github.com/bitcoin-wildlife/tapscript-m31/pkg/m31"
	"github.com/bitcoin-wildlife/tapscript-m31/pkg/script"
)

// KaratsubaSmall emits `karatsuba_small`. Given two CM31 operands a, b laid
// out deep-to-top as (a_imag, a_real, b_imag, b_real), it leaves the CM31
// product a*b on top, in the same (imag, real) order:
//
//	first  = a_imag*b_real + a_real*b_imag   (= Imag(a*b))
//	second = a_real*b_real - a_imag*b_imag   (= Real(a*b))
//
// computed via three multiplications instead of four: a_real*b_real,
// a_imag*b_imag, and (a_real+a_imag)*(b_real+b_imag), with first and
// second recovered from those three products.
//
// Pre: [.., a_imag, a_real, b_imag, b_real]. Post: [.., first, second].
func KaratsubaSmall() script.Fragment {
	mul := m31.Mul()
	add := m31.Add()
	sub := m31.Sub()

	return script.NewBuilder().
		Op(script.OpOver).
		PickN(4).
		Splice(mul).
		Op(script.OpToAltStack).
		Op(script.OpDup).
		PickN(3).
		Splice(mul).
		Op(script.OpToAltStack).
		Splice(add).
		Op(script.OpToAltStack).
		Splice(add).
		Op(script.OpFromAltStack).
		Splice(mul).
		Op(script.OpFromAltStack).
		Op(script.OpFromAltStack).
		Op(script.Op2Dup).
		Splice(add).
		RollN(3).
		Op(script.OpSwap).
		Splice(sub).
		Op(script.OpToAltStack).
		Splice(sub).
		Op(script.OpFromAltStack).
		Op(script.OpSwap).
		Finish()
}
