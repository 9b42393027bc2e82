package qm31

import (
	"github.com/bitcoin-wildlife/tapscript-m31/pkg/m31"
	"github.com/bitcoin-wildlife/tapscript-m31/pkg/script"
)

// Add emits `qm31_add`. Pre: [.., a_im1,a_re1,a_im0,a_re0, b_im1,b_re1,b_im0,b_re0].
// Post: [.., sum_im1,sum_re1,sum_im0,sum_re0], each lane summed mod Mod.
func Add() script.Fragment {
	add := m31.Add()

	b := script.NewBuilder()
	for i := int64(0); i < 3; i++ {
		b.RollN(4 - i).Splice(add).Op(script.OpToAltStack)
	}
	b.Splice(add)
	for i := 0; i < 3; i++ {
		b.Op(script.OpFromAltStack)
	}
	return b.Finish()
}

// EqualVerify emits `qm31_equalverify`: fails the script unless the two
// QM31 operands are lane-wise equal. Pre: [.., a (4 items), b (4 items)].
func EqualVerify() script.Fragment {
	b := script.NewBuilder()
	for i := int64(0); i < 3; i++ {
		b.RollN(4 - i).Op(script.OpEqualVerify)
	}
	b.Op(script.OpEqualVerify)
	return b.Finish()
}

// Sub emits `qm31_sub`. Pre: [.., a (4 items), b (4 items)].
// Post: [.., a-b], lane-wise, each reduced mod Mod.
func Sub() script.Fragment {
	sub := m31.Sub()

	b := script.NewBuilder()
	for i := int64(0); i < 3; i++ {
		b.RollN(4 - i).Op(script.OpSwap).Splice(sub).Op(script.OpToAltStack)
	}
	b.Splice(sub)
	for i := 0; i < 3; i++ {
		b.Op(script.OpFromAltStack)
	}
	return b.Finish()
}

// Double emits `qm31_double`. Pre: [.., a (4 items)]. Post: [.., 2a].
func Double() script.Fragment {
	double := m31.Double()

	b := script.NewBuilder()
	for i := 0; i < 3; i++ {
		b.Splice(double).Op(script.OpToAltStack)
	}
	b.Splice(double)
	for i := 0; i < 3; i++ {
		b.Op(script.OpFromAltStack)
	}
	return b.Finish()
}

// Mul emits `qm31_mul`: full QM31 multiplication, combining karatsuba_big's
// three CM31 cross products (a.X1*b.X1, a.X1*b.X0+a.X0*b.X1, a.X0*b.X0) via
// the binomial extension's defining relation j^2 = 2+i:
//
//	(a0 + a1 j)(b0 + b1 j) = (a0 b0 + 2 a1 b1 + a1 b1 * i) + (a0 b1 + a1 b0) j
//
// where the "+ a1 b1 * i" term is formed by the lane remix below, which
// crosses a1 b1's lanes: real gets 2*re - im, imag gets 2*im + re.
// Pre: [.., a (4 items), b (4 items)]. Post: [.., product (4 items)].
func Mul() script.Fragment {
	big := KaratsubaBig()
	double := m31.Double()
	sub := m31.Sub()
	add := m31.Add()

	return script.NewBuilder().
		Splice(big).
		RollN(4).
		Op(script.OpDup).
		Splice(double).
		RollN(6).
		Op(script.OpDup).
		Splice(double).
		Op(script.OpRot).
		Op(script.OpRot).
		Splice(sub).
		RollN(3).
		Splice(add).
		Op(script.OpRot).
		Op(script.OpRot).
		Splice(add).
		Op(script.OpRot).
		Splice(add).
		Op(script.OpSwap).
		Finish()
}

// MulM31 emits `qm31_mul_m31`: multiplies a QM31 value by an M31 scalar,
// lane-wise. Pre: [.., a_im1,a_re1,a_im0,a_re0, s]. Post: [.., product (4 items)].
func MulM31() script.Fragment {
	mul := m31.Mul()

	return script.NewBuilder().
		Op(script.OpDup).
		Op(script.OpDup).
		Op(script.OpDup).
		Op(script.OpToAltStack).
		Op(script.OpToAltStack).
		Op(script.OpToAltStack).
		RollN(4).
		Splice(mul).
		RollN(3).
		Op(script.OpFromAltStack).
		Splice(mul).
		RollN(3).
		Op(script.OpFromAltStack).
		Splice(mul).
		RollN(3).
		Op(script.OpFromAltStack).
		Splice(mul).
		Finish()
}

// ToAltStack emits `qm31_toaltstack`: moves all four lanes to the alt stack.
func ToAltStack() script.Fragment {
	b := script.NewBuilder()
	for i := 0; i < 4; i++ {
		b.Op(script.OpToAltStack)
	}
	return b.Finish()
}

// FromAltStack emits `qm31_fromaltstack`: moves all four lanes back from
// the alt stack, restoring their original order.
func FromAltStack() script.Fragment {
	b := script.NewBuilder()
	for i := 0; i < 4; i++ {
		b.Op(script.OpFromAltStack)
	}
	return b.Finish()
}

// Copy emits `qm31_copy`: copies the QM31 value offset QM31-slots below the
// top (0 = the top QM31 value itself) to the top, without consuming it.
// Copy panics if offset is negative; there is no such slot to address.
func Copy(offset int64) script.Fragment {
	if offset < 0 {
		panic("qm31: negative Copy offset")
	}
	a := offset*4 + 4 - 1
	b := script.NewBuilder()
	for i := 0; i < 4; i++ {
		b.PickN(a)
	}
	return b.Finish()
}

// Roll emits `qm31_roll`: moves the QM31 value offset QM31-slots below the
// top (0 = the top QM31 value itself) to the top. Roll panics if offset is
// negative; there is no such slot to address.
func Roll(offset int64) script.Fragment {
	if offset < 0 {
		panic("qm31: negative Roll offset")
	}
	a := offset*4 + 4 - 1
	b := script.NewBuilder()
	for i := 0; i < 4; i++ {
		b.RollN(a)
	}
	return b.Finish()
}
