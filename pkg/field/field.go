// Package field implements plain Go reference arithmetic for M31, CM31,
// and QM31, used as the oracle that pkg/m31, pkg/cm31, and pkg/qm31's
// property tests check emitted fragments against — the role p3-field and
// p3-mersenne-31 play in the Rust crate these packages are ported from.
// Nothing here touches a stack or an opcode.
package field

// Mod is the Mersenne prime 2^31 - 1.
const Mod uint32 = (1 << 31) - 1

// M31 is an element of the field Z/(2^31-1), always held in [0, Mod).
type M31 uint32

// NewM31 reduces v into canonical range.
func NewM31(v uint32) M31 { return M31(v % Mod) }

func (a M31) Add(b M31) M31 { return M31((uint64(a) + uint64(b)) % uint64(Mod)) }

func (a M31) Sub(b M31) M31 { return M31((uint64(a) + uint64(Mod) - uint64(b)) % uint64(Mod)) }

func (a M31) Neg() M31 {
	if a == 0 {
		return 0
	}
	return M31(Mod) - a
}

func (a M31) Double() M31 { return a.Add(a) }

func (a M31) Mul(b M31) M31 { return M31((uint64(a) * uint64(b)) % uint64(Mod)) }

// Bits returns the 31-bit little-endian (LSB first) binary expansion of a.
func (a M31) Bits() [31]int {
	var out [31]int
	cur := uint32(a)
	for i := 0; i < 31; i++ {
		out[i] = int(cur & 1)
		cur >>= 1
	}
	return out
}

// CM31 is a+bi in Z/(2^31-1)[i]/(i^2+1), stored as (real, imag).
type CM31 struct {
	Real, Imag M31
}

func (a CM31) Add(b CM31) CM31 {
	return CM31{a.Real.Add(b.Real), a.Imag.Add(b.Imag)}
}

func (a CM31) Sub(b CM31) CM31 {
	return CM31{a.Real.Sub(b.Real), a.Imag.Sub(b.Imag)}
}

func (a CM31) Mul(b CM31) CM31 {
	// (ar+ai*i)(br+bi*i) = (ar*br - ai*bi) + (ar*bi + ai*br)*i
	return CM31{
		Real: a.Real.Mul(b.Real).Sub(a.Imag.Mul(b.Imag)),
		Imag: a.Real.Mul(b.Imag).Add(a.Imag.Mul(b.Real)),
	}
}

// KaratsubaSmall returns (a.Imag*b.Real + a.Real*b.Imag, a.Real*b.Real -
// a.Imag*b.Imag) — the (Imag, Real) components of the CM31 product a*b,
// in the same order the karatsuba_small fragment leaves them on the
// stack. It is exposed separately from CM31.Mul because qm31's
// karatsuba_big composes three of these calls directly (the standard
// three-multiplication complex-number Karatsuba) rather than multiplying
// the full CM31 product out each time.
func KaratsubaSmall(a, b CM31) (first, second M31) {
	first = a.Imag.Mul(b.Real).Add(a.Real.Mul(b.Imag))
	second = a.Real.Mul(b.Real).Sub(a.Imag.Mul(b.Imag))
	return
}

// QM31 is x0 + x1*j in CM31[j]/(j^2-2-i), stored as (x0 low CM31, x1 high CM31).
type QM31 struct {
	X0, X1 CM31
}

func (a QM31) Add(b QM31) QM31 {
	return QM31{a.X0.Add(b.X0), a.X1.Add(b.X1)}
}

func (a QM31) Sub(b QM31) QM31 {
	return QM31{a.X0.Sub(b.X0), a.X1.Sub(b.X1)}
}

func (a QM31) Double() QM31 { return a.Add(a) }

// jSquared is j^2 = 2 + i, the binomial extension's defining relation.
var jSquared = CM31{Real: NewM31(2), Imag: NewM31(1)}

func (a QM31) Mul(b QM31) QM31 {
	// (a0 + a1 j)(b0 + b1 j) = a0 b0 + a1 b1 j^2 + (a0 b1 + a1 b0) j
	return QM31{
		X0: a.X0.Mul(b.X0).Add(a.X1.Mul(b.X1).Mul(jSquared)),
		X1: a.X0.Mul(b.X1).Add(a.X1.Mul(b.X0)),
	}
}

func (a QM31) MulM31(s M31) QM31 {
	return QM31{
		X0: CM31{a.X0.Real.Mul(s), a.X0.Imag.Mul(s)},
		X1: CM31{a.X1.Real.Mul(s), a.X1.Imag.Mul(s)},
	}
}
