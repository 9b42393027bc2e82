package cm31

import (
	"math/rand"
	"testing"

	"github.com/bitcoin-wildlife/tapscript-m31/internal/execvm"
	"github.com/bitcoin-wildlife/tapscript-m31/pkg/field"
)

func randCM31(rng *rand.Rand) field.CM31 {
	return field.CM31{Real: field.NewM31(rng.Uint32()), Imag: field.NewM31(rng.Uint32())}
}

func TestKaratsubaSmall(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	frag := KaratsubaSmall()
	for i := 0; i < 300; i++ {
		a := randCM31(rng)
		b := randCM31(rng)

		out, err := execvm.Run(frag, []int64{
			int64(a.Imag), int64(a.Real), int64(b.Imag), int64(b.Real),
		})
		if err != nil {
			t.Fatalf("KaratsubaSmall(%v,%v): %v", a, b, err)
		}

		wantFirst, wantSecond := field.KaratsubaSmall(a, b)
		if len(out) != 2 || out[0] != int64(wantFirst) || out[1] != int64(wantSecond) {
			t.Fatalf("KaratsubaSmall(%v,%v) = %v, want [%d %d]", a, b, out, wantFirst, wantSecond)
		}
	}
}

// TestKaratsubaSmallConsistency checks the fragment's outputs against a
// direct (non-Karatsuba) CM31 product, mirroring the original crate's
// cross-check against its own naive multiplication.
func TestKaratsubaSmallConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	frag := KaratsubaSmall()
	for i := 0; i < 100; i++ {
		a := randCM31(rng)
		b := randCM31(rng)

		out, err := execvm.Run(frag, []int64{
			int64(a.Imag), int64(a.Real), int64(b.Imag), int64(b.Real),
		})
		if err != nil {
			t.Fatalf("KaratsubaSmall(%v,%v): %v", a, b, err)
		}

		product := a.Mul(b)
		first, second := field.M31(out[0]), field.M31(out[1])
		if first != product.Imag {
			t.Fatalf("KaratsubaSmall(%v,%v) first = %d, want a*b imag %d", a, b, first, product.Imag)
		}
		if second != product.Real {
			t.Fatalf("KaratsubaSmall(%v,%v) second = %d, want a*b real %d", a, b, second, product.Real)
		}
	}
}
