package qm31

import (
	"math/rand"
	"testing"

	"github.com/bitcoin-wildlife/tapscript-m31/internal/execvm"
	"github.com/bitcoin-wildlife/tapscript-m31/pkg/field"
	"github.com/bitcoin-wildlife/tapscript-m31/pkg/script"
)

func randM31(rng *rand.Rand) field.M31 {
	return field.NewM31(rng.Uint32())
}

func randCM31(rng *rand.Rand) field.CM31 {
	return field.CM31{Real: randM31(rng), Imag: randM31(rng)}
}

func randQM31(rng *rand.Rand) field.QM31 {
	return field.QM31{X0: randCM31(rng), X1: randCM31(rng)}
}

// pushQM31 appends a's four lanes in stack push order: X1 then X0, each
// (imag, real), matching the layout every qm31 fragment expects.
func pushQM31(stack []int64, a field.QM31) []int64 {
	return append(stack, int64(a.X1.Imag), int64(a.X1.Real), int64(a.X0.Imag), int64(a.X0.Real))
}

func qm31FromOutput(out []int64) field.QM31 {
	return field.QM31{
		X1: field.CM31{Imag: field.M31(out[0]), Real: field.M31(out[1])},
		X0: field.CM31{Imag: field.M31(out[2]), Real: field.M31(out[3])},
	}
}

func TestAdd(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	frag := Add()
	for i := 0; i < 200; i++ {
		a := randQM31(rng)
		b := randQM31(rng)

		stack := pushQM31(nil, a)
		stack = pushQM31(stack, b)
		out, err := execvm.Run(frag, stack)
		if err != nil {
			t.Fatalf("Add(%v,%v): %v", a, b, err)
		}
		if got, want := qm31FromOutput(out), a.Add(b); got != want {
			t.Fatalf("Add(%v,%v) = %v, want %v", a, b, got, want)
		}
	}
}

func TestSub(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	frag := Sub()
	for i := 0; i < 200; i++ {
		a := randQM31(rng)
		b := randQM31(rng)

		stack := pushQM31(nil, a)
		stack = pushQM31(stack, b)
		out, err := execvm.Run(frag, stack)
		if err != nil {
			t.Fatalf("Sub(%v,%v): %v", a, b, err)
		}
		if got, want := qm31FromOutput(out), a.Sub(b); got != want {
			t.Fatalf("Sub(%v,%v) = %v, want %v", a, b, got, want)
		}
	}
}

func TestDouble(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	frag := Double()
	for i := 0; i < 200; i++ {
		a := randQM31(rng)

		out, err := execvm.Run(frag, pushQM31(nil, a))
		if err != nil {
			t.Fatalf("Double(%v): %v", a, err)
		}
		if got, want := qm31FromOutput(out), a.Double(); got != want {
			t.Fatalf("Double(%v) = %v, want %v", a, got, want)
		}
	}
}

func TestMul(t *testing.T) {
	rng := rand.New(rand.NewSource(24))
	frag := Mul()
	for i := 0; i < 200; i++ {
		a := randQM31(rng)
		b := randQM31(rng)

		stack := pushQM31(nil, a)
		stack = pushQM31(stack, b)
		out, err := execvm.Run(frag, stack)
		if err != nil {
			t.Fatalf("Mul(%v,%v): %v", a, b, err)
		}
		if got, want := qm31FromOutput(out), a.Mul(b); got != want {
			t.Fatalf("Mul(%v,%v) = %v, want %v", a, b, got, want)
		}
	}
}

func TestMulM31(t *testing.T) {
	rng := rand.New(rand.NewSource(25))
	frag := MulM31()
	for i := 0; i < 200; i++ {
		a := randQM31(rng)
		s := randM31(rng)

		stack := pushQM31(nil, a)
		stack = append(stack, int64(s))
		out, err := execvm.Run(frag, stack)
		if err != nil {
			t.Fatalf("MulM31(%v,%d): %v", a, s, err)
		}
		if got, want := qm31FromOutput(out), a.MulM31(s); got != want {
			t.Fatalf("MulM31(%v,%d) = %v, want %v", a, s, got, want)
		}
	}
}

func TestEqualVerify(t *testing.T) {
	rng := rand.New(rand.NewSource(26))
	frag := EqualVerify()
	for i := 0; i < 50; i++ {
		a := randQM31(rng)

		stack := pushQM31(nil, a)
		stack = pushQM31(stack, a)
		if _, err := execvm.Run(frag, stack); err != nil {
			t.Fatalf("EqualVerify(%v,%v): %v", a, a, err)
		}
	}

	a := randQM31(rng)
	b := a
	b.X0.Real = b.X0.Real.Add(1)
	stack := pushQM31(nil, a)
	stack = pushQM31(stack, b)
	if _, err := execvm.Run(frag, stack); err == nil {
		t.Fatalf("EqualVerify(%v,%v) unexpectedly succeeded", a, b)
	}
}

// TestCopyRoll checks Copy/Roll against a sequence of three QM31 values
// pushed deep-to-top, verifying offset 0 addresses the topmost value and
// the operation has the documented effect on the stack depth.
func TestCopyRoll(t *testing.T) {
	rng := rand.New(rand.NewSource(27))
	values := make([]field.QM31, 3)
	var stack []int64
	for i := range values {
		values[i] = randQM31(rng)
		stack = pushQM31(stack, values[i])
	}

	for offset := int64(0); offset < 3; offset++ {
		out, err := execvm.Run(Copy(offset), append([]int64{}, stack...))
		if err != nil {
			t.Fatalf("Copy(%d): %v", offset, err)
		}
		got := qm31FromOutput(out[len(out)-4:])
		want := values[2-offset]
		if got != want {
			t.Fatalf("Copy(%d) copied %v, want %v", offset, got, want)
		}
		if len(out) != len(stack)+4 {
			t.Fatalf("Copy(%d) produced %d items, want %d", offset, len(out), len(stack)+4)
		}
	}

	for offset := int64(0); offset < 3; offset++ {
		out, err := execvm.Run(Roll(offset), append([]int64{}, stack...))
		if err != nil {
			t.Fatalf("Roll(%d): %v", offset, err)
		}
		got := qm31FromOutput(out[len(out)-4:])
		want := values[2-offset]
		if got != want {
			t.Fatalf("Roll(%d) rolled %v, want %v", offset, got, want)
		}
		if len(out) != len(stack) {
			t.Fatalf("Roll(%d) produced %d items, want %d", offset, len(out), len(stack))
		}
	}
}

func TestToFromAltStack(t *testing.T) {
	rng := rand.New(rand.NewSource(28))
	a := randQM31(rng)
	frag := script.Concat(ToAltStack(), FromAltStack())
	out, err := execvm.Run(frag, pushQM31(nil, a))
	if err != nil {
		t.Fatalf("ToAltStack/FromAltStack(%v): %v", a, err)
	}
	if got := qm31FromOutput(out); got != a {
		t.Fatalf("ToAltStack/FromAltStack(%v) = %v, want %v", a, got, a)
	}
}
