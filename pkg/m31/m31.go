// Package m31 emits Tapscript fragments for arithmetic over the Mersenne
// prime field Z/(2^31-1). Every exported function returns a script.Fragment
// with documented stack pre/postconditions; none of them execute anything.
//
// Internally, several fragments route through an "N31" representation —
// the same residues held in [-Mod, 0) rather than [0, Mod) — to defer the
// sign-correction branch that converting back to canonical form requires.
// N31 values never cross a fragment boundary: every exported function
// here consumes and produces canonical M31 values only.
package m31

import "github.com/bitcoin-wildlife/tapscript-m31/pkg/script"

// Mod is the Mersenne prime modulus 2^31 - 1.
const Mod = (int64(1) << 31) - 1

// m31ToN31 converts a canonical M31 value (stack top) to its N31
// representative a - Mod, which is in [-Mod, 0) for a in [0, Mod).
// Pre: [a]. Post: [a-Mod].
func m31ToN31() script.Fragment {
	return script.NewBuilder().Push(Mod).Op(script.OpSub).Finish()
}

// m31Adjust corrects a value that may have landed in [-Mod, Mod) back into
// canonical [0, Mod) range by adding Mod once if negative.
// Pre: [a]. Post: [a'] with a' in [0, Mod).
func m31Adjust() script.Fragment {
	then := script.NewBuilder().Push(Mod).Op(script.OpAdd).Finish()
	return script.NewBuilder().
		Op(script.OpDup).
		Push(0).
		Op(script.OpLessThan).
		If(then, nil).
		Finish()
}

func m31AddN31() script.Fragment {
	return script.Concat(
		script.NewBuilder().Op(script.OpAdd).Finish(),
		m31Adjust(),
	)
}

// Add emits `m31_add`: pops a, b (b on top) and pushes (a+b) mod Mod.
// Pre: [.., a, b]. Post: [.., a+b mod Mod].
func Add() script.Fragment {
	return script.Concat(m31ToN31(), m31AddN31())
}

// Double emits `m31_double`: pops a and pushes 2a mod Mod.
// Pre: [.., a]. Post: [.., 2a mod Mod].
func Double() script.Fragment {
	return script.Concat(
		script.NewBuilder().Op(script.OpDup).Finish(),
		Add(),
	)
}

// Sub emits `m31_sub`: pops a, b (b on top) and pushes (a-b) mod Mod.
// Pre: [.., a, b]. Post: [.., a-b mod Mod].
func Sub() script.Fragment {
	return script.Concat(
		script.NewBuilder().Op(script.OpSub).Finish(),
		m31Adjust(),
	)
}

// Neg emits `m31_neg`: pops a and pushes (Mod-a) mod Mod.
// Pre: [.., a]. Post: [.., (Mod-a) mod Mod].
func Neg() script.Fragment {
	return script.Concat(
		script.NewBuilder().Push(0).Op(script.OpSwap).Finish(),
		Sub(),
	)
}
