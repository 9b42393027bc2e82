// Package execvm is a minimal interpreter for the Tapscript opcode subset
// pkg/script emits. It exists only to let pkg/m31, pkg/cm31, and pkg/qm31's
// tests (and the tapm31 selfcheck command) execute a generated Fragment
// and check its stack postcondition — it is not part of this repository's
// public library surface, the same way the real host VM is explicitly out
// of scope for the fragment generators themselves.
package execvm

import "fmt"

// Stack is a signed 64-bit operand stack plus a separate alt stack,
// mirroring the two stacks a Tapscript interpreter exposes.
type Stack struct {
	main []int64
	alt  []int64
}

// NewStack returns a Stack initialized with the given items, deepest first.
func NewStack(initial ...int64) *Stack {
	s := &Stack{main: append([]int64(nil), initial...)}
	return s
}

func (s *Stack) Push(v int64) { s.main = append(s.main, v) }

func (s *Stack) Pop() (int64, error) {
	if len(s.main) == 0 {
		return 0, fmt.Errorf("execvm: pop from empty stack")
	}
	v := s.main[len(s.main)-1]
	s.main = s.main[:len(s.main)-1]
	return v, nil
}

// PickAt returns the item n deep (0 = top) without removing it.
func (s *Stack) PickAt(n int64) (int64, error) {
	idx := len(s.main) - 1 - int(n)
	if n < 0 || idx < 0 {
		return 0, fmt.Errorf("execvm: pick %d out of range (depth %d)", n, len(s.main))
	}
	return s.main[idx], nil
}

// RollAt removes and returns the item n deep (0 = top), shifting the
// items above it down by one.
func (s *Stack) RollAt(n int64) (int64, error) {
	idx := len(s.main) - 1 - int(n)
	if n < 0 || idx < 0 {
		return 0, fmt.Errorf("execvm: roll %d out of range (depth %d)", n, len(s.main))
	}
	v := s.main[idx]
	s.main = append(s.main[:idx], s.main[idx+1:]...)
	return v, nil
}

func (s *Stack) ToAlt() error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	s.alt = append(s.alt, v)
	return nil
}

func (s *Stack) FromAlt() error {
	if len(s.alt) == 0 {
		return fmt.Errorf("execvm: fromaltstack on empty altstack")
	}
	v := s.alt[len(s.alt)-1]
	s.alt = s.alt[:len(s.alt)-1]
	s.Push(v)
	return nil
}

// Items returns a copy of the main stack, deepest first.
func (s *Stack) Items() []int64 { return append([]int64(nil), s.main...) }

// AltEmpty reports whether the alt stack is empty, the postcondition every
// top-level Run call enforces on behalf of spec invariant 2 (no fragment
// observable from outside may leave residue on the alt stack).
func (s *Stack) AltEmpty() bool { return len(s.alt) == 0 }
