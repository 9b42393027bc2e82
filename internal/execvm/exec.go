package execvm

import (
	"fmt"

	"github.com/bitcoin-wildlife/tapscript-m31/pkg/script"
)

// Run decodes and executes fragment against a stack seeded with initial
// (deepest first), returning the final main-stack contents. It returns an
// error if the fragment underflows the stack, references an unknown
// opcode, or leaves the alt stack non-empty.
func Run(fragment script.Fragment, initial []int64) ([]int64, error) {
	s := NewStack(initial...)
	if err := exec(fragment.Bytes(), s); err != nil {
		return nil, err
	}
	if !s.AltEmpty() {
		return nil, fmt.Errorf("execvm: altstack not empty at end of fragment")
	}
	return s.Items(), nil
}

func exec(b []byte, s *Stack) error {
	i := 0
	for i < len(b) {
		op := b[i]
		switch {
		case op == 0x00:
			s.Push(0)
			i++

		case op == byte(script.Op1Negate):
			s.Push(-1)
			i++

		case op >= 0x51 && op <= 0x60: // OP_1..OP_16
			s.Push(int64(op - 0x50))
			i++

		case op >= 0x01 && op <= 0x4b: // direct data push
			n := int(op)
			i++
			if i+n > len(b) {
				return fmt.Errorf("execvm: truncated push at offset %d", i)
			}
			s.Push(decodeNum(b[i : i+n]))
			i += n

		case op == byte(script.OpIf):
			cond, err := s.Pop()
			if err != nil {
				return err
			}
			thenStart := i + 1
			elsePos, endifPos, err := findBranch(b, thenStart)
			if err != nil {
				return err
			}
			if cond != 0 {
				thenEnd := elsePos
				if thenEnd < 0 {
					thenEnd = endifPos
				}
				if err := exec(b[thenStart:thenEnd], s); err != nil {
					return err
				}
			} else if elsePos >= 0 {
				elseStart := elsePos + 1
				if err := exec(b[elseStart:endifPos], s); err != nil {
					return err
				}
			}
			i = endifPos + 1

		default:
			if err := execOp(script.Op(op), s); err != nil {
				return err
			}
			i++
		}
	}
	return nil
}

// findBranch scans forward from start (just after an OP_IF) and returns
// the offsets of the matching OP_ELSE (or -1 if absent) and OP_ENDIF at
// the same nesting depth.
func findBranch(b []byte, start int) (elsePos, endifPos int, err error) {
	depth := 0
	elsePos = -1
	i := start
	for i < len(b) {
		op := b[i]
		switch {
		case op >= 0x01 && op <= 0x4b:
			i += 1 + int(op)
			continue
		case op == byte(script.OpIf):
			depth++
		case op == byte(script.OpElse) && depth == 0:
			elsePos = i
		case op == byte(script.OpEndIf):
			if depth == 0 {
				return elsePos, i, nil
			}
			depth--
		}
		i++
	}
	return 0, 0, fmt.Errorf("execvm: unterminated OP_IF")
}

func execOp(op script.Op, s *Stack) error {
	switch op {
	case script.OpDup:
		v, err := s.PickAt(0)
		if err != nil {
			return err
		}
		s.Push(v)
	case script.OpOver:
		v, err := s.PickAt(1)
		if err != nil {
			return err
		}
		s.Push(v)
	case script.Op2Dup:
		a, err := s.PickAt(1)
		if err != nil {
			return err
		}
		b, err := s.PickAt(0)
		if err != nil {
			return err
		}
		s.Push(a)
		s.Push(b)
	case script.OpSwap:
		a, err := s.Pop()
		if err != nil {
			return err
		}
		b, err := s.Pop()
		if err != nil {
			return err
		}
		s.Push(a)
		s.Push(b)
	case script.OpRot:
		a, err := s.RollAt(2)
		if err != nil {
			return err
		}
		s.Push(a)
	case script.OpPick:
		n, err := s.Pop()
		if err != nil {
			return err
		}
		v, err := s.PickAt(n)
		if err != nil {
			return err
		}
		s.Push(v)
	case script.OpRoll:
		n, err := s.Pop()
		if err != nil {
			return err
		}
		v, err := s.RollAt(n)
		if err != nil {
			return err
		}
		s.Push(v)
	case script.OpToAltStack:
		return s.ToAlt()
	case script.OpFromAltStack:
		return s.FromAlt()
	case script.OpAdd:
		b, err := s.Pop()
		if err != nil {
			return err
		}
		a, err := s.Pop()
		if err != nil {
			return err
		}
		s.Push(a + b)
	case script.OpSub:
		b, err := s.Pop()
		if err != nil {
			return err
		}
		a, err := s.Pop()
		if err != nil {
			return err
		}
		s.Push(a - b)
	case script.OpMul:
		b, err := s.Pop()
		if err != nil {
			return err
		}
		a, err := s.Pop()
		if err != nil {
			return err
		}
		s.Push(a * b)
	case script.OpDiv:
		b, err := s.Pop()
		if err != nil {
			return err
		}
		a, err := s.Pop()
		if err != nil {
			return err
		}
		if b == 0 {
			return fmt.Errorf("execvm: division by zero")
		}
		s.Push(quotientTowardZero(a, b))
	case script.OpEqual:
		b, err := s.Pop()
		if err != nil {
			return err
		}
		a, err := s.Pop()
		if err != nil {
			return err
		}
		if a == b {
			s.Push(1)
		} else {
			s.Push(0)
		}
	case script.OpEqualVerify:
		b, err := s.Pop()
		if err != nil {
			return err
		}
		a, err := s.Pop()
		if err != nil {
			return err
		}
		if a != b {
			return fmt.Errorf("execvm: OP_EQUALVERIFY failed: %d != %d", a, b)
		}
	case script.OpLessThan:
		b, err := s.Pop()
		if err != nil {
			return err
		}
		a, err := s.Pop()
		if err != nil {
			return err
		}
		if a < b {
			s.Push(1)
		} else {
			s.Push(0)
		}
	case script.OpGreaterThanOrEqual:
		b, err := s.Pop()
		if err != nil {
			return err
		}
		a, err := s.Pop()
		if err != nil {
			return err
		}
		if a >= b {
			s.Push(1)
		} else {
			s.Push(0)
		}
	default:
		return fmt.Errorf("execvm: unknown opcode 0x%02x", byte(op))
	}
	return nil
}

// quotientTowardZero implements Bitcoin Script's OP_DIV semantics, which
// truncate toward zero, the same as Go's own integer "/" (spelled out for
// clarity since a mismatch here would silently corrupt every
// split-and-recombine fragment).
func quotientTowardZero(a, b int64) int64 {
	return a / b
}

func decodeNum(data []byte) int64 {
	if len(data) == 0 {
		return 0
	}
	var result int64
	for i, bb := range data {
		result |= int64(bb) << (8 * i)
	}
	if data[len(data)-1]&0x80 != 0 {
		result &^= int64(0x80) << (8 * (len(data) - 1))
		result = -result
	}
	return result
}
