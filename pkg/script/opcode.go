// Package script implements a minimal Bitcoin Tapscript bytecode builder:
// an opcode catalog, a canonical numeric-push encoding, and an
// append-only byte-buffer assembler used by the field-arithmetic
// fragment generators in pkg/m31, pkg/cm31, and pkg/qm31.
package script

// Op is a Tapscript opcode byte. Values match the real historical Bitcoin
// Script opcode encoding; the host this library targets re-enables
// OP_MUL and OP_DIV beyond standard consensus rules.
type Op byte

const (
	Op1Negate Op = 0x4f

	OpIf     Op = 0x63
	OpElse   Op = 0x67
	OpEndIf  Op = 0x68
	OpVerify Op = 0x69

	OpToAltStack   Op = 0x6b
	OpFromAltStack Op = 0x6c
	Op2Dup         Op = 0x6e
	OpSwap         Op = 0x7c
	OpOver         Op = 0x78
	OpPick         Op = 0x79
	OpRoll         Op = 0x7a
	OpRot          Op = 0x7b
	OpDup          Op = 0x76

	OpEqual       Op = 0x87
	OpEqualVerify Op = 0x88

	OpAdd Op = 0x93
	OpSub Op = 0x94
	OpMul Op = 0x95
	OpDiv Op = 0x96

	OpLessThan           Op = 0x9f
	OpGreaterThanOrEqual Op = 0xa2
)

// Name returns the canonical mnemonic for op, used by Disassemble.
func (op Op) Name() string {
	switch op {
	case Op1Negate:
		return "OP_1NEGATE"
	case OpIf:
		return "OP_IF"
	case OpElse:
		return "OP_ELSE"
	case OpEndIf:
		return "OP_ENDIF"
	case OpVerify:
		return "OP_VERIFY"
	case OpToAltStack:
		return "OP_TOALTSTACK"
	case OpFromAltStack:
		return "OP_FROMALTSTACK"
	case Op2Dup:
		return "OP_2DUP"
	case OpSwap:
		return "OP_SWAP"
	case OpOver:
		return "OP_OVER"
	case OpPick:
		return "OP_PICK"
	case OpRoll:
		return "OP_ROLL"
	case OpRot:
		return "OP_ROT"
	case OpDup:
		return "OP_DUP"
	case OpEqual:
		return "OP_EQUAL"
	case OpEqualVerify:
		return "OP_EQUALVERIFY"
	case OpAdd:
		return "OP_ADD"
	case OpSub:
		return "OP_SUB"
	case OpMul:
		return "OP_MUL"
	case OpDiv:
		return "OP_DIV"
	case OpLessThan:
		return "OP_LESSTHAN"
	case OpGreaterThanOrEqual:
		return "OP_GREATERTHANOREQUAL"
	default:
		return "OP_UNKNOWN"
	}
}

// StackDelta reports how many net items op leaves on the operand stack,
// for operations whose effect does not depend on a push argument. PICK,
// ROLL, and numeric pushes are not representable here and return 0; callers
// needing an exact count should track it at the Builder call site instead
// (see Fragment.StackDelta).
func (op Op) StackDelta() int {
	switch op {
	case OpDup, OpOver:
		return 1
	case Op2Dup:
		return 2
	case OpAdd, OpSub, OpMul, OpDiv, OpEqual, OpLessThan, OpGreaterThanOrEqual:
		return -1
	case OpEqualVerify:
		return -2
	case OpToAltStack:
		return -1 // moves one item across stacks; net operand-stack delta
	case OpFromAltStack:
		return 1 // moves one item across stacks; net operand-stack delta
	case OpSwap, OpRot:
		return 0
	default:
		return 0
	}
}
