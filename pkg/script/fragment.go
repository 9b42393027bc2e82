package script

// Fragment is an immutable, opaque sequence of Tapscript bytes produced by
// a Builder. StackDelta is documentation-only metadata recording how many
// net items the fragment leaves on the operand stack when run against a
// stack deep enough to satisfy its preconditions; it is never consulted at
// splice time — callers are responsible for matching preconditions, the
// same way the original crate's script! macro composes scripts blindly.
type Fragment struct {
	bytes      []byte
	stackDelta int
}

// Bytes returns the raw serialized opcodes. The returned slice must not be
// modified.
func (f Fragment) Bytes() []byte { return f.bytes }

// StackDelta returns the fragment's documented net stack-depth change.
func (f Fragment) StackDelta() int { return f.stackDelta }

// Len returns the size of the fragment in bytes.
func (f Fragment) Len() int { return len(f.bytes) }

// Builder accumulates opcodes and pushes into a Fragment. The zero value
// is ready to use.
type Builder struct {
	buf   []byte
	delta int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Push appends the canonical minimal push encoding of n and records a
// stack growth of one.
func (b *Builder) Push(n int64) *Builder {
	b.buf = pushSmallInt(b.buf, n)
	b.delta++
	return b
}

// Op appends a single opcode and adjusts the tracked stack delta by the
// opcode's static effect. Opcodes whose effect depends on a preceding
// push (PICK, ROLL) should be emitted via PickN/RollN instead, which
// account for both the literal push and the opcode.
func (b *Builder) Op(op Op) *Builder {
	b.buf = append(b.buf, byte(op))
	b.delta += op.StackDelta()
	return b
}

// PickN appends `n OP_PICK`: copies the item n deep (0 = top) to the top,
// net stack growth of one.
func (b *Builder) PickN(n int64) *Builder {
	b.buf = pushSmallInt(b.buf, n)
	b.buf = append(b.buf, byte(OpPick))
	b.delta++
	return b
}

// RollN appends `n OP_ROLL`: moves the item n deep (0 = top) to the top,
// net stack depth unchanged.
func (b *Builder) RollN(n int64) *Builder {
	b.buf = pushSmallInt(b.buf, n)
	b.buf = append(b.buf, byte(OpRoll))
	return b
}

// Splice appends another fragment's bytes verbatim and folds in its
// documented stack delta.
func (b *Builder) Splice(f Fragment) *Builder {
	b.buf = append(b.buf, f.bytes...)
	b.delta += f.stackDelta
	return b
}

// If opens an OP_IF branch built by then. If elseBranch is non-nil it is
// spliced after an OP_ELSE. Both branches must leave the same documented
// stack delta; If panics otherwise, since a conditional fragment's net
// effect must not depend on the branch taken.
func (b *Builder) If(then Fragment, elseBranch *Fragment) *Builder {
	if elseBranch != nil && then.stackDelta != elseBranch.stackDelta {
		panic("script: If branches have mismatched stack deltas")
	}
	b.buf = append(b.buf, byte(OpIf))
	b.buf = append(b.buf, then.bytes...)
	if elseBranch != nil {
		b.buf = append(b.buf, byte(OpElse))
		b.buf = append(b.buf, elseBranch.bytes...)
	}
	b.buf = append(b.buf, byte(OpEndIf))
	b.delta += then.stackDelta
	b.delta-- // the OP_IF condition itself consumes one item
	return b
}

// Finish returns the accumulated Fragment. The Builder may continue to be
// used afterward; Finish does not reset it.
func (b *Builder) Finish() Fragment {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return Fragment{bytes: out, stackDelta: b.delta}
}

// Concat builds a Fragment by splicing fragments in order, propagating
// every stack delta. It is a convenience for the common case of gluing
// together a fixed pipeline of sub-fragments with no branching.
func Concat(fragments ...Fragment) Fragment {
	b := NewBuilder()
	for _, f := range fragments {
		b.Splice(f)
	}
	return b.Finish()
}
