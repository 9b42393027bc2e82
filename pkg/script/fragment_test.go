package script

import "testing"

func TestPushSmallIntRoundTrip(t *testing.T) {
	tests := []int64{-1, 0, 1, 16, 17, 127, 128, -128, -129, 1 << 20, -(1 << 20)}
	for _, n := range tests {
		b := NewBuilder().Push(n).Finish()
		got := decodeNum(pushArgBytes(b.Bytes()))
		if n >= -1 && n <= 16 {
			continue // dedicated opcodes, no push payload to decode
		}
		if got != n {
			t.Errorf("Push(%d): round trip got %d", n, got)
		}
	}
}

// pushArgBytes extracts the raw payload of a single direct-push fragment,
// assuming the caller knows the fragment is exactly one push.
func pushArgBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	n := int(b[0])
	if n == 0 || n > 75 {
		return nil
	}
	return b[1 : 1+n]
}

func TestBuilderStackDelta(t *testing.T) {
	f := NewBuilder().Push(1).Push(2).Op(OpAdd).Finish()
	if f.StackDelta() != 1 {
		t.Errorf("Push Push Add: delta = %d, want 1", f.StackDelta())
	}

	f = NewBuilder().Op(OpDup).Finish()
	if f.StackDelta() != 1 {
		t.Errorf("Dup: delta = %d, want 1", f.StackDelta())
	}

	f = NewBuilder().PickN(3).Finish()
	if f.StackDelta() != 1 {
		t.Errorf("PickN: delta = %d, want 1", f.StackDelta())
	}

	f = NewBuilder().RollN(3).Finish()
	if f.StackDelta() != 0 {
		t.Errorf("RollN: delta = %d, want 0", f.StackDelta())
	}
}

func TestIfRequiresMatchingDeltas(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("If with mismatched branch deltas should panic")
		}
	}()
	then := NewBuilder().Push(1).Finish()
	els := NewBuilder().Push(1).Push(2).Finish()
	NewBuilder().If(then, &els)
}

func TestDisassembleAddFragment(t *testing.T) {
	f := NewBuilder().Push(127).Push(128).Op(OpAdd).Finish()
	out := Disassemble(f)
	want := "PUSH(7f) = 127\nPUSH(8000) = 128\nOP_ADD"
	if out != want {
		t.Errorf("Disassemble() =\n%s\nwant\n%s", out, want)
	}
}
