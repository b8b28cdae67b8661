package nnue

import (
	"bytes"
	"errors"
	"testing"

	. "github.com/ChizhovVadim/CounterCore/pkg/common"
)

func mustPosition(t *testing.T, fen string) Position {
	t.Helper()
	var p, err = NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func evaluateFresh(n *Network, p *Position) (int, int) {
	return n.Evaluate(p, NewAccumulatorStack(), NewCaches())
}

func TestPsqtIsMaterialBalance(t *testing.T) {
	var n = NewNetwork("test", Big, NewRandomWeights(16, 1))
	var tests = []struct {
		fen  string
		want int
	}{
		{InitialPositionFen, 0},
		{"4k3/8/8/8/8/8/8/3QK3 w - - 0 1", QueenValue},
		{"4k3/8/8/8/8/8/8/3QK3 b - - 0 1", -QueenValue},
		{"4k3/pp6/8/8/8/8/8/3RK3 b - - 0 1", 2*PawnValue - RookValue},
	}
	for _, test := range tests {
		var p = mustPosition(t, test.fen)
		var psqt, _ = evaluateFresh(n, &p)
		if psqt != test.want {
			t.Errorf("%v: psqt %v, want %v", test.fen, psqt, test.want)
		}
	}
}

func TestCacheRefreshMatchesFreshEvaluation(t *testing.T) {
	var n = NewNetwork("test", Small, NewRandomWeights(32, 2))
	var caches = NewCaches()
	var stack = NewAccumulatorStack()

	var p = mustPosition(t, InitialPositionFen)
	n.Evaluate(&p, stack, caches)
	for _, lan := range []string{"e2e4", "d7d5", "e4d5", "d8d5", "b1c3"} {
		var child, ok = p.MakeMoveLAN(lan)
		if !ok {
			t.Fatal(lan)
		}
		p = child
		stack.Push()
		var psqt, positional = n.Evaluate(&p, stack, caches)
		var wantPsqt, wantPositional = evaluateFresh(n, &p)
		if psqt != wantPsqt || Abs(positional-wantPositional) > 1 {
			t.Errorf("%v: cached (%v, %v), fresh (%v, %v)", lan, psqt, positional, wantPsqt, wantPositional)
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	var n = NewNetwork("test", Big, NewRandomWeights(32, 3))
	var p = mustPosition(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var a1, b1 = evaluateFresh(n, &p)
	var a2, b2 = evaluateFresh(n, &p)
	if a1 != a2 || b1 != b2 {
		t.Errorf("(%v, %v) != (%v, %v)", a1, b1, a2, b2)
	}
}

func TestEvaluateMirror(t *testing.T) {
	var n = NewNetwork("test", Big, NewRandomWeights(32, 4))
	var p = mustPosition(t, "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10")
	var mirror = MirrorPosition(&p)
	var psqt1, positional1 = evaluateFresh(n, &p)
	var psqt2, positional2 = evaluateFresh(n, &mirror)
	if psqt1 != psqt2 || Abs(positional1-positional2) > 1 {
		t.Errorf("(%v, %v) != (%v, %v)", psqt1, positional1, psqt2, positional2)
	}
}

func TestLastBig(t *testing.T) {
	var big = NewNetwork("big", Big, NewRandomWeights(16, 5))
	var small = NewNetwork("small", Small, NewRandomWeights(8, 6))
	var caches = NewCaches()
	var p = mustPosition(t, InitialPositionFen)

	var stack = NewAccumulatorStack()
	if stack.LastBig() {
		t.Error("root stack reports last big")
	}
	big.Evaluate(&p, stack, caches)
	stack.Push()
	if !stack.LastBig() {
		t.Error("want last big after big evaluation")
	}

	stack.Reset()
	small.Evaluate(&p, stack, caches)
	stack.Push()
	if stack.LastBig() {
		t.Error("want not last big after small evaluation")
	}
	stack.Pop()
	if stack.Size != 1 {
		t.Errorf("size %v", stack.Size)
	}
}

func TestSaveLoadWeights(t *testing.T) {
	var w = NewRandomWeights(8, 7)
	var buf bytes.Buffer
	if err := w.Save(&buf); err != nil {
		t.Fatal(err)
	}
	var loaded, err = LoadWeights(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	var p = mustPosition(t, InitialPositionFen)
	var a1, b1 = evaluateFresh(NewNetwork("a", Big, w), &p)
	var a2, b2 = evaluateFresh(NewNetwork("b", Big, loaded), &p)
	if a1 != a2 || b1 != b2 {
		t.Errorf("(%v, %v) != (%v, %v)", a1, b1, a2, b2)
	}

	var truncated = buf.Bytes()[:buf.Len()/2]
	if _, err := LoadWeights(bytes.NewReader(truncated)); !errors.Is(err, ErrInvalidWeights) {
		t.Errorf("truncated: err = %v", err)
	}
	if _, err := LoadWeights(bytes.NewReader([]byte("not a network file"))); !errors.Is(err, ErrInvalidWeights) {
		t.Errorf("bad magic: err = %v", err)
	}
}
