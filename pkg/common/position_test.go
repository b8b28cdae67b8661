package common

import (
	"errors"
	"testing"
)

func TestFenRoundTrip(t *testing.T) {
	var fens = append([]string{
		"bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 2 9",
		"8/8/8/KPp4r/8/8/8/7k w - c6 0 1",
	}, testFens...)
	for _, fen := range fens {
		var p = mustPosition(t, fen)
		if p.String() != fen {
			t.Errorf("got %v, want %v", p.String(), fen)
		}
	}
}

func TestInvalidFen(t *testing.T) {
	var fens = []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR/8 w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQXBNR w KQkq - 0 1",
		"rnbq1bnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQ - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w K - 0 1",
		"4k3/8/8/8/8/8/8/R3K3 w Z - 0 1",
		"4k3/4R3/8/8/8/8/8/4K3 w - - 0 1",
		"rnbqkbnr/pppppppp1/7/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - abc 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1",
	}
	for _, fen := range fens {
		if _, err := NewPositionFromFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("%q: err = %v", fen, err)
		}
	}
}

func TestEpSquareOnlyWhenCapturable(t *testing.T) {
	var p = mustPosition(t, InitialPositionFen)
	var child, ok = p.MakeMoveLAN("e2e4")
	if !ok {
		t.Fatal("e2e4 rejected")
	}
	if child.EpSquare != SquareNone {
		t.Errorf("ep square %v", SquareName(child.EpSquare))
	}

	p = mustPosition(t, "4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1")
	child, _ = p.MakeMoveLAN("e2e4")
	if child.EpSquare != SquareE3 {
		t.Errorf("ep square %v, want e3", child.EpSquare)
	}
	var grandChild, ok2 = child.MakeMoveLAN("d4e3")
	if !ok2 {
		t.Fatal("d4e3 rejected")
	}
	if grandChild.WhatPiece(SquareE4) != Empty || grandChild.WhatPiece(SquareE3) != Pawn {
		t.Errorf("en passant not applied: %v", grandChild.String())
	}
}

func TestFenEpSquare(t *testing.T) {
	var tests = []struct {
		fen  string
		want int
	}{
		{"4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1", SquareE6},
		// no pawn to capture
		{"4k3/8/8/3P4/8/8/8/4K3 w - e6 0 1", SquareNone},
		// no capturing pawn
		{"4k3/8/8/4p3/8/8/8/4K3 w - e6 0 1", SquareNone},
		// wrong rank
		{"4k3/8/8/8/3Pp3/8/8/4K3 w - e5 0 1", SquareNone},
		// occupied ep square
		{"4k3/8/4n3/3Pp3/8/8/8/4K3 w - e6 0 1", SquareNone},
		// pawn could not have come from e7
		{"4k3/4n3/8/3Pp3/8/8/8/4K3 w - e6 0 1", SquareNone},
		{"4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1", SquareE3},
		{"4k3/8/8/8/3p4/8/8/4K3 b - e3 0 1", SquareNone},
	}
	for _, test := range tests {
		var p = mustPosition(t, test.fen)
		if p.EpSquare != test.want {
			t.Errorf("%v: ep square %v, want %v", test.fen, p.EpSquare, test.want)
		}
		for _, m := range GenerateLegalMoves(&p) {
			if m.Flag() == FlagEnPassant && test.want == SquareNone {
				t.Errorf("%v: en passant move %v", test.fen, m)
			}
		}
	}
}

func TestMakeMoveCastling(t *testing.T) {
	var tests = []struct {
		fen  string
		move string
		want string
	}{
		{
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			"e1g1",
			"r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1",
		},
		{
			"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			"e8c8",
			"2kr3r/8/8/8/8/8/8/R3K2R w KQ - 1 2",
		},
		{
			"1r2k2r/8/8/8/8/8/8/1R2K2R w KBkb - 0 1",
			"e1b1",
			"1r2k2r/8/8/8/8/8/8/2KR3R b hb - 1 1",
		},
		{
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			"a1a8",
			"R3k2r/8/8/8/8/8/8/4K2R b Kk - 0 1",
		},
	}
	for _, test := range tests {
		var p = mustPosition(t, test.fen)
		var child, ok = p.MakeMoveLAN(test.move)
		if !ok {
			t.Errorf("%v: %v rejected", test.fen, test.move)
			continue
		}
		if child.String() != test.want {
			t.Errorf("%v %v: got %v, want %v", test.fen, test.move, child.String(), test.want)
		}
	}
}

func TestMakeMovePromotion(t *testing.T) {
	var p = mustPosition(t, "r3k3/1P6/8/8/8/8/8/4K3 w - - 0 1")
	var child, ok = p.MakeMoveLAN("b7a8n")
	if !ok {
		t.Fatal("b7a8n rejected")
	}
	if child.String() != "N3k3/8/8/8/8/8/8/4K3 b - - 0 1" {
		t.Error(child.String())
	}
}

func TestCheckInfo(t *testing.T) {
	var p = mustPosition(t, "4r2k/8/8/8/8/3n4/4R3/4K3 w - - 0 1")
	if p.Checkers != SquareMask[SquareD3] {
		t.Errorf("checkers %v", BitboardString(p.Checkers))
	}
	if p.Pinned() != SquareMask[SquareE2] {
		t.Errorf("pinned %v", BitboardString(p.Pinned()))
	}
	if p.Pinners(false) != SquareMask[SquareE8] {
		t.Errorf("pinners %v", BitboardString(p.Pinners(false)))
	}
}

func TestMirrorPosition(t *testing.T) {
	for _, fen := range testFens {
		var p = mustPosition(t, fen)
		var mirror = MirrorPosition(&p)
		if len(GenerateLegalMoves(&p)) != len(GenerateLegalMoves(&mirror)) {
			t.Errorf("%v: mirror %v has different move count", fen, mirror.String())
		}
		var back = MirrorPosition(&mirror)
		if back.String() != p.String() {
			t.Errorf("%v: double mirror %v", fen, back.String())
		}
	}
}

func TestNonPawnMaterial(t *testing.T) {
	var p = mustPosition(t, InitialPositionFen)
	var want = 2*KnightValue + 2*BishopValue + 2*RookValue + QueenValue
	if p.NonPawnMaterial(true) != want || p.NonPawnMaterial(false) != want {
		t.Errorf("npm %v %v, want %v", p.NonPawnMaterial(true), p.NonPawnMaterial(false), want)
	}
	if p.Count(Pawn, true) != 8 || p.CountAll(Pawn) != 16 {
		t.Errorf("pawns %v %v", p.Count(Pawn, true), p.CountAll(Pawn))
	}
}
