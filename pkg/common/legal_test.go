package common

import (
	"sort"
	"strings"
	"testing"

	"github.com/notnil/chess"
)

func TestLegalScenarios(t *testing.T) {
	var tests = []struct {
		name    string
		fen     string
		want    []string
		exclude []string
	}{
		{
			name: "knight check with pinned rook",
			fen:  "4r2k/8/8/8/8/3n4/4R3/4K3 w - - 0 1",
			want: []string{"e1d1", "e1d2", "e1f1"},
		},
		{
			name:    "horizontal en passant pin",
			fen:     "8/8/8/KPp4r/8/8/8/7k w - c6 0 1",
			exclude: []string{"b5c6"},
		},
		{
			name:    "en passant after discovered check",
			fen:     "2b5/8/8/3pPK2/8/8/8/k7 w - d6 0 2",
			exclude: []string{"e5d6"},
		},
		{
			name: "en passant captures checking pawn",
			fen:  "8/8/8/4k3/3Pp3/8/8/4K3 b - d3 0 1",
			want: []string{"e4d3", "e5d4", "e5d5", "e5d6", "e5e6", "e5f4", "e5f5", "e5f6"},
		},
		{
			name:    "castling through attacked square",
			fen:     "4k3/8/8/8/8/8/5r2/R3K2R w KQ - 0 1",
			exclude: []string{"e1g1"},
		},
		{
			name: "castling out of check",
			fen:  "4k3/8/8/8/8/8/8/R3K2r w Q - 0 1",
			want: []string{"e1d2", "e1e2", "e1f2"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var p = mustPosition(t, test.fen)
			var got = moveStrings(GenerateLegal(&p, nil))
			if test.want != nil {
				var want = append([]string(nil), test.want...)
				sort.Strings(want)
				if strings.Join(got, " ") != strings.Join(want, " ") {
					t.Errorf("got %v, want %v", got, want)
				}
			}
			for _, s := range test.exclude {
				for _, g := range got {
					if g == s {
						t.Errorf("illegal move %v generated", s)
					}
				}
			}
		})
	}
}

func TestGenerateLegalKeepsPrefix(t *testing.T) {
	var p = mustPosition(t, "8/8/8/KPp4r/8/8/8/7k w - c6 0 1")
	var sentinel = ExtMove{Move: NewMove(SquareA1, SquareA2), Value: 7}
	var ml = GenerateLegal(&p, []ExtMove{sentinel})
	if ml[0] != sentinel {
		t.Fatalf("prefix overwritten: %v", ml[0])
	}
	if len(ml)-1 != len(GenerateLegalMoves(&p)) {
		t.Errorf("legal %v, want %v", len(ml)-1, len(GenerateLegalMoves(&p)))
	}
	for _, m := range ml[1:] {
		if m.Move.Flag() == FlagEnPassant {
			t.Errorf("pinned en passant %v", m.Move)
		}
	}
}

func TestGenerateLegalType(t *testing.T) {
	for _, fen := range testFens {
		var p = mustPosition(t, fen)
		var viaType = moveStrings(GenerateMoves(nil, &p, Legal))
		var direct = moveStrings(GenerateLegal(&p, nil))
		if strings.Join(viaType, " ") != strings.Join(direct, " ") {
			t.Errorf("%v: %v != %v", fen, viaType, direct)
		}
	}
}

func TestLegalMovesMatchNotnilChess(t *testing.T) {
	var fens = append([]string{
		"8/8/8/KPp4r/8/8/8/7k w - c6 0 1",
		"2b5/8/8/3pPK2/8/8/8/k7 w - d6 0 2",
		"8/8/8/4k3/3Pp3/8/8/4K3 b - d3 0 1",
		"4r2k/8/8/8/8/3n4/4R3/4K3 w - - 0 1",
		"4r2k/8/8/8/8/3n4/8/R3K3 w Q - 0 1",
	}, testFens...)
	for _, fen := range fens {
		var p = mustPosition(t, fen)
		var opt, err = chess.FEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		var game = chess.NewGame(opt)
		var want []string
		for _, m := range game.ValidMoves() {
			want = append(want, m.String())
		}
		sort.Strings(want)
		var got = moveStrings(GenerateLegal(&p, nil))
		if strings.Join(got, " ") != strings.Join(want, " ") {
			t.Errorf("%v\ngot  %v\nwant %v", fen, got, want)
		}
	}
}

//https://www.chessprogramming.org/Perft_Results
func TestPerft(t *testing.T) {
	var tests = []struct {
		fen   string
		depth int
		nodes int
	}{
		{
			fen:   InitialPositionFen,
			depth: 5,
			nodes: 4865609,
		},
		{
			fen:   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
			depth: 4,
			nodes: 4085603,
		},
		{
			fen:   "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
			depth: 6,
			nodes: 11030083,
		},
		{
			fen:   "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			depth: 4,
			nodes: 422333,
		},
		{
			fen:   "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
			depth: 4,
			nodes: 2103487,
		},
		{
			fen:   "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
			depth: 4,
			nodes: 3894594,
		},
		{
			fen:   "bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 2 9",
			depth: 4,
			nodes: 326672,
		},
	}
	for i, test := range tests {
		var depth, nodes = test.depth, test.nodes
		if testing.Short() {
			depth = 3
			nodes = perftDepth3[i]
		}
		var p = mustPosition(t, test.fen)
		var got = Perft(&p, depth)
		if got != nodes {
			t.Error(i, test.fen, depth, got, nodes)
		}
	}
}

var perftDepth3 = []int{8902, 97862, 2812, 9467, 62379, 89890, 12189}

func TestPerftDivide(t *testing.T) {
	var p = mustPosition(t, InitialPositionFen)
	var entries = PerftDivide(&p, 3)
	if len(entries) != 20 {
		t.Fatalf("root moves %v", len(entries))
	}
	var total = 0
	for _, e := range entries {
		total += e.Nodes
	}
	if total != 8902 {
		t.Errorf("total %v, want 8902", total)
	}
}
