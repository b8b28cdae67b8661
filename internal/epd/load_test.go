package epd

import (
	"errors"
	"strings"
	"testing"

	"github.com/ChizhovVadim/CounterCore/pkg/common"
)

const suite = `# standard and chess960 positions
rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;D1 20 ;D2 400 ;D3 8902

bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 2 9 ;D1 21 ;D2 528 ;D3 12189
`

func TestLoad(t *testing.T) {
	var items, err = Load(strings.NewReader(suite))
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("items %v", len(items))
	}
	for _, item := range items {
		if item.MaxDepth() != 3 {
			t.Errorf("%v: max depth %v", item.Content, item.MaxDepth())
		}
		for _, d := range item.Depths {
			if got := common.Perft(&item.Position, d.Depth); got != d.Nodes {
				t.Errorf("%v D%v: %v, want %v", item.Content, d.Depth, got, d.Nodes)
			}
		}
	}
	if !items[1].Position.Chess960 {
		t.Error("want chess960 position")
	}
}

func TestLoadErrors(t *testing.T) {
	var tests = []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;D1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;X1 20",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;D1 many",
		"not a fen ;D1 20",
	}
	for _, test := range tests {
		if _, err := Load(strings.NewReader(test)); err == nil {
			t.Errorf("%q: no error", test)
		}
	}
	var _, err = Load(strings.NewReader("8/8/8 w - - ;D1 1"))
	if !errors.Is(err, common.ErrInvalidFEN) {
		t.Errorf("err = %v", err)
	}
}
