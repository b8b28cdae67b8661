package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dylhunn/dragontoothmg"

	"github.com/ChizhovVadim/CounterCore/pkg/common"
)

var errChess960 = errors.New("dragontoothmg does not support chess960")

// verifyTree compares the legal moves of every node up to depth with
// dragontoothmg.
func verifyTree(p *common.Position, depth int) error {
	if p.Chess960 {
		return errChess960
	}
	return verifyNode(p, depth)
}

func verifyNode(p *common.Position, depth int) error {
	var moves = common.GenerateLegalMoves(p)
	var got = make([]string, len(moves))
	for i, m := range moves {
		got[i] = m.Uci(false)
	}
	sort.Strings(got)

	var board = dragontoothmg.ParseFen(p.String())
	var want []string
	for _, m := range board.GenerateLegalMoves() {
		want = append(want, strings.ToLower(m.String()))
	}
	sort.Strings(want)

	if strings.Join(got, " ") != strings.Join(want, " ") {
		return fmt.Errorf("move generation mismatch %v: got %v, want %v", p.String(), got, want)
	}

	if depth <= 1 {
		return nil
	}
	var child common.Position
	for _, m := range moves {
		if !p.MakeMove(m, &child) {
			return fmt.Errorf("legal move %v rejected by MakeMove %v", m, p.String())
		}
		if err := verifyNode(&child, depth-1); err != nil {
			return err
		}
	}
	return nil
}
