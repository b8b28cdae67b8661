package common

// GenerateLegal appends the legal moves of p to ml. Only moves of pinned
// pieces, king moves and en passant captures are verified with Position.Legal.
// A rejected move is overwritten by the last move of the list, so the order
// of the surviving moves is not preserved.
func (mg *MoveGenerator) GenerateLegal(p *Position, ml []ExtMove) []ExtMove {
	var us = p.WhiteMove
	var pinned = p.BlockersForKing(us) & p.PiecesByColor(us)
	var ksq = p.KingSquare(us)

	var start = len(ml)
	if p.Checkers != 0 {
		ml = mg.GenerateMoves(ml, p, Evasions)
	} else {
		ml = mg.GenerateMoves(ml, p, NonEvasions)
	}

	var end = len(ml)
	for i := start; i < end; {
		var move = ml[i].Move
		if (pinned&SquareMask[move.From()] != 0 ||
			move.From() == ksq ||
			move.Flag() == FlagEnPassant) &&
			!p.Legal(move) {
			end--
			ml[i] = ml[end]
		} else {
			i++
		}
	}
	return ml[:end]
}

func GenerateLegal(p *Position, ml []ExtMove) []ExtMove {
	return defaultMoveGenerator.GenerateLegal(p, ml)
}

func GenerateLegalMoves(p *Position) []Move {
	var buffer [MaxMoves]ExtMove
	var ml = GenerateLegal(p, buffer[:0])
	var result = make([]Move, len(ml))
	for i := range ml {
		result[i] = ml[i].Move
	}
	return result
}

// Perft counts the leaf nodes of the legal move tree of the given depth.
func Perft(p *Position, depth int) int {
	if depth <= 0 {
		return 1
	}
	var buffer [MaxMoves]ExtMove
	var ml = GenerateLegal(p, buffer[:0])
	if depth == 1 {
		return len(ml)
	}
	var result = 0
	var child Position
	for i := range ml {
		if p.MakeMove(ml[i].Move, &child) {
			result += Perft(&child, depth-1)
		}
	}
	return result
}

type PerftEntry struct {
	Move  Move
	Nodes int
}

// PerftDivide returns the perft count below each legal root move.
func PerftDivide(p *Position, depth int) []PerftEntry {
	var buffer [MaxMoves]ExtMove
	var ml = GenerateLegal(p, buffer[:0])
	var result = make([]PerftEntry, 0, len(ml))
	var child Position
	for i := range ml {
		if p.MakeMove(ml[i].Move, &child) {
			result = append(result, PerftEntry{
				Move:  ml[i].Move,
				Nodes: Perft(&child, depth-1),
			})
		}
	}
	return result
}
