package common

import "fmt"

type GenType int

const (
	Captures GenType = iota
	Quiets
	Evasions
	NonEvasions
	Legal
)

func (t GenType) String() string {
	switch t {
	case Captures:
		return "captures"
	case Quiets:
		return "quiets"
	case Evasions:
		return "evasions"
	case NonEvasions:
		return "non-evasions"
	case Legal:
		return "legal"
	}
	return fmt.Sprintf("GenType(%d)", int(t))
}

// MoveGenOptions holds the quiet move ordering tables, indexed Knight..Queen.
type MoveGenOptions struct {
	MobilityBonus    [4]int
	AvgMobilityBonus [4]int
}

func NewMoveGenOptions() MoveGenOptions {
	return MoveGenOptions{
		MobilityBonus:    [4]int{546, 297, 324, 132},
		AvgMobilityBonus: [4]int{2311, 1113, 1459, 1201},
	}
}

type MoveGenerator struct {
	options MoveGenOptions
}

func NewMoveGenerator(options MoveGenOptions) *MoveGenerator {
	return &MoveGenerator{options: options}
}

var defaultMoveGenerator = NewMoveGenerator(NewMoveGenOptions())

// Generate appends pseudo-legal moves of the requested type to sink.
// Evasions must be requested exactly when the side to move is in check.
func (mg *MoveGenerator) Generate(p *Position, genType GenType, sink MoveSink) {
	if genType == Legal {
		var ss = sliceSink{}
		ss.moves = mg.GenerateLegal(p, ss.moves)
		for _, m := range ss.moves {
			sink.Add(m.Move, m.Value)
		}
		return
	}
	if (genType == Evasions) != (p.Checkers != 0) {
		panic(fmt.Errorf("movegen: %v requested, checkers %x, fen %v", genType, p.Checkers, p.String()))
	}
	mg.generateAll(p, genType, sink)
}

// GenerateMoves appends moves of the requested type to ml.
func (mg *MoveGenerator) GenerateMoves(ml []ExtMove, p *Position, genType GenType) []ExtMove {
	var ss = sliceSink{moves: ml}
	mg.Generate(p, genType, &ss)
	return ss.moves
}

func GenerateMoves(ml []ExtMove, p *Position, genType GenType) []ExtMove {
	return defaultMoveGenerator.GenerateMoves(ml, p, genType)
}

func (mg *MoveGenerator) generateAll(p *Position, genType GenType, sink MoveSink) {
	var us = p.WhiteMove
	var own = p.PiecesByColor(us)
	var ksq = p.KingSquare(us)
	var target uint64

	if genType != Evasions || !MoreThanOne(p.Checkers) {
		switch genType {
		case Evasions:
			target = betweenMask[ksq][FirstOne(p.Checkers)] | p.Checkers
		case NonEvasions:
			target = ^own
		case Captures:
			target = p.PiecesByColor(!us)
		default:
			target = ^(p.White | p.Black)
		}

		mg.generatePawnMoves(p, genType, target, sink)
		for pieceType := Knight; pieceType <= Queen; pieceType++ {
			mg.generatePieceMoves(p, pieceType, genType, target, sink)
		}
	}

	var kingTarget = target
	if genType == Evasions {
		kingTarget = ^own
	}
	for toBB := KingAttacks[ksq] & kingTarget; toBB != 0; toBB &= toBB - 1 {
		sink.Add(NewMove(ksq, FirstOne(toBB)), 0)
	}

	if (genType == Quiets || genType == NonEvasions) && p.CanCastle(CastlingRights(us, AnyCastling)) {
		for _, cr := range [...]int{KingSide(us), QueenSide(us)} {
			if p.CanCastle(cr) && !p.CastlingImpeded(cr) {
				sink.Add(NewCastling(ksq, p.CastlingRookSquare(cr)), 0)
			}
		}
	}
}

func (mg *MoveGenerator) generatePawnMoves(p *Position, genType GenType, target uint64, sink MoveSink) {
	var us = p.WhiteMove
	var up = PawnPush(us)
	var upRight, upLeft = NorthEast, NorthWest
	var rank7, rank3 = Rank7Mask, Rank3Mask
	if !us {
		upRight, upLeft = SouthWest, SouthEast
		rank7, rank3 = Rank2Mask, Rank6Mask
	}

	var emptySquares = ^(p.White | p.Black)
	var enemies = p.PiecesByColor(!us)
	if genType == Evasions {
		enemies = p.Checkers
	}

	var pawns = p.Pawns & p.PiecesByColor(us)
	var pawnsOn7 = pawns & rank7
	var pawnsNotOn7 = pawns &^ rank7

	if genType != Captures {
		var b1 = Shift(pawnsNotOn7, up) & emptySquares
		var b2 = Shift(b1&rank3, up) & emptySquares
		if genType == Evasions {
			b1 &= target
			b2 &= target
		}
		for ; b1 != 0; b1 &= b1 - 1 {
			var to = FirstOne(b1)
			sink.Add(NewMove(to-up, to), 0)
		}
		for ; b2 != 0; b2 &= b2 - 1 {
			var to = FirstOne(b2)
			sink.Add(NewMove(to-up-up, to), 0)
		}
	}

	if pawnsOn7 != 0 {
		var b1 = Shift(pawnsOn7, upRight) & enemies
		var b2 = Shift(pawnsOn7, upLeft) & enemies
		var b3 = Shift(pawnsOn7, up) & emptySquares
		if genType == Evasions {
			b3 &= target
		}
		for ; b1 != 0; b1 &= b1 - 1 {
			var to = FirstOne(b1)
			makePromotions(genType, to-upRight, to, true, sink)
		}
		for ; b2 != 0; b2 &= b2 - 1 {
			var to = FirstOne(b2)
			makePromotions(genType, to-upLeft, to, true, sink)
		}
		for ; b3 != 0; b3 &= b3 - 1 {
			var to = FirstOne(b3)
			makePromotions(genType, to-up, to, false, sink)
		}
	}

	if genType == Quiets {
		return
	}

	var b1 = Shift(pawnsNotOn7, upRight) & enemies
	var b2 = Shift(pawnsNotOn7, upLeft) & enemies
	for ; b1 != 0; b1 &= b1 - 1 {
		var to = FirstOne(b1)
		sink.Add(NewMove(to-upRight, to), 0)
	}
	for ; b2 != 0; b2 &= b2 - 1 {
		var to = FirstOne(b2)
		sink.Add(NewMove(to-upLeft, to), 0)
	}

	if p.EpSquare != SquareNone {
		// A double push that uncovered a slider check cannot be answered by
		// taking the pushed pawn en passant.
		if genType == Evasions && target&SquareMask[p.EpSquare+up] != 0 {
			return
		}
		for fromBB := pawnsNotOn7 & PawnAttacks(p.EpSquare, !us); fromBB != 0; fromBB &= fromBB - 1 {
			sink.Add(NewEnPassant(FirstOne(fromBB), p.EpSquare), 0)
		}
	}
}

func makePromotions(genType GenType, from, to int, capture bool, sink MoveSink) {
	var all = genType == Evasions || genType == NonEvasions
	if genType == Captures || all {
		sink.Add(NewPromotion(from, to, Queen), 0)
	}
	if (genType == Captures && capture) || (genType == Quiets && !capture) || all {
		sink.Add(NewPromotion(from, to, Rook), 0)
		sink.Add(NewPromotion(from, to, Bishop), 0)
		sink.Add(NewPromotion(from, to, Knight), 0)
	}
}

func (mg *MoveGenerator) generatePieceMoves(p *Position, pieceType int, genType GenType, target uint64, sink MoveSink) {
	var allPieces = p.White | p.Black
	for fromBB := p.PiecesByType(pieceType) & p.PiecesByColor(p.WhiteMove); fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		var attacks = PieceAttacks(pieceType, from, allPieces)
		var score = 0
		if genType == Quiets {
			var i = pieceType - Knight
			score = mg.options.AvgMobilityBonus[i] - mg.options.MobilityBonus[i]*PopCount(attacks)
		}
		for toBB := attacks & target; toBB != 0; toBB &= toBB - 1 {
			sink.Add(NewMove(from, FirstOne(toBB)), score)
		}
	}
}
