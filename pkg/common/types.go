package common

const InitialPositionFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const (
	Empty int = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// MaxMoves bounds the number of pseudo-legal moves in any reachable position.
const MaxMoves = 256

const (
	WhiteKingSide = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide

	WhiteCastling = WhiteKingSide | WhiteQueenSide
	BlackCastling = BlackKingSide | BlackQueenSide
	AnyCastling   = WhiteCastling | BlackCastling
)

// Midgame piece values used by material counting.
const (
	PawnValue   = 208
	KnightValue = 781
	BishopValue = 825
	RookValue   = 1276
	QueenValue  = 2538
)

var PieceValue = [King + 1]int{0, PawnValue, KnightValue, BishopValue, RookValue, QueenValue, 0}

// CastlingRights returns the rights of side selected by mask.
func CastlingRights(side bool, mask int) int {
	if side {
		return mask & WhiteCastling
	}
	return mask & BlackCastling
}

func KingSide(side bool) int {
	return let(side, WhiteKingSide, BlackKingSide)
}

func QueenSide(side bool) int {
	return let(side, WhiteQueenSide, BlackQueenSide)
}

func sideIndex(side bool) int {
	return let(side, 0, 1)
}
