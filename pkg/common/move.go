package common

// Move packs from (6 bits), to (6 bits), promotion piece type (3 bits) and a
// special flag (2 bits). Castling is encoded as king square to rook square.
type Move int32

const MoveEmpty Move = 0

const (
	FlagNormal = iota
	FlagPromotion
	FlagEnPassant
	FlagCastling
)

func NewMove(from, to int) Move {
	return Move(from | to<<6)
}

func NewPromotion(from, to, promotion int) Move {
	return Move(from | to<<6 | promotion<<12 | FlagPromotion<<15)
}

func NewEnPassant(from, to int) Move {
	return Move(from | to<<6 | FlagEnPassant<<15)
}

func NewCastling(kingFrom, rookFrom int) Move {
	return Move(kingFrom | rookFrom<<6 | FlagCastling<<15)
}

func (m Move) From() int {
	return int(m & 63)
}

func (m Move) To() int {
	return int((m >> 6) & 63)
}

// Promotion returns the promoted piece type or Empty.
func (m Move) Promotion() int {
	return int((m >> 12) & 7)
}

func (m Move) Flag() int {
	return int((m >> 15) & 3)
}

func (m Move) IsOk() bool {
	return m != MoveEmpty && m.From() != m.To()
}

func (m Move) String() string {
	return m.Uci(false)
}

// Uci formats the move in long algebraic notation. In standard chess castling
// is written as the king's two-square step, in Chess960 as king takes rook.
func (m Move) Uci(chess960 bool) string {
	if m == MoveEmpty {
		return "0000"
	}
	var from, to = m.From(), m.To()
	if m.Flag() == FlagCastling && !chess960 {
		to = MakeSquare(let(to > from, FileG, FileC), Rank(from))
	}
	var sPromotion = ""
	if m.Flag() == FlagPromotion {
		sPromotion = string("nbrq"[m.Promotion()-Knight])
	}
	return SquareName(from) + SquareName(to) + sPromotion
}

// ExtMove is a move with an ordering score. The score is a hint for move
// ordering and has no bearing on legality.
type ExtMove struct {
	Move  Move
	Value int
}

// MoveSink receives generated moves.
type MoveSink interface {
	Add(move Move, value int)
}

// MoveList is a fixed capacity move buffer.
type MoveList struct {
	Moves [MaxMoves]ExtMove
	Size  int
}

func (ml *MoveList) Add(move Move, value int) {
	ml.Moves[ml.Size] = ExtMove{Move: move, Value: value}
	ml.Size++
}

func (ml *MoveList) Clear() {
	ml.Size = 0
}

func (ml *MoveList) Slice() []ExtMove {
	return ml.Moves[:ml.Size]
}

func (ml *MoveList) Contains(move Move) bool {
	for i := 0; i < ml.Size; i++ {
		if ml.Moves[i].Move == move {
			return true
		}
	}
	return false
}

type sliceSink struct {
	moves []ExtMove
}

func (s *sliceSink) Add(move Move, value int) {
	s.moves = append(s.moves, ExtMove{Move: move, Value: value})
}
