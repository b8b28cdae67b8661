package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrInvalidFEN = errors.New("invalid fen")

// Position is a board snapshot. It is a value type: MakeMove writes the
// child position into a caller-owned value.
type Position struct {
	Pawns, Knights, Bishops, Rooks, Queens, Kings, White, Black, Checkers uint64
	WhiteMove                                                             bool
	CastleRights, Rule50, EpSquare, MoveNumber                            int
	Chess960                                                              bool

	blockersForKing [2]uint64
	pinners         [2]uint64
	castling        *castlingInfo
}

// castlingInfo is shared by all positions of one game.
type castlingInfo struct {
	kingSquare [4]int
	rookSquare [4]int
	path       [4]uint64
	rightsMask [64]int
}

func castlingIndex(cr int) int {
	return FirstOne(uint64(cr))
}

func NewPositionFromFEN(fen string) (Position, error) {
	var tokens = strings.Fields(fen)
	if len(tokens) < 4 {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidFEN, fen)
	}

	var board [64]coloredPiece

	var ranks = strings.Split(tokens[0], "/")
	if len(ranks) != 8 {
		return Position{}, fmt.Errorf("%w: board size %v", ErrInvalidFEN, fen)
	}
	for r, rank := range ranks {
		var file = 0
		for _, ch := range rank {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			var pt = parsePiece(ch)
			if pt.Type == Empty {
				return Position{}, fmt.Errorf("%w: bad piece %q", ErrInvalidFEN, ch)
			}
			if file >= 8 {
				return Position{}, fmt.Errorf("%w: rank %v overflow", ErrInvalidFEN, 8-r)
			}
			board[FlipSquare(8*r+file)] = pt
			file++
		}
		if file != 8 {
			return Position{}, fmt.Errorf("%w: rank %v has %v squares", ErrInvalidFEN, 8-r, file)
		}
	}

	if tokens[1] != "w" && tokens[1] != "b" {
		return Position{}, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, tokens[1])
	}

	var p = Position{
		WhiteMove:  tokens[1] == "w",
		EpSquare:   ParseSquare(tokens[3]),
		MoveNumber: 1,
	}
	for sq, piece := range board {
		if piece.Type != Empty {
			xorPiece(&p, piece.Type, piece.Side, sq)
		}
	}
	if PopCount(p.Kings&p.White) != 1 || PopCount(p.Kings&p.Black) != 1 {
		return Position{}, fmt.Errorf("%w: kings %v", ErrInvalidFEN, fen)
	}

	if len(tokens) > 4 {
		var rule50, err = strconv.Atoi(tokens[4])
		if err != nil || rule50 < 0 {
			return Position{}, fmt.Errorf("%w: halfmove clock %q", ErrInvalidFEN, tokens[4])
		}
		p.Rule50 = rule50
	}
	if len(tokens) > 5 {
		if n, err := strconv.Atoi(tokens[5]); err == nil && n > 0 {
			p.MoveNumber = n
		}
	}

	if err := p.parseCastling(tokens[2]); err != nil {
		return Position{}, err
	}

	if p.EpSquare != SquareNone {
		var us = p.WhiteMove
		var occ = p.AllPieces()
		var push = PawnPush(us)
		if Rank(p.EpSquare) != RelativeRank(us, Rank6) ||
			PawnAttacks(p.EpSquare, !us)&p.Pawns&p.PiecesByColor(us) == 0 ||
			SquareMask[p.EpSquare-push]&p.Pawns&p.PiecesByColor(!us) == 0 ||
			(SquareMask[p.EpSquare]|SquareMask[p.EpSquare+push])&occ != 0 {
			p.EpSquare = SquareNone
		}
	}

	if !p.isLegal() {
		return Position{}, fmt.Errorf("%w: side not to move is in check %v", ErrInvalidFEN, fen)
	}
	p.Checkers = p.computeCheckers()
	p.updateCheckInfo()
	return p, nil
}

func (p *Position) parseCastling(s string) error {
	var ci = &castlingInfo{}
	for i := range ci.rightsMask {
		ci.rightsMask[i] = AnyCastling
	}
	p.castling = ci
	if s == "-" {
		return nil
	}
	for _, ch := range s {
		var side = unicode.IsUpper(ch)
		var own = p.PiecesByColor(side)
		var ksq = FirstOne(p.Kings & own)
		var backRank = RelativeRank(side, Rank1)
		if Rank(ksq) != backRank {
			return fmt.Errorf("%w: castling king %q", ErrInvalidFEN, ch)
		}
		var rooks = p.Rooks & own & (Rank1Mask << (8 * backRank))
		var rsq = SquareNone
		switch c := unicode.ToUpper(ch); {
		case c == 'K':
			for sq := MakeSquare(FileH, backRank); sq > ksq; sq-- {
				if SquareMask[sq]&rooks != 0 {
					rsq = sq
					break
				}
			}
		case c == 'Q':
			for sq := MakeSquare(FileA, backRank); sq < ksq; sq++ {
				if SquareMask[sq]&rooks != 0 {
					rsq = sq
					break
				}
			}
		case c >= 'A' && c <= 'H':
			var sq = MakeSquare(int(c-'A'), backRank)
			if SquareMask[sq]&rooks != 0 {
				rsq = sq
			}
			p.Chess960 = true
		default:
			return fmt.Errorf("%w: castling %q", ErrInvalidFEN, ch)
		}
		if rsq == SquareNone {
			return fmt.Errorf("%w: castling rook %q", ErrInvalidFEN, ch)
		}
		if File(ksq) != FileE || (File(rsq) != FileA && File(rsq) != FileH) {
			p.Chess960 = true
		}
		p.setCastleRight(side, ksq, rsq)
	}
	return nil
}

func (p *Position) setCastleRight(side bool, kfrom, rfrom int) {
	var cr = let(rfrom > kfrom, KingSide(side), QueenSide(side))
	var idx = castlingIndex(cr)
	var ci = p.castling

	p.CastleRights |= cr
	ci.kingSquare[idx] = kfrom
	ci.rookSquare[idx] = rfrom
	ci.rightsMask[kfrom] &^= cr
	ci.rightsMask[rfrom] &^= cr

	var kto = RelativeSquare(side, let(cr&(WhiteKingSide|BlackKingSide) != 0, SquareG1, SquareC1))
	var rto = RelativeSquare(side, let(cr&(WhiteKingSide|BlackKingSide) != 0, SquareF1, SquareD1))
	ci.path[idx] = (betweenMask[rfrom][rto] | SquareMask[rto] |
		betweenMask[kfrom][kto] | SquareMask[kto]) &^ (SquareMask[kfrom] | SquareMask[rfrom])
}

func (p *Position) String() string {
	var sb strings.Builder

	var emptyCount = 0

	for i := 0; i < 64; i++ {
		var sq = FlipSquare(i)
		var piece = p.WhatPiece(sq)
		if piece == Empty {
			emptyCount++
		} else {
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}

			var pieceSide = (p.White & SquareMask[sq]) != 0
			sb.WriteString(pieceToChar(piece, pieceSide))
		}

		if File(sq) == FileH {
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			if Rank(sq) != Rank1 {
				sb.WriteString("/")
			}
		}
	}
	sb.WriteString(" ")

	if p.WhiteMove {
		sb.WriteString("w")
	} else {
		sb.WriteString("b")
	}
	sb.WriteString(" ")

	if p.CastleRights == 0 {
		sb.WriteString("-")
	} else {
		for _, cr := range [...]int{WhiteKingSide, WhiteQueenSide, BlackKingSide, BlackQueenSide} {
			if p.CastleRights&cr == 0 {
				continue
			}
			var ch byte
			if p.Chess960 {
				ch = 'A' + byte(File(p.CastlingRookSquare(cr)))
			} else {
				ch = "KQ"[let(cr&(WhiteKingSide|BlackKingSide) != 0, 0, 1)]
			}
			if cr&BlackCastling != 0 {
				ch += 'a' - 'A'
			}
			sb.WriteByte(ch)
		}
	}
	sb.WriteString(" ")

	if p.EpSquare == SquareNone {
		sb.WriteString("-")
	} else {
		sb.WriteString(SquareName(p.EpSquare))
	}
	sb.WriteString(" ")

	sb.WriteString(strconv.Itoa(p.Rule50))
	sb.WriteString(" ")

	sb.WriteString(strconv.Itoa(p.MoveNumber))

	return sb.String()
}

func (p *Position) GetPieceTypeAndSide(sq int) (pieceType int, side bool) {
	var bb = SquareMask[sq]
	if (p.White & bb) != 0 {
		side = true
	} else if (p.Black & bb) != 0 {
		side = false
	} else {
		pieceType = Empty
		return
	}
	pieceType = p.WhatPiece(sq)
	return
}

func (p *Position) WhatPiece(sq int) int {
	var bb = SquareMask[sq]
	if ((p.White | p.Black) & bb) == 0 {
		return Empty
	}
	if (p.Pawns & bb) != 0 {
		return Pawn
	}
	if (p.Knights & bb) != 0 {
		return Knight
	}
	if (p.Bishops & bb) != 0 {
		return Bishop
	}
	if (p.Rooks & bb) != 0 {
		return Rook
	}
	if (p.Queens & bb) != 0 {
		return Queen
	}
	if (p.Kings & bb) != 0 {
		return King
	}
	panic(fmt.Errorf("Wrong piece on %s", SquareName(sq)))
}

func (p *Position) PiecesByColor(side bool) uint64 {
	if side {
		return p.White
	}
	return p.Black
}

func (p *Position) PiecesByType(pieceType int) uint64 {
	switch pieceType {
	case Pawn:
		return p.Pawns
	case Knight:
		return p.Knights
	case Bishop:
		return p.Bishops
	case Rook:
		return p.Rooks
	case Queen:
		return p.Queens
	case King:
		return p.Kings
	}
	return 0
}

func (p *Position) AllPieces() uint64 {
	return p.White | p.Black
}

func (p *Position) KingSquare(side bool) int {
	return FirstOne(p.Kings & p.PiecesByColor(side))
}

// Count returns the number of pieces of the given type and side.
func (p *Position) Count(pieceType int, side bool) int {
	return PopCount(p.PiecesByType(pieceType) & p.PiecesByColor(side))
}

// CountAll returns the number of pieces of the given type of both sides.
func (p *Position) CountAll(pieceType int) int {
	return PopCount(p.PiecesByType(pieceType))
}

func (p *Position) NonPawnMaterial(side bool) int {
	var own = p.PiecesByColor(side)
	return KnightValue*PopCount(p.Knights&own) +
		BishopValue*PopCount(p.Bishops&own) +
		RookValue*PopCount(p.Rooks&own) +
		QueenValue*PopCount(p.Queens&own)
}

func (p *Position) NonPawnMaterialTotal() int {
	return p.NonPawnMaterial(true) + p.NonPawnMaterial(false)
}

func (p *Position) IsCheck() bool {
	return p.Checkers != 0
}

// BlockersForKing returns the pieces of both colors that are the only
// obstacle between side's king and an enemy slider.
func (p *Position) BlockersForKing(side bool) uint64 {
	return p.blockersForKing[sideIndex(side)]
}

// Pinners returns side's sliders that pin an enemy piece to the enemy king.
func (p *Position) Pinners(side bool) uint64 {
	return p.pinners[sideIndex(side)]
}

// Pinned returns the pieces of the side to move pinned to their own king.
func (p *Position) Pinned() uint64 {
	return p.BlockersForKing(p.WhiteMove) & p.PiecesByColor(p.WhiteMove)
}

// CanCastle reports whether any of the given castling rights are still held.
func (p *Position) CanCastle(rights int) bool {
	return p.CastleRights&rights != 0
}

// CastlingImpeded reports whether a piece stands on the squares the king or
// the rook cross for the single right cr.
func (p *Position) CastlingImpeded(cr int) bool {
	return p.castling.path[castlingIndex(cr)]&(p.White|p.Black) != 0
}

func (p *Position) CastlingRookSquare(cr int) int {
	return p.castling.rookSquare[castlingIndex(cr)]
}

// WithoutPiece returns a copy of the position with the piece on sq removed.
// Check information of the copy is not refreshed.
func (p *Position) WithoutPiece(sq int) Position {
	var result = *p
	var pieceType, side = p.GetPieceTypeAndSide(sq)
	if pieceType != Empty {
		xorPiece(&result, pieceType, side, sq)
	}
	return result
}

func (src *Position) MakeMove(move Move, result *Position) bool {
	var us = src.WhiteMove
	var from = move.From()
	var to = move.To()
	var movingPiece = src.WhatPiece(from)
	var capturedPiece = Empty
	var flag = move.Flag()
	if flag == FlagEnPassant {
		capturedPiece = Pawn
	} else if flag != FlagCastling {
		capturedPiece = src.WhatPiece(to)
	}

	*result = *src

	result.WhiteMove = !us
	if !us {
		result.MoveNumber++
	}
	result.CastleRights = src.CastleRights &
		src.castling.rightsMask[from] & src.castling.rightsMask[to]

	if movingPiece == Pawn || capturedPiece != Empty {
		result.Rule50 = 0
	} else {
		result.Rule50 = src.Rule50 + 1
	}

	result.EpSquare = SquareNone

	switch flag {
	case FlagCastling:
		var kingSide = to > from
		var kto = RelativeSquare(us, let(kingSide, SquareG1, SquareC1))
		var rto = RelativeSquare(us, let(kingSide, SquareF1, SquareD1))
		xorPiece(result, King, us, from)
		xorPiece(result, Rook, us, to)
		xorPiece(result, King, us, kto)
		xorPiece(result, Rook, us, rto)
	case FlagEnPassant:
		xorPiece(result, Pawn, !us, to-PawnPush(us))
		movePiece(result, Pawn, us, from, to)
	default:
		if capturedPiece != Empty {
			xorPiece(result, capturedPiece, !us, to)
		}
		movePiece(result, movingPiece, us, from, to)
		if flag == FlagPromotion {
			xorPiece(result, Pawn, us, to)
			xorPiece(result, move.Promotion(), us, to)
		}
	}

	if movingPiece == Pawn && AbsDelta(from, to) == 16 {
		var ep = (from + to) / 2
		if PawnAttacks(ep, us)&result.Pawns&result.PiecesByColor(!us) != 0 {
			result.EpSquare = ep
		}
	}

	if !result.isLegal() {
		return false
	}
	result.Checkers = result.computeCheckers()
	result.updateCheckInfo()
	return true
}

// Legal tests whether a pseudo-legal move leaves the mover's king safe.
func (p *Position) Legal(move Move) bool {
	var us = p.WhiteMove
	var from = move.From()
	var to = move.To()
	var them = p.PiecesByColor(!us)
	var ksq = p.KingSquare(us)

	switch move.Flag() {
	case FlagEnPassant:
		var capsq = to - PawnPush(us)
		var occ = (p.White|p.Black)&^(SquareMask[from]|SquareMask[capsq]) | SquareMask[to]
		return p.attackersToOcc(ksq, occ)&them&^SquareMask[capsq] == 0
	case FlagCastling:
		if p.Checkers != 0 {
			return false
		}
		var kingSide = to > from
		var kto = RelativeSquare(us, let(kingSide, SquareG1, SquareC1))
		var rto = RelativeSquare(us, let(kingSide, SquareF1, SquareD1))
		var step = let(kto > from, West, East)
		for s := kto; s != from; s += step {
			if p.attackersTo(s)&them != 0 {
				return false
			}
		}
		var occ = (p.White|p.Black)&^(SquareMask[from]|SquareMask[to]) | SquareMask[kto] | SquareMask[rto]
		if p.attackersToOcc(kto, occ)&them != 0 {
			return false
		}
		return !p.Chess960 || p.BlockersForKing(us)&SquareMask[to] == 0
	}

	if from == ksq {
		return p.attackersToOcc(to, (p.White|p.Black)^SquareMask[from])&them == 0
	}

	return p.BlockersForKing(us)&SquareMask[from] == 0 || Aligned(from, to, ksq)
}

func (p *Position) MakeMoveLAN(lan string) (Position, bool) {
	for _, mv := range GenerateLegalMoves(p) {
		if strings.EqualFold(mv.Uci(p.Chess960), lan) ||
			strings.EqualFold(mv.Uci(!p.Chess960), lan) {
			var newPosition = Position{}
			if p.MakeMove(mv, &newPosition) {
				return newPosition, true
			}
			return Position{}, false
		}
	}
	return Position{}, false
}

func xorPiece(p *Position, piece int, side bool, square int) {
	var b = SquareMask[square]
	if side {
		p.White ^= b
	} else {
		p.Black ^= b
	}
	switch piece {
	case Pawn:
		p.Pawns ^= b
	case Knight:
		p.Knights ^= b
	case Bishop:
		p.Bishops ^= b
	case Rook:
		p.Rooks ^= b
	case Queen:
		p.Queens ^= b
	case King:
		p.Kings ^= b
	}
}

func movePiece(p *Position, piece int, side bool, from int, to int) {
	var b = SquareMask[from] ^ SquareMask[to]
	if side {
		p.White ^= b
	} else {
		p.Black ^= b
	}
	switch piece {
	case Pawn:
		p.Pawns ^= b
	case Knight:
		p.Knights ^= b
	case Bishop:
		p.Bishops ^= b
	case Rook:
		p.Rooks ^= b
	case Queen:
		p.Queens ^= b
	case King:
		p.Kings ^= b
	}
}

func (p *Position) isAttackedBySide(sq int, side bool) bool {
	return p.attackersTo(sq)&p.PiecesByColor(side) != 0
}

func (p *Position) attackersTo(sq int) uint64 {
	return p.attackersToOcc(sq, p.White|p.Black)
}

func (p *Position) attackersToOcc(sq int, occ uint64) uint64 {
	return (blackPawnAttacks[sq] & p.Pawns & p.White) |
		(whitePawnAttacks[sq] & p.Pawns & p.Black) |
		(KnightAttacks[sq] & p.Knights) |
		(BishopAttacks(sq, occ) & (p.Bishops | p.Queens)) |
		(RookAttacks(sq, occ) & (p.Rooks | p.Queens)) |
		(KingAttacks[sq] & p.Kings)
}

func (p *Position) computeCheckers() uint64 {
	var us = p.WhiteMove
	return p.attackersTo(p.KingSquare(us)) & p.PiecesByColor(!us)
}

func (p *Position) updateCheckInfo() {
	for _, side := range [...]bool{true, false} {
		var i = sideIndex(side)
		p.blockersForKing[i], p.pinners[sideIndex(!side)] =
			p.sliderBlockers(p.PiecesByColor(!side), p.KingSquare(side))
	}
}

// sliderBlockers returns the pieces that alone block sliders from attacking
// sq, and the sliders pinning a piece of sq's owner.
func (p *Position) sliderBlockers(sliders uint64, sq int) (blockers, pinners uint64) {
	var occ = p.White | p.Black
	var snipers = ((RookAttacks(sq, 0) & (p.Rooks | p.Queens)) |
		(BishopAttacks(sq, 0) & (p.Bishops | p.Queens))) & sliders
	var occupancy = occ ^ snipers
	var owner = p.PiecesByColor(p.White&SquareMask[sq] != 0)

	for ; snipers != 0; snipers &= snipers - 1 {
		var sniperSq = FirstOne(snipers)
		var b = betweenMask[sq][sniperSq] & occupancy
		if b != 0 && !MoreThanOne(b) {
			blockers |= b
			if b&owner != 0 {
				pinners |= SquareMask[sniperSq]
			}
		}
	}
	return
}

func (p *Position) isLegal() bool {
	var kingSq = p.KingSquare(!p.WhiteMove)
	return !p.isAttackedBySide(kingSq, p.WhiteMove)
}

func MirrorPosition(p *Position) Position {
	var fen = p.String()
	var fields = strings.Fields(fen)
	var ranks = strings.Split(fields[0], "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	fields[0] = swapCase(strings.Join(ranks, "/"))
	if p.WhiteMove {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	if fields[2] != "-" {
		fields[2] = swapCase(fields[2])
	}
	if p.EpSquare != SquareNone {
		fields[3] = SquareName(FlipSquare(p.EpSquare))
	}
	var result, err = NewPositionFromFEN(strings.Join(fields, " "))
	if err != nil {
		panic(err)
	}
	return result
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsUpper(r) {
			return unicode.ToLower(r)
		}
		return unicode.ToUpper(r)
	}, s)
}
