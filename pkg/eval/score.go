package eval

import (
	"math"

	. "github.com/ChizhovVadim/CounterCore/pkg/common"
)

const (
	MaxPly            = 246
	ValueZero         = 0
	ValueDraw         = 0
	ValueMate         = 32000
	ValueInfinite     = 32001
	ValueMateInMaxPly = ValueMate - MaxPly
	ValueTB           = ValueMateInMaxPly - 1

	ValueTBWinInMaxPly  = ValueTB - MaxPly
	ValueTBLossInMaxPly = -ValueTBWinInMaxPly
)

// Evaluation results never reach the tablebase ranges.
const (
	MinEval = ValueTBLossInMaxPly + 1
	MaxEval = ValueTBWinInMaxPly - 1
)

var winRateCoeffs = [4]float64{-37.45051876, 121.19101539, -132.78783573, 420.75517500}

// ToCentipawns normalises an internal value so that 100 centipawns means a
// 50% win rate at the position's material.
func ToCentipawns(p *Position, v int) int {
	var material = p.CountAll(Pawn) + 3*p.CountAll(Knight) + 3*p.CountAll(Bishop) +
		5*p.CountAll(Rook) + 9*p.CountAll(Queen)
	var m = float64(Clamp(material, 17, 78)) / 58
	var a = ((winRateCoeffs[0]*m+winRateCoeffs[1])*m+winRateCoeffs[2])*m + winRateCoeffs[3]
	return int(math.Round(100 * float64(v) / a))
}
