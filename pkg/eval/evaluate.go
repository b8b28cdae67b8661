package eval

import (
	"fmt"

	. "github.com/ChizhovVadim/CounterCore/pkg/common"
	"github.com/ChizhovVadim/CounterCore/pkg/nnue"
)

// SimpleEval is the material balance from the side to move's point of view.
func SimpleEval(p *Position) int {
	var us = p.WhiteMove
	return PawnValue*(p.Count(Pawn, us)-p.Count(Pawn, !us)) +
		p.NonPawnMaterial(us) - p.NonPawnMaterial(!us)
}

// UseSmallNet selects the small network for clearly unbalanced positions.
// The threshold is higher when the previous evaluation used the big network.
func UseSmallNet(p *Position, lastBig bool) bool {
	var threshold = 900
	if lastBig {
		threshold += 80
	}
	return Abs(SimpleEval(p)) > threshold
}

// Evaluate returns the static evaluation of a position that is not in check
// from the side to move's point of view.
func Evaluate(networks *nnue.Networks, p *Position, stack *nnue.AccumulatorStack,
	caches *nnue.Caches, optimism int) int {

	if p.Checkers != 0 {
		panic(fmt.Errorf("eval: position in check %v", p.String()))
	}

	var psqt, positional, _ = evaluateNetwork(networks, p, stack, caches)
	var nnueValue = blend(psqt, positional)

	var complexity = Abs(psqt - positional)
	optimism += optimism * complexity / 468
	nnueValue -= nnueValue * complexity / 18000

	var material = 535*p.CountAll(Pawn) + p.NonPawnMaterialTotal()
	var v = (nnueValue*(77777+material) + optimism*(7777+material)) / 77777

	v -= v * p.Rule50 / 212

	return Clamp(v, MinEval, MaxEval)
}

// evaluateNetwork runs the selected network. An uncertain small network
// result is replaced by the big network. smallNet reports the network whose
// output is returned.
func evaluateNetwork(networks *nnue.Networks, p *Position, stack *nnue.AccumulatorStack,
	caches *nnue.Caches) (psqt, positional int, smallNet bool) {

	smallNet = UseSmallNet(p, stack.LastBig())
	if smallNet {
		psqt, positional = networks.Small.Evaluate(p, stack, caches)
		if Abs(blend(psqt, positional)) >= 236 {
			return psqt, positional, true
		}
	}
	psqt, positional = networks.Big.Evaluate(p, stack, caches)
	return psqt, positional, false
}

func blend(psqt, positional int) int {
	return (125*psqt + 131*positional) / 128
}

// EvaluationService keeps the accumulator stack and caches of one search
// worker.
type EvaluationService struct {
	Networks *nnue.Networks
	Optimism [2]int
	stack    *nnue.AccumulatorStack
	caches   *nnue.Caches
}

func NewEvaluationService(networks *nnue.Networks) *EvaluationService {
	return &EvaluationService{
		Networks: networks,
		stack:    nnue.NewAccumulatorStack(),
		caches:   nnue.NewCaches(),
	}
}

// Init starts a new search from p. Accumulators are rebuilt lazily from the
// caches, so only the stack is reset.
func (e *EvaluationService) Init(p *Position) {
	e.stack.Reset()
}

// MakeMove pushes an empty accumulator. The cache refresh applies the board
// difference on the next Evaluate, so the move itself is not needed.
func (e *EvaluationService) MakeMove(p *Position, m Move) {
	e.stack.Push()
}

func (e *EvaluationService) UnmakeMove() {
	e.stack.Pop()
}

func (e *EvaluationService) Evaluate(p *Position) int {
	var optimism = e.Optimism[0]
	if !p.WhiteMove {
		optimism = e.Optimism[1]
	}
	return Evaluate(e.Networks, p, e.stack, e.caches, optimism)
}
