package nnue

import (
	"math"

	. "github.com/ChizhovVadim/CounterCore/pkg/common"
)

const InputSize = 64 * 12

type Kind int

const (
	Big Kind = iota
	Small
)

func (k Kind) String() string {
	if k == Small {
		return "small"
	}
	return "big"
}

// Weights of a two perspective network. Hidden weights are stored input
// major: HiddenWeights[i*HiddenSize+j].
type Weights struct {
	HiddenSize    int
	HiddenWeights []float32
	HiddenBiases  []float32
	PsqtWeights   []float32
	OutputWeights []float32
	OutputBias    float32
}

func NewWeights(hiddenSize int) *Weights {
	return &Weights{
		HiddenSize:    hiddenSize,
		HiddenWeights: make([]float32, InputSize*hiddenSize),
		HiddenBiases:  make([]float32, hiddenSize),
		PsqtWeights:   make([]float32, InputSize),
		OutputWeights: make([]float32, 2*hiddenSize),
	}
}

// Evaluator returns the material and positional components of the position
// from the side to move's point of view.
type Evaluator interface {
	Evaluate(p *Position, stack *AccumulatorStack, caches *Caches) (psqt, positional int)
}

type Networks struct {
	Big   Evaluator
	Small Evaluator
}

type Network struct {
	Name string
	Kind Kind
	*Weights
}

func NewNetwork(name string, kind Kind, weights *Weights) *Network {
	return &Network{Name: name, Kind: kind, Weights: weights}
}

func (n *Network) Evaluate(p *Position, stack *AccumulatorStack, caches *Caches) (psqt, positional int) {
	if stack.Size == 0 {
		stack.Reset()
	}
	var state = stack.Current().state(n.Kind)
	var cache = caches.get(n.Kind)
	for _, perspective := range [...]bool{true, false} {
		var i = perspectiveIndex(perspective)
		if !state.Computed[i] {
			cache.refresh(n.Weights, p, perspective, state)
		}
	}

	var us = perspectiveIndex(p.WhiteMove)
	var them = us ^ 1
	var h = n.HiddenSize
	var output = n.OutputBias
	for j, x := range state.Values[us][:h] {
		if x > 0 {
			output += x * n.OutputWeights[j]
		}
	}
	for j, x := range state.Values[them][:h] {
		if x > 0 {
			output += x * n.OutputWeights[h+j]
		}
	}
	psqt = round((state.Psqt[us] - state.Psqt[them]) / 2)
	positional = round(output)
	return
}

func round(x float32) int {
	return int(math.Round(float64(x)))
}

func perspectiveIndex(perspective bool) int {
	if perspective {
		return 0
	}
	return 1
}

// featureIndex maps a piece to its input from the given perspective. Each
// perspective sees its own pieces first and its own back rank as rank 1.
func featureIndex(perspective, side bool, pieceType, sq int) int {
	var piece12 = pieceType - Pawn
	if side != perspective {
		piece12 += 6
	}
	if !perspective {
		sq = FlipSquare(sq)
	}
	return piece12<<6 | sq
}
