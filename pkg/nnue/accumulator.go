package nnue

// MaxHeight bounds the depth of an AccumulatorStack.
const MaxHeight = 256

type AccumulatorState struct {
	Values   [2][]float32
	Psqt     [2]float32
	Computed [2]bool
}

type Accumulator struct {
	Big   AccumulatorState
	Small AccumulatorState
}

func (a *Accumulator) state(kind Kind) *AccumulatorState {
	if kind == Small {
		return &a.Small
	}
	return &a.Big
}

func (a *Accumulator) clear() {
	a.Big.Computed = [2]bool{}
	a.Small.Computed = [2]bool{}
}

// AccumulatorStack holds one accumulator per ply. Each search worker owns
// its stack.
type AccumulatorStack struct {
	Accumulators [MaxHeight]Accumulator
	Size         int
}

func NewAccumulatorStack() *AccumulatorStack {
	var s = &AccumulatorStack{}
	s.Reset()
	return s
}

// Reset leaves a single root entry that is not computed.
func (s *AccumulatorStack) Reset() {
	s.Size = 1
	s.Accumulators[0].clear()
}

// Push adds an entry for the child position.
func (s *AccumulatorStack) Push() {
	s.Accumulators[s.Size].clear()
	s.Size++
}

func (s *AccumulatorStack) Pop() {
	s.Size--
}

func (s *AccumulatorStack) Current() *Accumulator {
	return &s.Accumulators[s.Size-1]
}

// LastBig reports whether the previous entry was computed with the big
// network for both perspectives.
func (s *AccumulatorStack) LastBig() bool {
	if s.Size <= 1 {
		return false
	}
	var prev = &s.Accumulators[s.Size-2].Big
	return prev.Computed[0] && prev.Computed[1]
}
