package nnue

import (
	. "github.com/ChizhovVadim/CounterCore/pkg/common"
)

type Caches struct {
	Big   *Cache
	Small *Cache
}

func NewCaches() *Caches {
	return &Caches{Big: NewCache(), Small: NewCache()}
}

func (c *Caches) get(kind Kind) *Cache {
	if kind == Small {
		return c.Small
	}
	return c.Big
}

// Cache remembers, per perspective, the board an accumulator was last built
// for. A refresh applies only the pieces that differ from that board.
type Cache struct {
	entries [2]cacheEntry
}

type cacheEntry struct {
	weights *Weights
	pieces  [2][King + 1]uint64
	values  []float32
	psqt    float32
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Clear() {
	for i := range c.entries {
		c.entries[i].weights = nil
	}
}

func (c *Cache) refresh(w *Weights, p *Position, perspective bool, state *AccumulatorState) {
	var pi = perspectiveIndex(perspective)
	var e = &c.entries[pi]
	if e.weights != w {
		e.weights = w
		e.pieces = [2][King + 1]uint64{}
		e.values = append(e.values[:0], w.HiddenBiases...)
		e.psqt = 0
	}

	for _, side := range [...]bool{true, false} {
		var si = perspectiveIndex(side)
		for pieceType := Pawn; pieceType <= King; pieceType++ {
			var current = p.PiecesByType(pieceType) & p.PiecesByColor(side)
			var cached = e.pieces[si][pieceType]
			for x := cached &^ current; x != 0; x &= x - 1 {
				e.apply(w, featureIndex(perspective, side, pieceType, FirstOne(x)), -1)
			}
			for x := current &^ cached; x != 0; x &= x - 1 {
				e.apply(w, featureIndex(perspective, side, pieceType, FirstOne(x)), 1)
			}
			e.pieces[si][pieceType] = current
		}
	}

	state.Values[pi] = append(state.Values[pi][:0], e.values...)
	state.Psqt[pi] = e.psqt
	state.Computed[pi] = true
}

func (e *cacheEntry) apply(w *Weights, index int, coeff float32) {
	var weights = w.HiddenWeights[index*w.HiddenSize : (index+1)*w.HiddenSize]
	for j := range e.values {
		e.values[j] += coeff * weights[j]
	}
	e.psqt += coeff * w.PsqtWeights[index]
}
