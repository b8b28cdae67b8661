package nnue

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	. "github.com/ChizhovVadim/CounterCore/pkg/common"
)

var ErrInvalidWeights = errors.New("invalid nnue weights")

const (
	weightsMagic   uint32 = 0x4e4e4343 // "CCNN"
	weightsVersion uint32 = 1
	maxHiddenSize         = 4096
)

type weightsHeader struct {
	Magic      uint32
	Version    uint32
	HiddenSize uint32
}

func LoadWeights(r io.Reader) (*Weights, error) {
	var header weightsHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidWeights, err)
	}
	if header.Magic != weightsMagic {
		return nil, fmt.Errorf("%w: bad magic %x", ErrInvalidWeights, header.Magic)
	}
	if header.Version != weightsVersion {
		return nil, fmt.Errorf("%w: unsupported version %v", ErrInvalidWeights, header.Version)
	}
	if header.HiddenSize == 0 || header.HiddenSize > maxHiddenSize {
		return nil, fmt.Errorf("%w: hidden size %v", ErrInvalidWeights, header.HiddenSize)
	}

	var w = NewWeights(int(header.HiddenSize))
	for _, data := range w.tensors() {
		if err := binary.Read(r, binary.LittleEndian, data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWeights, err)
		}
	}
	return w, nil
}

func (w *Weights) Save(wr io.Writer) error {
	var header = weightsHeader{
		Magic:      weightsMagic,
		Version:    weightsVersion,
		HiddenSize: uint32(w.HiddenSize),
	}
	if err := binary.Write(wr, binary.LittleEndian, &header); err != nil {
		return err
	}
	for _, data := range w.tensors() {
		if err := binary.Write(wr, binary.LittleEndian, data); err != nil {
			return err
		}
	}
	return nil
}

func (w *Weights) tensors() []interface{} {
	return []interface{}{
		w.HiddenWeights,
		w.HiddenBiases,
		w.PsqtWeights,
		w.OutputWeights,
		&w.OutputBias,
	}
}

func LoadFileWeights(path string) (*Weights, error) {
	var f, err = os.Open(mapPath(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	w, err := LoadWeights(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return w, nil
}

func mapPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		curUser, err := user.Current()
		if err != nil {
			return path
		}
		return filepath.Join(curUser.HomeDir, strings.TrimPrefix(path, "~/"))
	}
	if strings.HasPrefix(path, "./") {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		var exePath, err = os.Executable()
		if err != nil {
			return path
		}
		return filepath.Join(filepath.Dir(exePath), strings.TrimPrefix(path, "./"))
	}
	return path
}

// NewRandomWeights returns deterministic weights for the given seed. The
// psqt weights are set to material values so that the psqt output is the
// material balance.
func NewRandomWeights(hiddenSize int, seed int64) *Weights {
	var rnd = rand.New(rand.NewSource(seed))
	var w = NewWeights(hiddenSize)
	for i := range w.HiddenWeights {
		w.HiddenWeights[i] = float32(rnd.NormFloat64() * 0.25)
	}
	for i := range w.HiddenBiases {
		w.HiddenBiases[i] = float32(rnd.NormFloat64() * 0.1)
	}
	for i := range w.OutputWeights {
		w.OutputWeights[i] = float32(rnd.NormFloat64() * 4)
	}
	for piece12 := 0; piece12 < 12; piece12++ {
		var value = float32(PieceValue[piece12%6+Pawn])
		if piece12 >= 6 {
			value = -value
		}
		for sq := 0; sq < 64; sq++ {
			w.PsqtWeights[piece12<<6|sq] = value
		}
	}
	return w
}
