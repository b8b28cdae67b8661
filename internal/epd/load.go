package epd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ChizhovVadim/CounterCore/pkg/common"
)

type DepthNodes struct {
	Depth int
	Nodes int
}

// PerftItem is one line of a perft suite: "<fen> ;D1 20 ;D2 400".
type PerftItem struct {
	Content  string
	Position common.Position
	Depths   []DepthNodes
}

func (item *PerftItem) MaxDepth() int {
	var result = 0
	for _, d := range item.Depths {
		result = common.Max(result, d.Depth)
	}
	return result
}

func LoadFile(filePath string) ([]PerftItem, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Load(file)
}

// Load reads a perft suite. Empty lines and lines starting with '#' are
// skipped.
func Load(r io.Reader) ([]PerftItem, error) {
	var result []PerftItem
	var scanner = bufio.NewScanner(r)
	var lineNumber = 0
	for scanner.Scan() {
		lineNumber++
		var line = strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var item, err = ParsePerftItem(line)
		if err != nil {
			return nil, fmt.Errorf("line %v: %w", lineNumber, err)
		}
		result = append(result, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func ParsePerftItem(s string) (PerftItem, error) {
	var fields = strings.Split(s, ";")
	var p, err = common.NewPositionFromFEN(strings.TrimSpace(fields[0]))
	if err != nil {
		return PerftItem{}, err
	}
	var depths []DepthNodes
	for _, field := range fields[1:] {
		var tokens = strings.Fields(field)
		if len(tokens) != 2 || !strings.HasPrefix(tokens[0], "D") {
			return PerftItem{}, fmt.Errorf("bad perft entry %q", field)
		}
		depth, err := strconv.Atoi(tokens[0][1:])
		if err != nil || depth <= 0 {
			return PerftItem{}, fmt.Errorf("bad perft depth %q", field)
		}
		nodes, err := strconv.Atoi(tokens[1])
		if err != nil {
			return PerftItem{}, fmt.Errorf("bad perft nodes %q: %w", field, err)
		}
		depths = append(depths, DepthNodes{Depth: depth, Nodes: nodes})
	}
	if len(depths) == 0 {
		return PerftItem{}, fmt.Errorf("no perft entries %v", s)
	}
	return PerftItem{
		Content:  s,
		Position: p,
		Depths:   depths,
	}, nil
}
