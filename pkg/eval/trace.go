package eval

import (
	"fmt"
	"strings"

	. "github.com/ChizhovVadim/CounterCore/pkg/common"
	"github.com/ChizhovVadim/CounterCore/pkg/nnue"
)

// Trace renders the evaluation of the position from White's point of view.
func Trace(p *Position, networks *nnue.Networks) string {
	if p.IsCheck() {
		return "Final evaluation: none (in check)"
	}

	var sb strings.Builder
	sb.WriteString("\n")
	writePieceValues(&sb, p, networks.Big)
	sb.WriteString("\n")
	writeNetworkContributions(&sb, p, networks)
	sb.WriteString("\n")

	var stack = nnue.NewAccumulatorStack()
	var caches = nnue.NewCaches()

	var psqt, positional = networks.Big.Evaluate(p, stack, caches)
	var v = whiteSide(p, psqt+positional)
	fmt.Fprintf(&sb, "NNUE evaluation        %+.2f (white side)\n", 0.01*float64(ToCentipawns(p, v)))

	v = whiteSide(p, Evaluate(networks, p, stack, caches, ValueZero))
	fmt.Fprintf(&sb, "Final evaluation       %+.2f (white side)", 0.01*float64(ToCentipawns(p, v)))
	sb.WriteString(" [with scaled NNUE, ...]\n")

	return sb.String()
}

func whiteSide(p *Position, v int) int {
	if p.WhiteMove {
		return v
	}
	return -v
}

func rawEval(n nnue.Evaluator, p *Position) int {
	var psqt, positional = n.Evaluate(p, nnue.NewAccumulatorStack(), nnue.NewCaches())
	return whiteSide(p, psqt+positional)
}

// writePieceValues prints, for every piece except the kings, how much the
// evaluation drops when the piece is removed.
func writePieceValues(sb *strings.Builder, p *Position, n nnue.Evaluator) {
	const separator = "+-------+-------+-------+-------+-------+-------+-------+-------+\n"

	var base = rawEval(n, p)

	sb.WriteString(" NNUE derived piece values:\n")
	sb.WriteString(separator)
	for rank := Rank8; rank >= Rank1; rank-- {
		var pieces, values strings.Builder
		for file := FileA; file <= FileH; file++ {
			var sq = MakeSquare(file, rank)
			var pieceType, side = p.GetPieceTypeAndSide(sq)
			if pieceType == Empty {
				pieces.WriteString("|       ")
				values.WriteString("|       ")
				continue
			}
			var symbol = pieceSymbol(pieceType, side)
			fmt.Fprintf(&pieces, "|   %s   ", symbol)
			if pieceType == King {
				values.WriteString("|       ")
				continue
			}
			var child = p.WithoutPiece(sq)
			var value = ToCentipawns(p, base-rawEval(n, &child))
			fmt.Fprintf(&values, "| %s ", formatPawns(value))
		}
		sb.WriteString(pieces.String())
		sb.WriteString("|\n")
		sb.WriteString(values.String())
		sb.WriteString("|\n")
		sb.WriteString(separator)
	}
}

func writeNetworkContributions(sb *strings.Builder, p *Position, networks *nnue.Networks) {
	const separator = "+------------+------------+------------+------------+\n"

	var sideName = "White"
	if !p.WhiteMove {
		sideName = "Black"
	}
	fmt.Fprintf(sb, " NNUE network contributions (%s to move)\n", sideName)
	sb.WriteString(separator)
	sb.WriteString("|  Network   |  Material  | Positional |   Total    |\n")
	sb.WriteString("|            |   (PSQT)   |  (Layers)  |            |\n")
	sb.WriteString(separator)

	var _, _, smallNet = evaluateNetwork(networks, p, nnue.NewAccumulatorStack(), nnue.NewCaches())
	for _, row := range []struct {
		kind nnue.Kind
		net  nnue.Evaluator
	}{
		{nnue.Big, networks.Big},
		{nnue.Small, networks.Small},
	} {
		var psqt, positional = row.net.Evaluate(p, nnue.NewAccumulatorStack(), nnue.NewCaches())
		fmt.Fprintf(sb, "|  %-9s |  %s     |  %s     |  %s     |",
			row.kind,
			formatPawns(ToCentipawns(p, psqt)),
			formatPawns(ToCentipawns(p, positional)),
			formatPawns(ToCentipawns(p, psqt+positional)))
		if (row.kind == nnue.Small) == smallNet {
			sb.WriteString(" <-- this network is used")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(separator)
}

func pieceSymbol(pieceType int, side bool) string {
	var s = string("pnbrqk"[pieceType-Pawn])
	if side {
		s = strings.ToUpper(s)
	}
	return s
}

// formatPawns prints centipawns as pawns in five characters.
func formatPawns(cp int) string {
	var pawns = 0.01 * float64(cp)
	switch {
	case Abs(cp) >= 100000:
		return fmt.Sprintf("%+5.0f", pawns)
	case Abs(cp) >= 1000:
		return fmt.Sprintf("%+5.1f", pawns)
	default:
		return fmt.Sprintf("%+5.2f", pawns)
	}
}
