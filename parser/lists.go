package parser

import "github.com/insomnimus/arcup/ast"

// listStart returns the start indicator that opens line, if any.
func listStart(line []ast.Node) (ast.IndicatorKind, bool) {
	if len(line) == 0 {
		return 0, false
	}
	ind, ok := line[0].(*ast.Indicator)
	if !ok || (ind.Kind != ast.StartOrderedList && ind.Kind != ast.StartUnorderedList) {
		return 0, false
	}
	return ind.Kind, true
}

func listEnd(start ast.IndicatorKind) ast.IndicatorKind {
	if start == ast.StartOrderedList {
		return ast.EndOrderedList
	}
	return ast.EndUnorderedList
}

// regroup turns the per-line start indicators of the first pass into one
// start and one end indicator around each run of same kind items. Blank lines
// between two items stay inside the run.
func regroup(lines [][]ast.Node) [][]ast.Node {
	out := make([][]ast.Node, 0, len(lines)+2)
	for i := 0; i < len(lines); {
		kind, ok := listStart(lines[i])
		if !ok {
			out = append(out, lines[i])
			i++
			continue
		}

		out = append(out, []ast.Node{&ast.Indicator{Kind: kind}}, lines[i][1:])
		i++
		for {
			j := i
			for j < len(lines) && len(lines[j]) == 0 {
				j++
			}
			if j == len(lines) {
				break
			}
			if next, ok := listStart(lines[j]); !ok || next != kind {
				break
			}
			out = append(out, lines[i:j]...)
			out = append(out, lines[j][1:])
			i = j + 1
		}
		out = append(out, []ast.Node{&ast.Indicator{Kind: listEnd(kind)}})
	}
	return out
}
