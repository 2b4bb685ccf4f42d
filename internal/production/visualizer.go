package production

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/comalice/calcx"
)

// DefaultVisualizer renders the engine's mode graph as Graphviz DOT.
type DefaultVisualizer struct{}

// Edge is one arrow in the graph, labelled with the action kinds that take it.
type Edge struct {
	From  calcx.Mode
	To    calcx.Mode
	Label string
}

// ExportDOT generates DOT source for transitions, highlighting current.
// Self-loops are folded into the node label to keep the graph readable.
func (v *DefaultVisualizer) ExportDOT(transitions []calcx.ModeTransition, current calcx.Mode) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Calculator {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	loops := selfLoops(transitions)
	for _, m := range calcx.Modes() {
		style := ""
		if m == current {
			style = ` style="rounded,filled" fillcolor=lightgreen`
		}
		label := m.String()
		if kinds := loops[m]; len(kinds) > 0 {
			label += `\n(` + strings.Join(kinds, ", ") + `)`
		}
		fmt.Fprintf(&buf, "  %q [label=\"%s\"%s];\n", m.String(), label, style)
	}

	for _, e := range collectEdges(transitions) {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From.String(), e.To.String(), e.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// collectEdges merges transitions between the same pair of modes.
func collectEdges(transitions []calcx.ModeTransition) []Edge {
	type pair struct{ from, to calcx.Mode }
	labels := map[pair][]string{}
	var order []pair
	for _, t := range transitions {
		if t.From == t.To {
			continue
		}
		p := pair{t.From, t.To}
		if _, ok := labels[p]; !ok {
			order = append(order, p)
		}
		labels[p] = appendUnique(labels[p], t.Kind.String())
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].from != order[j].from {
			return order[i].from < order[j].from
		}
		return order[i].to < order[j].to
	})

	edges := make([]Edge, 0, len(order))
	for _, p := range order {
		edges = append(edges, Edge{From: p.from, To: p.to, Label: strings.Join(labels[p], ", ")})
	}
	return edges
}

func selfLoops(transitions []calcx.ModeTransition) map[calcx.Mode][]string {
	loops := map[calcx.Mode][]string{}
	for _, t := range transitions {
		if t.From == t.To {
			loops[t.From] = appendUnique(loops[t.From], t.Kind.String())
		}
	}
	return loops
}

func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}
