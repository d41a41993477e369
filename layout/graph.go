package layout

import (
	"github.com/wippyai/hexlayout/config"
	"github.com/wippyai/hexlayout/memaccess"
)

// refGraph is the structure reference graph. An edge a -> b means the body
// of structure a, or an inline body nested in it, uses structure b.
type refGraph struct {
	edges map[string][]string
	order []string
}

func buildRefGraph(order []string, defs map[string]*config.StructureDef) *refGraph {
	g := &refGraph{
		edges: make(map[string][]string, len(order)),
		order: order,
	}
	for _, name := range order {
		g.collect(name, defs[name].Elements, defs)
	}
	return g
}

func (g *refGraph) collect(from string, specs []config.ElementSpec, defs map[string]*config.StructureDef) {
	for i := range specs {
		dt := specs[i].DataType
		switch {
		case dt == nil:
		case dt.IsInline:
			g.collect(from, dt.Inline, defs)
		case memaccess.IsBuiltin(dt.Name):
		default:
			if _, ok := defs[dt.Name]; ok {
				g.edges[from] = append(g.edges[from], dt.Name)
			}
		}
	}
}

// findCycle returns the first cycle found by a depth-first search in
// declaration order, as a path that starts and ends with the same name.
func (g *refGraph) findCycle() []string {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(g.order))
	var stack []string

	var visit func(n string) []string
	visit = func(n string) []string {
		state[n] = active
		stack = append(stack, n)
		for _, m := range g.edges[n] {
			switch state[m] {
			case active:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == m {
						return append(append([]string(nil), stack[i:]...), m)
					}
				}
			case unvisited:
				if cycle := visit(m); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
		return nil
	}

	for _, n := range g.order {
		if state[n] == unvisited {
			if cycle := visit(n); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
