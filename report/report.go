package report

import (
	"strings"

	"github.com/wippyai/hexlayout/errors"
)

// Report is the materialized view of a layout over one image.
type Report struct {
	Root *Node

	// List holds every leaf value in depth-first pre-order.
	List []*Value
}

// Lookup returns the value at path. The last segment may index into an
// array leaf: "samples[3]".
func (r *Report) Lookup(path string) (*Value, bool) {
	if n, ok := r.Root.Lookup(path); ok {
		return n.Value, n.Value != nil
	}

	parent, last := "", path
	if dot := strings.LastIndexByte(path, '.'); dot >= 0 {
		parent, last = path[:dot], path[dot+1:]
	}
	name, i, ok := splitIndex(last)
	if !ok {
		return nil, false
	}
	if parent != "" {
		name = parent + "." + name
	}
	n, ok := r.Root.Lookup(name)
	if !ok || n.Value == nil {
		return nil, false
	}
	v, err := n.Value.Index(i)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Value is like Lookup but returns an error naming the missing path.
func (r *Report) Value(path string) (*Value, error) {
	v, ok := r.Lookup(path)
	if !ok {
		return nil, errors.NotFound(errors.PhaseRender, "value", path)
	}
	return v, nil
}

// Group returns the group node at path.
func (r *Report) Group(path string) (*Node, bool) {
	n, ok := r.Root.Lookup(path)
	if !ok || !n.IsGroup() {
		return nil, false
	}
	return n, true
}
