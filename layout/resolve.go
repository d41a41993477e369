package layout

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/hexlayout/config"
	"github.com/wippyai/hexlayout/errors"
	"github.com/wippyai/hexlayout/memaccess"
)

type resolver struct {
	doc     *config.Document
	defs    map[string]*config.StructureDef
	layouts map[string]*Element
	diags   Diagnostics
	order   []string
}

// Resolve turns a layout document into an address-annotated tree.
//
// Problems confined to one element are returned as diagnostics and the
// element is skipped. A structure reference cycle is fatal and returns a
// nil tree with a cyclic_structure error.
func Resolve(doc *config.Document) (*Tree, Diagnostics, error) {
	if doc == nil {
		return nil, nil, errors.InvalidParam(errors.PhaseResolve, "nil document")
	}

	r := &resolver{
		doc:     doc,
		defs:    make(map[string]*config.StructureDef),
		layouts: make(map[string]*Element),
	}
	r.collectStructures()

	if cycle := buildRefGraph(r.order, r.defs).findCycle(); cycle != nil {
		err := errors.CyclicStructure(cycle)
		Logger().Error("structure reference cycle", zap.Strings("cycle", cycle))
		return nil, r.diags, err
	}

	for _, name := range r.order {
		r.structureLayout(name)
	}

	if !doc.HasElements && len(doc.Elements) == 0 {
		r.report(errors.FieldMissing(errors.PhaseResolve, nil, "elements"))
	}

	tree := newTree()
	for i := range doc.Elements {
		e := r.resolveTop(i, &doc.Elements[i])
		if e == nil {
			continue
		}
		if j, dup := tree.index[e.Name]; dup {
			Logger().Debug("element redeclared", zap.String("name", e.Name))
			if old := tree.Elements[j]; old.Kind == KindStruct && e.Kind == KindStruct && old.Addr != e.Addr {
				r.report(errors.New(errors.PhaseResolve, errors.KindInvalidValue).
					Path(e.Name).
					Detail("redeclared at 0x%X, first declared at 0x%X; merged fields keep their own addresses", e.Addr, old.Addr).
					Value(e.Addr).
					Build())
			}
		}
		tree.add(e)
	}

	Logger().Debug("layout resolved",
		zap.Int("elements", tree.Len()),
		zap.Int("structures", len(r.order)),
		zap.Int("diagnostics", len(r.diags)),
	)
	return tree, r.diags, nil
}

func (r *resolver) report(err *errors.Error) {
	d := newDiagnostic(err)
	r.diags = append(r.diags, d)
	Logger().Warn("layout diagnostic",
		zap.String("path", d.Path),
		zap.String("kind", string(err.Kind)),
		zap.String("detail", err.Detail),
	)
}

// collectStructures indexes structure definitions by name. The first
// definition of a name wins.
func (r *resolver) collectStructures() {
	seen := make(map[string]bool)
	for i := range r.doc.Structures {
		def := &r.doc.Structures[i]
		where := []string{fmt.Sprintf("structures[%d]", i)}
		switch {
		case def.InvalidName != "":
			r.report(errors.InvalidValue(errors.PhaseResolve, where, "name", def.InvalidName))
			continue
		case def.Name == nil && def.Invalid != "":
			r.report(errors.InvalidValue(errors.PhaseResolve, where, "structure", def.Invalid))
			continue
		case def.Name == nil:
			r.report(errors.FieldMissing(errors.PhaseResolve, where, "name"))
			continue
		}
		name := *def.Name
		if def.Invalid != "" {
			r.report(errors.InvalidValue(errors.PhaseResolve, []string{name}, "elements", def.Invalid))
			continue
		}
		if seen[name] {
			r.report(errors.New(errors.PhaseResolve, errors.KindInvalidValue).
				Path(name).
				Detail("structure %q is already defined, later definition ignored", name).
				Value(name).
				Build())
			continue
		}
		seen[name] = true
		if !def.HasElements && len(def.Elements) == 0 {
			r.report(errors.FieldMissing(errors.PhaseResolve, []string{name}, "elements"))
			continue
		}
		r.defs[name] = def
		r.order = append(r.order, name)
	}
}

func (r *resolver) resolveTop(i int, spec *config.ElementSpec) *Element {
	name, ok := r.name([]string{fmt.Sprintf("elements[%d]", i)}, spec)
	if !ok {
		return nil
	}
	path := []string{name}

	if spec.Addr == nil {
		r.report(errors.FieldMissing(errors.PhaseResolve, path, "addr"))
		return nil
	}
	addr, ok := spec.Addr.Uint()
	if !ok {
		r.report(errors.InvalidValue(errors.PhaseResolve, path, "addr", spec.Addr.String()))
		return nil
	}

	count, ok := r.count(path, spec)
	if !ok {
		return nil
	}

	if !r.dataType(path, spec) {
		return nil
	}

	e := r.resolveType(path, spec.DataType, addr, count)
	if e != nil && e.End() < e.Addr {
		r.report(errors.New(errors.PhaseResolve, errors.KindInvalidValue).
			Path(path...).
			Detail("element at 0x%X with size %d runs past the end of the address space", e.Addr, e.Size()).
			Value(addr).
			Build())
		return nil
	}
	return e
}

// name returns the element name. where locates the element in diagnostics
// when it has no usable name.
func (r *resolver) name(where []string, spec *config.ElementSpec) (string, bool) {
	switch {
	case spec.Invalid != "":
		r.report(errors.InvalidValue(errors.PhaseResolve, where, "element", spec.Invalid))
	case spec.InvalidName != "":
		r.report(errors.InvalidValue(errors.PhaseResolve, where, "name", spec.InvalidName))
	case spec.Name == nil:
		r.report(errors.FieldMissing(errors.PhaseResolve, where, "name"))
	default:
		return *spec.Name, true
	}
	return "", false
}

func (r *resolver) dataType(path []string, spec *config.ElementSpec) bool {
	switch {
	case spec.DataType == nil:
		r.report(errors.FieldMissing(errors.PhaseResolve, path, "dataType"))
	case spec.DataType.Invalid != "":
		r.report(errors.InvalidValue(errors.PhaseResolve, path, "dataType", spec.DataType.Invalid))
	default:
		return true
	}
	return false
}

func (r *resolver) count(path []string, spec *config.ElementSpec) (int, bool) {
	if spec.Count == nil {
		r.report(errors.FieldMissing(errors.PhaseResolve, path, "count"))
		return 0, false
	}
	n, ok := spec.Count.Uint()
	if !ok || n < 1 || n > math.MaxInt32 {
		r.report(errors.InvalidValue(errors.PhaseResolve, path, "count", spec.Count.String()))
		return 0, false
	}
	return int(n), true
}

// resolveType builds the element for path at addr. It returns nil after
// reporting a diagnostic when the type cannot be resolved.
func (r *resolver) resolveType(path []string, dt *config.DataType, addr uint64, count int) *Element {
	name := path[len(path)-1]
	full := strings.Join(path, ".")

	if dt.IsInline {
		body := r.resolveBody(path, dt.Inline)
		e := body.clone(name, full, addr)
		e.Count = count
		return e
	}

	if v, ok := memaccess.Lookup(dt.Name); ok {
		return &Element{
			Name:    name,
			Path:    full,
			Type:    v.Name,
			Variant: v,
			Addr:    addr,
			Count:   count,
			Kind:    KindLeaf,
			stride:  uint64(v.Size()),
		}
	}

	tmpl, ok := r.structureLayout(dt.Name)
	if !ok {
		r.report(errors.UnresolvedType(errors.PhaseResolve, path, dt.Name))
		return nil
	}
	e := tmpl.clone(name, full, addr)
	e.Count = count
	return e
}

// structureLayout returns the layout of a named structure relative to
// address zero. Layouts are resolved once and cloned for every use, so
// diagnostics of a structure body are reported once, under its name.
func (r *resolver) structureLayout(name string) (*Element, bool) {
	if tmpl, ok := r.layouts[name]; ok {
		return tmpl, true
	}
	def, ok := r.defs[name]
	if !ok {
		return nil, false
	}
	tmpl := r.resolveBody([]string{name}, def.Elements)
	tmpl.Type = name
	r.layouts[name] = tmpl
	return tmpl, true
}

// resolveBody lays out a structure body starting at address zero.
//
// A child without a usable name, count or type ends the body: the address
// of everything after it is unknown. A bad offset only skips the child it
// belongs to.
func (r *resolver) resolveBody(path []string, specs []config.ElementSpec) *Element {
	body := &Element{
		Name:  path[len(path)-1],
		Path:  strings.Join(path, "."),
		Count: 1,
		Kind:  KindStruct,
	}
	seen := make(map[string]bool)

	var running uint64
	for i := range specs {
		spec := &specs[i]
		name, ok := r.name(appendPath(path, fmt.Sprintf("elements[%d]", i)), spec)
		if !ok {
			break
		}
		childPath := appendPath(path, name)

		count, ok := r.count(childPath, spec)
		if !ok {
			break
		}
		if !r.dataType(childPath, spec) {
			break
		}

		at := running
		if spec.Offset != nil {
			off, ok := spec.Offset.Uint()
			switch {
			case !ok:
				r.report(errors.InvalidValue(errors.PhaseResolve, childPath, "offset", spec.Offset.String()))
				continue
			case off == 0:
				// follows the previous child
			case off < running:
				r.report(errors.InvalidOffset(errors.PhaseResolve, childPath, off, running))
				continue
			default:
				at = off
			}
		}

		child := r.resolveType(childPath, spec.DataType, at, count)
		if child == nil {
			break
		}

		if at > running {
			body.Children = append(body.Children, newPadding(running, at-running))
		}
		running = at + child.Size()

		if seen[child.Name] {
			r.report(errors.New(errors.PhaseResolve, errors.KindInvalidValue).
				Path(childPath...).
				Detail("duplicate field name, bytes kept as padding").
				Value(child.Name).
				Build())
			body.Children = append(body.Children, newPadding(child.Addr, child.Size()))
			continue
		}
		seen[child.Name] = true
		body.Children = append(body.Children, child)
	}

	body.stride = running
	return body
}

func appendPath(path []string, name string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, name)
}
