package report

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/hexlayout"
	"github.com/wippyai/hexlayout/errors"
	"github.com/wippyai/hexlayout/layout"
	"github.com/wippyai/hexlayout/memaccess"
)

type materializer struct {
	img  hexlayout.Image
	list []*Value
}

// Materialize reads every leaf of tree from img.
//
// Instance i of a repeated structure is read at its layout addresses shifted
// by i times the structure stride and stored under the key "name[i]".
// Padding produces no values. The first failed read aborts materialization;
// the returned error carries the path of the value being read.
func Materialize(tree *layout.Tree, img hexlayout.Image) (*Report, error) {
	if tree == nil || img == nil {
		return nil, errors.InvalidParam(errors.PhaseDecode, "materialize needs a tree and an image")
	}

	m := &materializer{img: img}
	root := newGroup("", "")
	for _, e := range tree.Elements {
		before := len(m.list)
		if err := m.element(root, e, 0, ""); err != nil {
			return nil, err
		}
		Logger().Debug("element materialized",
			zap.String("name", e.Name),
			zap.String("addr", fmt.Sprintf("0x%08X", e.Addr)),
			zap.Int("values", len(m.list)-before),
		)
	}
	return &Report{Root: root, List: m.list}, nil
}

func (m *materializer) element(parent *Node, e *layout.Element, delta uint64, prefix string) error {
	switch e.Kind {
	case layout.KindPadding:
		return nil

	case layout.KindLeaf:
		path := joinPath(prefix, e.Name)
		v, err := m.leaf(e, e.Addr+delta, path)
		if err != nil {
			return err
		}
		parent.add(&Node{Name: e.Name, Path: path, Value: v})
		m.list = append(m.list, v)
		return nil

	case layout.KindStruct:
		if e.Count == 1 {
			return m.group(parent, e, e.Name, delta, prefix)
		}
		for i := 0; i < e.Count; i++ {
			key := fmt.Sprintf("%s[%d]", e.Name, i)
			if err := m.group(parent, e, key, delta+uint64(i)*e.Stride(), prefix); err != nil {
				return err
			}
		}
		return nil

	default:
		return errors.Unsupported(errors.PhaseDecode, "element kind "+e.Kind.String())
	}
}

func (m *materializer) group(parent *Node, e *layout.Element, key string, delta uint64, prefix string) error {
	path := joinPath(prefix, key)
	g := newGroup(key, path)
	parent.add(g)
	for _, c := range e.Children {
		if err := m.element(g, c, delta, path); err != nil {
			return err
		}
	}
	return nil
}

func (m *materializer) leaf(e *layout.Element, addr uint64, path string) (*Value, error) {
	v := &Value{
		name:    e.Name,
		path:    path,
		variant: e.Variant,
		addr:    addr,
	}

	if e.Variant.Category == memaccess.Text {
		if e.Count == 1 {
			s, err := e.Variant.Bind(m.img).Read(addr)
			if err != nil {
				return nil, withPath(err, path)
			}
			v.raw = []byte{byte(s.Raw)}
			v.text = string(rune(s.Raw))
			return v, nil
		}
		text, err := memaccess.ReadString(m.img, addr, e.Count*e.Variant.Size())
		if err != nil {
			return nil, withPath(err, path)
		}
		v.text = text
		v.raw = []byte(text)
		return v, nil
	}

	acc := e.Variant.Bind(m.img)
	v.scalars = make([]memaccess.Scalar, e.Count)
	v.array = e.Count > 1
	for i := range v.scalars {
		s, err := acc.Read(addr + uint64(i*acc.Size()))
		if err != nil {
			return nil, withPath(err, path)
		}
		v.scalars[i] = s
	}
	return v, nil
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func withPath(err error, path string) error {
	if e, ok := err.(*errors.Error); ok {
		return e.WithPath(strings.Split(path, ".")...)
	}
	return errors.Wrap(errors.PhaseDecode, errors.KindOutOfRange, err, "read "+path)
}
