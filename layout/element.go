package layout

import (
	"strings"

	"github.com/wippyai/hexlayout/memaccess"
)

// Kind is the element variant
type Kind uint8

const (
	KindLeaf Kind = iota
	KindStruct
	KindPadding
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindStruct:
		return "struct"
	case KindPadding:
		return "padding"
	default:
		return "unknown"
	}
}

// Element is one resolved field.
//
// Leaves carry the variant used to decode them. Structures carry ordered
// children, with addresses for instance zero; instance i of a repeated
// structure lives at Addr + i*Stride(). Padding only occupies bytes.
type Element struct {
	Name     string
	Path     string
	Type     string // builtin name for leaves, structure name for structures, empty for inline bodies
	Variant  memaccess.Variant
	Children []*Element
	Addr     uint64
	Count    int
	Kind     Kind

	stride uint64
}

// Stride returns the size in bytes of one instance.
func (e *Element) Stride() uint64 {
	return e.stride
}

// Size returns the total size in bytes, Stride() times Count.
func (e *Element) Size() uint64 {
	return e.stride * uint64(e.Count)
}

// End returns the address one past the last byte of the last instance.
func (e *Element) End() uint64 {
	return e.Addr + e.Size()
}

// IsPadding reports whether e is a padding entry.
func (e *Element) IsPadding() bool {
	return e.Kind == KindPadding
}

// Child returns the named child of a structure.
func (e *Element) Child(name string) (*Element, bool) {
	for _, c := range e.Children {
		if c.Kind != KindPadding && c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Fields returns the children of a structure without padding entries.
func (e *Element) Fields() []*Element {
	fields := make([]*Element, 0, len(e.Children))
	for _, c := range e.Children {
		if c.Kind != KindPadding {
			fields = append(fields, c)
		}
	}
	return fields
}

func newPadding(addr, size uint64) *Element {
	return &Element{Kind: KindPadding, Addr: addr, Count: 1, stride: size}
}

// clone deep-copies e under a new name and path, shifting every address by delta.
func (e *Element) clone(name, path string, delta uint64) *Element {
	c := *e
	c.Name = name
	c.Path = path
	c.Addr = e.Addr + delta
	if len(e.Children) == 0 {
		return &c
	}
	c.Children = make([]*Element, len(e.Children))
	for i, ch := range e.Children {
		if ch.Kind == KindPadding {
			c.Children[i] = newPadding(ch.Addr+delta, ch.stride)
			continue
		}
		c.Children[i] = ch.clone(ch.Name, path+"."+ch.Name, delta)
	}
	return &c
}

// Tree is a resolved layout: top-level elements in declaration order.
type Tree struct {
	Elements []*Element
	index    map[string]int
}

func newTree() *Tree {
	return &Tree{index: make(map[string]int)}
}

// Len returns the number of top-level elements.
func (t *Tree) Len() int {
	return len(t.Elements)
}

// Lookup finds an element by dotted path, for example "header.version".
// Paths name structure fields only; repeat indices are not part of a tree path.
func (t *Tree) Lookup(path string) (*Element, bool) {
	parts := strings.Split(path, ".")
	i, ok := t.index[parts[0]]
	if !ok {
		return nil, false
	}
	e := t.Elements[i]
	for _, name := range parts[1:] {
		if e, ok = e.Child(name); !ok {
			return nil, false
		}
	}
	return e, true
}

// add inserts e, merging it into an earlier declaration of the same name.
// Two structures merge field by field with the later field winning; any other
// combination replaces the earlier element. The merged element keeps the
// position of the first declaration.
func (t *Tree) add(e *Element) {
	i, ok := t.index[e.Name]
	if !ok {
		t.index[e.Name] = len(t.Elements)
		t.Elements = append(t.Elements, e)
		return
	}
	old := t.Elements[i]
	if old.Kind == KindStruct && e.Kind == KindStruct {
		t.Elements[i] = mergeStructs(old, e)
		return
	}
	t.Elements[i] = e
}

// mergeStructs merges the fields of later into earlier. Count and type come
// from later. Fields keep the addresses they were declared at, so when the
// two declarations sit at different addresses the merged element starts at
// the lower one. Padding is dropped since the two bodies may overlap; the
// stride is the extent from the start to the end of the last merged field.
func mergeStructs(earlier, later *Element) *Element {
	merged := &Element{
		Name:  later.Name,
		Path:  later.Path,
		Type:  later.Type,
		Addr:  min(earlier.Addr, later.Addr),
		Count: later.Count,
		Kind:  KindStruct,
	}

	pos := make(map[string]int)
	for _, c := range earlier.Children {
		if c.Kind == KindPadding {
			continue
		}
		pos[c.Name] = len(merged.Children)
		merged.Children = append(merged.Children, c)
	}
	for _, c := range later.Children {
		if c.Kind == KindPadding {
			continue
		}
		if j, ok := pos[c.Name]; ok {
			merged.Children[j] = c
			continue
		}
		pos[c.Name] = len(merged.Children)
		merged.Children = append(merged.Children, c)
	}

	for _, c := range merged.Children {
		if end := c.End(); end-merged.Addr > merged.stride {
			merged.stride = end - merged.Addr
		}
	}
	return merged
}
