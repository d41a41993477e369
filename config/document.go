package config

// Document is a layout description: reusable named structures and the
// top-level elements placed in memory.
type Document struct {
	Structures []StructureDef `json:"structures" yaml:"structures"`
	Elements   []ElementSpec  `json:"elements" yaml:"elements"`

	// HasElements is false when the document has no "elements" key at all.
	HasElements bool `json:"-" yaml:"-"`
}

// StructureDef is a named, reusable ordered list of child specs.
type StructureDef struct {
	Name     *string       `json:"name" yaml:"name"`
	Elements []ElementSpec `json:"elements" yaml:"elements"`

	// HasElements is false when the definition has no "elements" key.
	HasElements bool `json:"-" yaml:"-"`

	// Invalid holds the raw text of a definition that is not an object or
	// whose elements are not a list. InvalidName holds a name that is not
	// a scalar.
	Invalid     string `json:"-" yaml:"-"`
	InvalidName string `json:"-" yaml:"-"`
}

// ElementSpec describes one field. All fields are pointers so the resolver
// can tell a missing field from a zero value.
type ElementSpec struct {
	Name     *string   `json:"name" yaml:"name"`
	Addr     *Number   `json:"addr" yaml:"addr"`
	Count    *Number   `json:"count" yaml:"count"`
	Offset   *Number   `json:"offset" yaml:"offset"`
	DataType *DataType `json:"dataType" yaml:"dataType"`

	// Invalid holds the raw text of an element that is not an object.
	Invalid     string `json:"-" yaml:"-"`
	InvalidName string `json:"-" yaml:"-"`
}

// DataType is either a reference by name (builtin type or structure) or an
// inline anonymous structure body.
type DataType struct {
	Name   string
	Inline []ElementSpec

	// IsInline distinguishes an empty inline body from a named reference.
	IsInline bool

	// Invalid holds the raw text of a value that is neither a name nor a list.
	Invalid string
}

// Named returns a DataType referencing name.
func Named(name string) *DataType {
	return &DataType{Name: name}
}

// InlineBody returns a DataType holding an anonymous structure body.
func InlineBody(elems ...ElementSpec) *DataType {
	return &DataType{Inline: elems, IsInline: true}
}

func (d *DataType) String() string {
	if d == nil {
		return "<nil>"
	}
	if d.Invalid != "" {
		return d.Invalid
	}
	if d.IsInline {
		return "<inline>"
	}
	return d.Name
}

// Structure returns the first structure definition with the given name.
func (d *Document) Structure(name string) (*StructureDef, bool) {
	for i := range d.Structures {
		s := &d.Structures[i]
		if s.Name != nil && *s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Str returns a pointer to s. It keeps hand-built documents short.
func Str(s string) *string {
	return &s
}

// Num returns a pointer to a Number holding v.
func Num(v int64) *Number {
	if v < 0 {
		return &Number{Value: uint64(-(v + 1)) + 1, Negative: true}
	}
	return &Number{Value: uint64(v)}
}

// Unum returns a pointer to a Number holding v.
func Unum(v uint64) *Number {
	return &Number{Value: v}
}
