package memaccess

import (
	"sort"
)

// Category is the numeric interpretation of a variant
type Category uint8

const (
	Unsigned Category = iota
	Signed
	Float
	Text
)

var categoryNames = [...]string{
	Unsigned: "unsigned",
	Signed:   "signed",
	Float:    "float",
	Text:     "text",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// IsInteger reports whether values of the category are integers.
func (c Category) IsInteger() bool {
	return c == Unsigned || c == Signed
}

// Endian is the byte order of multi-byte variants
type Endian uint8

const (
	LittleEndian Endian = iota
	BigEndian
)

func (e Endian) String() string {
	if e == BigEndian {
		return "be"
	}
	return "le"
}

// Variant identifies one fixed-width scalar encoding. Variants are immutable
// values; bind one to an image with Bind before reading.
type Variant struct {
	Name     string
	Category Category
	Bits     int
	Endian   Endian
}

// Size returns the variant width in bytes.
func (v Variant) Size() int {
	return v.Bits / 8
}

// IsZero reports whether v is the zero Variant.
func (v Variant) IsZero() bool {
	return v.Bits == 0
}

func (v Variant) String() string {
	return v.Name
}

var builtins = map[string]Variant{
	"uint8":     {Name: "uint8", Category: Unsigned, Bits: 8, Endian: LittleEndian},
	"int8":      {Name: "int8", Category: Signed, Bits: 8, Endian: LittleEndian},
	"uint16le":  {Name: "uint16le", Category: Unsigned, Bits: 16, Endian: LittleEndian},
	"uint16be":  {Name: "uint16be", Category: Unsigned, Bits: 16, Endian: BigEndian},
	"int16le":   {Name: "int16le", Category: Signed, Bits: 16, Endian: LittleEndian},
	"int16be":   {Name: "int16be", Category: Signed, Bits: 16, Endian: BigEndian},
	"uint32le":  {Name: "uint32le", Category: Unsigned, Bits: 32, Endian: LittleEndian},
	"uint32be":  {Name: "uint32be", Category: Unsigned, Bits: 32, Endian: BigEndian},
	"int32le":   {Name: "int32le", Category: Signed, Bits: 32, Endian: LittleEndian},
	"int32be":   {Name: "int32be", Category: Signed, Bits: 32, Endian: BigEndian},
	"uint64le":  {Name: "uint64le", Category: Unsigned, Bits: 64, Endian: LittleEndian},
	"uint64be":  {Name: "uint64be", Category: Unsigned, Bits: 64, Endian: BigEndian},
	"int64le":   {Name: "int64le", Category: Signed, Bits: 64, Endian: LittleEndian},
	"int64be":   {Name: "int64be", Category: Signed, Bits: 64, Endian: BigEndian},
	"float32le": {Name: "float32le", Category: Float, Bits: 32, Endian: LittleEndian},
	"float32be": {Name: "float32be", Category: Float, Bits: 32, Endian: BigEndian},
	"float64le": {Name: "float64le", Category: Float, Bits: 64, Endian: LittleEndian},
	"float64be": {Name: "float64be", Category: Float, Bits: 64, Endian: BigEndian},
	"utf8":      {Name: "utf8", Category: Text, Bits: 8, Endian: LittleEndian},
}

// aliases are the short names used by the report helper functions.
var aliases = map[string]string{
	"u8":    "uint8",
	"s8":    "int8",
	"u16le": "uint16le",
	"u16be": "uint16be",
	"s16le": "int16le",
	"s16be": "int16be",
	"u32le": "uint32le",
	"u32be": "uint32be",
	"s32le": "int32le",
	"s32be": "int32be",
	"u64le": "uint64le",
	"u64be": "uint64be",
	"s64le": "int64le",
	"s64be": "int64be",
}

// Lookup returns the builtin variant for a data type name.
func Lookup(name string) (Variant, bool) {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	v, ok := builtins[name]
	return v, ok
}

// IsBuiltin reports whether name is a builtin data type name or alias.
func IsBuiltin(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Names returns the canonical builtin type names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
