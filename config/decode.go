package config

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type rawDocument struct {
	Structures []StructureDef `json:"structures" yaml:"structures"`
	Elements   *[]ElementSpec `json:"elements" yaml:"elements"`
}

func (d *Document) fromRaw(raw rawDocument) {
	d.Structures = raw.Structures
	d.HasElements = raw.Elements != nil
	if raw.Elements != nil {
		d.Elements = *raw.Elements
	}
}

// UnmarshalJSON records whether the elements key was present.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.fromRaw(raw)
	return nil
}

// UnmarshalYAML records whether the elements key was present.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	var raw rawDocument
	if err := value.Decode(&raw); err != nil {
		return err
	}
	d.fromRaw(raw)
	return nil
}

type rawStructureJSON struct {
	Name     jsoniter.RawMessage `json:"name"`
	Elements jsoniter.RawMessage `json:"elements"`
}

type rawStructureYAML struct {
	Name     yaml.Node `yaml:"name"`
	Elements yaml.Node `yaml:"elements"`
}

// UnmarshalJSON records whether the elements key was present. A definition
// of the wrong shape is kept as invalid instead of failing the document.
func (s *StructureDef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		*s = StructureDef{Invalid: string(data)}
		return nil
	}
	var raw rawStructureJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = StructureDef{}
	s.Name, s.InvalidName = jsonName(raw.Name)
	elems := bytes.TrimSpace(raw.Elements)
	switch {
	case len(elems) == 0 || bytes.Equal(elems, []byte("null")):
	case elems[0] == '[':
		if err := json.Unmarshal(elems, &s.Elements); err != nil {
			return err
		}
		s.HasElements = true
	default:
		s.Invalid = string(elems)
	}
	return nil
}

// UnmarshalYAML records whether the elements key was present. A definition
// of the wrong shape is kept as invalid instead of failing the document.
func (s *StructureDef) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	if value.Kind != yaml.MappingNode {
		*s = StructureDef{Invalid: nodeText(value)}
		return nil
	}
	var raw rawStructureYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}

	*s = StructureDef{}
	s.Name, s.InvalidName = yamlName(&raw.Name)
	elems := resolveAlias(&raw.Elements)
	switch {
	case elems.Kind == 0 || isYAMLNull(elems):
	case elems.Kind == yaml.SequenceNode:
		if err := elems.Decode(&s.Elements); err != nil {
			return err
		}
		s.HasElements = true
	default:
		s.Invalid = nodeText(elems)
	}
	return nil
}

type rawElementJSON struct {
	Name     jsoniter.RawMessage `json:"name"`
	Addr     *Number             `json:"addr"`
	Count    *Number             `json:"count"`
	Offset   *Number             `json:"offset"`
	DataType *DataType           `json:"dataType"`
}

type rawElementYAML struct {
	Name     yaml.Node `yaml:"name"`
	Addr     *Number   `yaml:"addr"`
	Count    *Number   `yaml:"count"`
	Offset   *Number   `yaml:"offset"`
	DataType *DataType `yaml:"dataType"`
}

// UnmarshalJSON decodes an element spec field by field. Values of the wrong
// type are kept as invalid so that only this element is rejected later.
func (e *ElementSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		*e = ElementSpec{Invalid: string(data)}
		return nil
	}
	var raw rawElementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = ElementSpec{Addr: raw.Addr, Count: raw.Count, Offset: raw.Offset, DataType: raw.DataType}
	e.Name, e.InvalidName = jsonName(raw.Name)
	return nil
}

// UnmarshalYAML decodes an element spec field by field. Values of the wrong
// type are kept as invalid so that only this element is rejected later.
func (e *ElementSpec) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	if value.Kind != yaml.MappingNode {
		*e = ElementSpec{Invalid: nodeText(value)}
		return nil
	}
	var raw rawElementYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*e = ElementSpec{Addr: raw.Addr, Count: raw.Count, Offset: raw.Offset, DataType: raw.DataType}
	e.Name, e.InvalidName = yamlName(&raw.Name)
	return nil
}

// UnmarshalJSON accepts a type name string or an inline list of element
// specs. Any other value is kept as invalid.
func (d *DataType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty dataType")
	}
	switch data[0] {
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*d = DataType{Name: name}
	case '[':
		var elems []ElementSpec
		if err := json.Unmarshal(data, &elems); err != nil {
			return err
		}
		*d = DataType{Inline: elems, IsInline: true}
	default:
		*d = DataType{Invalid: string(data)}
	}
	return nil
}

// UnmarshalYAML accepts a type name scalar or an inline sequence of element
// specs. Any other value is kept as invalid.
func (d *DataType) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	switch value.Kind {
	case yaml.ScalarNode:
		*d = DataType{Name: value.Value}
	case yaml.SequenceNode:
		var elems []ElementSpec
		if err := value.Decode(&elems); err != nil {
			return err
		}
		*d = DataType{Inline: elems, IsInline: true}
	default:
		*d = DataType{Invalid: nodeText(value)}
	}
	return nil
}

// jsonName decodes a name. Strings are taken as is, number and bool
// literals by their text. Lists and objects are returned as invalid.
func jsonName(raw jsoniter.RawMessage) (*string, string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, string(raw)
		}
		return &s, ""
	case '[', '{':
		return nil, string(raw)
	default:
		s := string(raw)
		return &s, ""
	}
}

// yamlName is jsonName for YAML nodes. Any scalar is a name.
func yamlName(n *yaml.Node) (*string, string) {
	n = resolveAlias(n)
	switch {
	case n.Kind == 0 || isYAMLNull(n):
		return nil, ""
	case n.Kind == yaml.ScalarNode:
		s := n.Value
		return &s, ""
	default:
		return nil, nodeText(n)
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isYAMLNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
