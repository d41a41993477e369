package report

import (
	"strconv"
	"strings"
)

// Node is one entry of the report tree: a group of named children or a
// leaf holding a Value.
type Node struct {
	Value    *Value
	index    map[string]int
	Name     string
	Path     string
	Children []*Node
}

func newGroup(name, path string) *Node {
	return &Node{Name: name, Path: path, index: make(map[string]int)}
}

// IsGroup reports whether n has children instead of a value.
func (n *Node) IsGroup() bool {
	return n.Value == nil
}

// Child returns the child stored under key. Instances of a repeated
// structure are stored under index-qualified keys such as "table[2]".
func (n *Node) Child(key string) (*Node, bool) {
	i, ok := n.index[key]
	if !ok {
		return nil, false
	}
	return n.Children[i], true
}

// Lookup resolves a dotted path below n, for example "table[2].id".
func (n *Node) Lookup(path string) (*Node, bool) {
	cur := n
	for _, key := range strings.Split(path, ".") {
		next, ok := cur.Child(key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Keys returns the child keys in declaration order.
func (n *Node) Keys() []string {
	keys := make([]string, len(n.Children))
	for i, c := range n.Children {
		keys[i] = c.Name
	}
	return keys
}

func (n *Node) add(child *Node) {
	n.index[child.Name] = len(n.Children)
	n.Children = append(n.Children, child)
}

// splitIndex splits "name[3]" into "name" and 3.
func splitIndex(key string) (string, int, bool) {
	if !strings.HasSuffix(key, "]") {
		return "", 0, false
	}
	open := strings.LastIndexByte(key, '[')
	if open <= 0 {
		return "", 0, false
	}
	i, err := strconv.Atoi(key[open+1 : len(key)-1])
	if err != nil || i < 0 {
		return "", 0, false
	}
	return key[:open], i, true
}
