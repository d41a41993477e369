// Package layout resolves layout documents into address-annotated trees.
//
// # Resolution
//
// Every top-level element needs a name, an address, a repeat count and a data
// type. The data type is a builtin name (a leaf decoded by memaccess), the
// name of a declared structure, or an inline structure body.
//
// A structure body is laid out from its base address. Each child starts at
// the running address unless it has an explicit offset relative to the base:
//
//	offset 0 or absent       child follows the previous one
//	base+offset > running    one padding element fills the gap
//	base+offset == running   no padding
//	base+offset < running    invalid_offset diagnostic, child skipped
//
// The running address then advances by the child's size (stride times
// count). The size of one structure instance is the final running address
// minus the base.
//
// Repeated structures are laid out once. The materializer places instance i
// at Addr + i*Stride(), so a tree never contains per-index copies.
//
// # Diagnostics
//
// Problems confined to one element do not stop resolution:
//
//	Kind              Effect
//	─────────────────────────────────────────────────────────────
//	field_missing     element skipped; inside a body, rest of body skipped
//	invalid_value     same as field_missing (count < 1, negative addr)
//	unresolved_type   same as field_missing
//	invalid_offset    only the child is skipped
//
// A structure that refers to itself, directly or through other structures,
// is rejected before any address is computed:
//
//	[resolve] cyclic_structure: node_t -> list_t -> node_t
//
// # Redeclared names
//
// A top-level name declared twice keeps the position of its first
// declaration. Two structures merge field by field, the later field winning;
// address and count come from the later declaration. Any other combination
// replaces the earlier element.
//
// Named structure layouts are resolved once, relative to address zero, and
// cloned for every reference, the same way a layout calculator caches the
// size of each type definition.
package layout
