// Package report materializes a resolved layout against a memory image.
//
// Materialize walks the layout tree and decodes every leaf:
//
//   - a leaf with count 1 becomes a scalar Value
//   - a leaf with count > 1 becomes an array Value of count scalars read at
//     addr + i*size
//   - a utf8 leaf becomes a string read up to the first zero byte, at most
//     count bytes long
//   - a structure with count 1 becomes a group node
//   - a structure with count > 1 becomes count sibling groups keyed
//     "name[0]" ... "name[n-1]", instance i shifted by i*stride
//   - padding is skipped
//
// The result is a Report holding the tree (Root) and every leaf value in
// depth-first pre-order (List). Values are looked up by path:
//
//	v, ok := rep.Lookup("table[2].id")
//	id, err := v.Uint()
//	fmt.Println(v.Hex()) // 0x002A
//
// Values only expose explicit accessors. Asking an array for Int or a float
// for Uint fails with a type_mismatch error rather than converting.
//
// Materialization holds no state beyond the call, so one tree can be
// materialized against many images concurrently.
package report
