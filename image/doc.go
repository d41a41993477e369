// Package image loads memory images into byte-addressable stores.
//
// Three sources are supported by Load:
//
//   - Intel HEX files (".hex", case-insensitive): data records are placed at
//     their absolute address, honoring extended segment and extended linear
//     address records. Every record checksum is verified.
//   - WebAssembly modules (".wasm"): the active data segments of memory 0
//     give the initial linear memory, without instantiating the module.
//   - Anything else is a raw binary image placed at address zero.
//
// All of them end up in a Sparse store, a sorted list of non-overlapping populated
// segments. Reads of unpopulated addresses fail with a decode out_of_range
// error; nothing is ever zero filled.
//
// WasmMemory adapts the linear memory of a running wazero module, so the same
// layout can be decoded from a live WebAssembly instance:
//
//	mod, _ := runtime.Instantiate(ctx, wasmBytes)
//	img := image.NewWasmMemory(mod.Memory())
//	rep, err := report.Materialize(tree, img)
//
// Files are read through an afero.Fs so callers can substitute in-memory
// filesystems.
package image
