// Package hexlayout maps declarative field layouts onto binary memory images.
//
// A layout document names fields, their addresses, repeat counts and data types,
// optionally grouped into reusable (and nestable) structures. The library resolves
// the document into an address-annotated element tree, decodes every field from a
// memory image and hands the typed values to a report renderer.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	hexlayout/          Root package with the Image and Segmenter interfaces
//	├── image/          Sparse image store, Intel HEX/raw/wasm loaders, wasm memory adapter
//	├── memaccess/      Typed scalar decoding (width, signedness, endianness, IEEE-754)
//	├── config/         Layout document model (JSON and YAML)
//	├── layout/         Layout resolution: structures, offsets, padding, repeat counts
//	├── report/         Value materialization, report tree and flat value list
//	├── checksum/       Parameterizable bit-serial CRC over an image range
//	├── render/         Template rendering and image-bound helper functions
//	├── errors/         Structured error types
//	└── cmd/hexlayout/  Command line front end
//
// # Quick Start
//
//	img, err := image.Load(afero.NewOsFs(), "firmware.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := config.Load(afero.NewOsFs(), "layout.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tree, diags, err := layout.Resolve(doc)
//	if err != nil {
//	    log.Fatal(err) // cyclic structure references
//	}
//	for _, d := range diags {
//	    log.Println("warning:", d)
//	}
//
//	rep, err := report.Materialize(tree, img)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, _ := rep.Lookup("header.version")
//	fmt.Println(v.Hex())
//
// # Layout Documents
//
// A document has two top-level lists. "structures" declares reusable bodies,
// "elements" declares the fields that are reported:
//
//	{
//	    "structures": [
//	        {"name": "entry", "elements": [
//	            {"name": "id",   "count": 1, "dataType": "uint16le"},
//	            {"name": "crc",  "count": 1, "dataType": "uint32le", "offset": 4}
//	        ]}
//	    ],
//	    "elements": [
//	        {"name": "magic",   "addr": "0x0000", "count": 4, "dataType": "utf8"},
//	        {"name": "entries", "addr": "0x0010", "count": 3, "dataType": "entry"}
//	    ]
//	}
//
// # Thread Safety
//
// Images are never mutated by decoding, and resolved trees are immutable. A tree
// may be materialized against several images concurrently.
package hexlayout
