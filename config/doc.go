// Package config decodes layout documents.
//
// A layout document declares reusable structures and the top-level elements
// placed in memory. JSON and YAML encodings carry the same model:
//
//	{
//	  "structures": [
//	    {"name": "entry_t", "elements": [
//	      {"name": "id",    "count": 1, "dataType": "uint16le"},
//	      {"name": "flags", "count": 1, "dataType": "uint8", "offset": 4}
//	    ]}
//	  ],
//	  "elements": [
//	    {"name": "table", "addr": "0x0800", "count": 3, "dataType": "entry_t"},
//	    {"name": "name",  "addr": "0x0900", "count": 16, "dataType": "utf8"}
//	  ]
//	}
//
// Numbers are integers or strings with a base prefix. A dataType is a
// builtin type name, a structure name, or an inline list of element specs.
//
// Decoding is permissive: every field of ElementSpec is a pointer and
// absence is reported later by the layout resolver as a per-element
// diagnostic. Values of the wrong type (a float count, an unparsable number
// string, a dataType object) are kept in the Invalid fields and reported
// the same way. Only bad syntax and a document of the wrong shape fail here.
package config
