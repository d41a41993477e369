// Package render writes materialized reports.
//
// Three renderers are provided. Lines prints one "path @ address: value"
// line per value, Table prints the same values as an aligned table and
// Template executes a user supplied text/template with the report as data.
//
// Templates see the report itself (".List", ".Root") and a set of helper
// functions bound to the image being inspected:
//
//	m_read_u8 .. m_read_s64be       typed integer reads at an address
//	m_read_float32le .. float64be   typed float reads
//	m_read_string                   zero-terminated UTF-8 string
//	m_calc_checksum                 CRC over an address range
//	m_swap_bytes_u16/u32            byte order swaps
//	m_swap_words_u32                16-bit half swap
//	macros_compare_values           "Ok" or "Not Ok (Set: .., Actual: ..)"
//	lookup                          report value by dotted path
//	elements, config_elements       flat value list
//
// The sprig function library is available as well. Example:
//
//	{{ range config_elements }}{{ .Path }} = {{ .Hex }}
//	{{ end }}crc: {{ m_calc_checksum "u32le" 0x1000 0x1100 0x04C11DB7 32 0xFFFFFFFF false false false | printf "%08X" }}
package render
