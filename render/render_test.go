package render

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/wippyai/hexlayout/config"
	"github.com/wippyai/hexlayout/errors"
	"github.com/wippyai/hexlayout/image"
	"github.com/wippyai/hexlayout/layout"
	"github.com/wippyai/hexlayout/report"
)

const testLayout = `{
	"elements": [
		{"name": "magic", "addr": "0x1000", "count": 4, "dataType": "uint8"},
		{"name": "version", "addr": "0x1004", "count": 1, "dataType": "uint16le"},
		{"name": "name", "addr": "0x1006", "count": 4, "dataType": "utf8"}
	]
}`

func testImage() *image.Sparse {
	return image.FromBytes(0x1000, []byte{'1', '2', '3', '4', 0x01, 0x02, 'a', 'b', 'c', 0})
}

func testReport(t *testing.T, img *image.Sparse) *report.Report {
	t.Helper()
	doc, err := config.Parse([]byte(testLayout), config.FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tree, diags, err := layout.Resolve(doc)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Err())
	}
	rep, err := report.Materialize(tree, img)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	return rep
}

func TestLines(t *testing.T) {
	img := testImage()
	rep := testReport(t, img)

	tests := []struct {
		name string
		hex  bool
		want string
	}{
		{
			name: "decimal",
			want: "magic @ 00001000: [49, 50, 51, 52]\n" +
				"version @ 00001004: 513\n" +
				"name @ 00001006: abc\n",
		},
		{
			name: "hex",
			hex:  true,
			want: "magic @ 00001000: [0x31, 0x32, 0x33, 0x34]\n" +
				"version @ 00001004: 0x0201\n" +
				"name @ 00001006: abc\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			if err := (Lines{Hex: tt.hex}).Render(&b, rep); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if b.String() != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", b.String(), tt.want)
			}
		})
	}
}

func TestTable(t *testing.T) {
	rep := testReport(t, testImage())

	var b strings.Builder
	if err := (Table{}).Render(&b, rep); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := b.String()
	for _, s := range []string{"PATH", "ADDRESS", "0x00001004", "uint16le", "513", "uint8[4]", "abc"} {
		if !strings.Contains(out, s) {
			t.Errorf("table output does not contain %q:\n%s", s, out)
		}
	}
}

func TestTemplate(t *testing.T) {
	img := testImage()
	rep := testReport(t, img)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"elements", `{{ range config_elements }}{{ .Path }};{{ end }}`, "magic;version;name;"},
		{"report data", `{{ len .List }}`, "3"},
		{"lookup", `{{ (lookup "version").Hex }}`, "0x0201"},
		{"array index", `{{ (lookup "magic[2]").Hex }}`, "0x33"},
		{"read u32le", `{{ m_read_u32le 0x1000 | printf "%08X" }}`, "34333231"},
		{"read u32be", `{{ m_read_u32be 0x1000 | printf "%08X" }}`, "31323334"},
		{"read s8", `{{ m_read_s8 0x1004 }}`, "1"},
		{"read string", `{{ m_read_string 0x1006 }}`, "abc"},
		{"swap bytes u16", `{{ m_swap_bytes_u16 0x1234 | printf "%04X" }}`, "3412"},
		{"swap words u32", `{{ m_swap_words_u32 0x12345678 | printf "%08X" }}`, "56781234"},
		{"compare ok", `{{ macros_compare_values 0x0201 (lookup "version") }}`, "Ok"},
		{"compare not ok", `{{ macros_compare_values 1 2 }}`, "Not Ok (Set: 01, Actual: 02)"},
		{"compare format", `{{ macros_compare_values 10 11 "%d" }}`, "Not Ok (Set: 10, Actual: 11)"},
		{
			"checksum",
			`{{ m_calc_checksum "u8" 0x1000 0x1004 0x04C11DB7 32 0xFFFFFFFF true true true | printf "%08X" }}`,
			"9BE3E0A3",
		},
		{"sprig", `{{ "abc" | upper }}`, "ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.name, tt.text, img)
			if err != nil {
				t.Fatalf("ParseTemplate: %v", err)
			}
			var b strings.Builder
			if err := tmpl.Render(&b, rep); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if b.String() != tt.want {
				t.Errorf("got %q, want %q", b.String(), tt.want)
			}
		})
	}
}

func TestTemplate_Reuse(t *testing.T) {
	tmpl, err := ParseTemplate("reuse", `{{ m_read_u8 0x1000 }}/{{ len (elements) }}`, nil)
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}

	tests := []struct {
		img  *image.Sparse
		rep  *report.Report
		want string
	}{
		{image.FromBytes(0x1000, []byte{0x2A}), &report.Report{}, "42/0"},
		{testImage(), testReport(t, testImage()), "49/3"},
	}

	for _, tt := range tests {
		tmpl.img = tt.img
		var b strings.Builder
		if err := tmpl.Render(&b, tt.rep); err != nil {
			t.Fatalf("Render: %v", err)
		}
		if b.String() != tt.want {
			t.Errorf("got %q, want %q", b.String(), tt.want)
		}
	}
}

func TestTemplate_Errors(t *testing.T) {
	img := testImage()
	rep := testReport(t, img)
	renderErr := &errors.Error{Phase: errors.PhaseRender, Kind: errors.KindRender}

	tests := []struct {
		name  string
		text  string
		cause error
	}{
		{"unknown function", `{{ nosuchfunc }}`, nil},
		{"unclosed action", `{{ .List `, nil},
		{"missing value", `{{ lookup "nope" }}`, &errors.Error{Phase: errors.PhaseRender, Kind: errors.KindNotFound}},
		{"unpopulated read", `{{ m_read_u8 0x9000 }}`, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindOutOfRange}},
		{"bad checksum width", `{{ m_calc_checksum "u8" 0x1000 0x1004 7 12 0 false false false }}`, &errors.Error{Phase: errors.PhaseChecksum, Kind: errors.KindInvalidParam}},
		{"non integer operand", `{{ m_swap_bytes_u16 "x" }}`, &errors.Error{Phase: errors.PhaseRender, Kind: errors.KindTypeMismatch}},
		{"unknown field", `{{ .Nope }}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.name, tt.text, img)
			if err == nil {
				err = tmpl.Render(&strings.Builder{}, rep)
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if !stderrors.Is(err, renderErr) {
				t.Errorf("got %v, want a render error", err)
			}
			if tt.cause != nil && !stderrors.Is(stderrors.Unwrap(err), tt.cause) {
				t.Errorf("cause of %v does not match %v", err, tt.cause)
			}
		})
	}
}

func TestLoadTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/report.tmpl", []byte(`{{ (lookup "name").String }}`), 0o644); err != nil {
		t.Fatal(err)
	}
	img := testImage()

	tmpl, err := LoadTemplate(fs, "/report.tmpl", img)
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	var b strings.Builder
	if err := tmpl.Render(&b, testReport(t, img)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b.String() != "abc" {
		t.Errorf("got %q, want %q", b.String(), "abc")
	}

	_, err = LoadTemplate(fs, "/missing.tmpl", img)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindNotFound}) {
		t.Errorf("got %v, want load not_found", err)
	}
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		set, actual any
		format      []string
		want        string
	}{
		{uint8(0x10), uint64(0x10), nil, "Ok"},
		{-1, uint64(0xFFFFFFFFFFFFFFFF), nil, "Ok"},
		{0xAB, 0xCD, nil, "Not Ok (Set: AB, Actual: CD)"},
		{0x1, 0x2, []string{"%04X"}, "Not Ok (Set: 0001, Actual: 0002)"},
	}

	for _, tt := range tests {
		got, err := compareValues(tt.set, tt.actual, tt.format...)
		if err != nil {
			t.Errorf("compareValues(%v, %v): %v", tt.set, tt.actual, err)
			continue
		}
		if got != tt.want {
			t.Errorf("compareValues(%v, %v): got %q, want %q", tt.set, tt.actual, got, tt.want)
		}
	}
}

func TestContext_Read(t *testing.T) {
	ctx := NewContext(testImage(), nil)

	if _, err := ctx.Read("utf8", 0x1006); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseRender, Kind: errors.KindUnsupported}) {
		t.Errorf("Read(utf8): got %v, want unsupported", err)
	}
	s, err := ctx.Read("uint16le", 0x1004)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if s.Uint() != 0x0201 {
		t.Errorf("Read(uint16le): got 0x%X, want 0x0201", s.Uint())
	}
	if ctx.Elements() != nil {
		t.Error("Elements without a report should be nil")
	}
	if _, err := ctx.Lookup("magic"); err == nil {
		t.Error("Lookup without a report should fail")
	}
}
