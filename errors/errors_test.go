package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseResolve,
				Kind:     KindUnresolvedType,
				Path:     []string{"header", "entries", "id"},
				DataType: "uint24le",
				Detail:   "unknown",
			},
			contains: []string{"[resolve]", "unresolved_type", "header.entries.id", "type uint24le", "- unknown"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOutOfRange,
			},
			contains: []string{"[decode]", "out_of_range"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindNotFound,
				Detail: "image",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "not_found", "image", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseParse,
		Kind:  KindMalformed,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindOutOfRange,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindOutOfRange}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseChecksum, Kind: KindOutOfRange}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseDecode, Kind: KindInvalidUTF8}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseDecode, Kind: KindOutOfRange}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestError_WithPath(t *testing.T) {
	err := OutOfRange(PhaseDecode, []string{"id"}, 0x10)
	got := err.WithPath("entries[1]")

	if strings.Join(got.Path, ".") != "entries[1].id" {
		t.Errorf("Path = %v, want [entries[1] id]", got.Path)
	}
	if len(err.Path) != 1 {
		t.Errorf("original path modified: %v", err.Path)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseResolve, KindInvalidValue).
		Path("table", "count").
		DataType("uint8").
		Value(0).
		Cause(cause).
		Detail("count must be %s, got %d", "positive", 0).
		Build()

	if err.Phase != PhaseResolve {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseResolve)
	}
	if err.Kind != KindInvalidValue {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidValue)
	}
	if len(err.Path) != 2 || err.Path[0] != "table" || err.Path[1] != "count" {
		t.Errorf("Path = %v, want [table count]", err.Path)
	}
	if err.DataType != "uint8" {
		t.Errorf("DataType = %v, want 'uint8'", err.DataType)
	}
	if err.Value != 0 {
		t.Errorf("Value = %v, want 0", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "count must be positive, got 0" {
		t.Errorf("Detail = %v, want 'count must be positive, got 0'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("OutOfRange", func(t *testing.T) {
		err := OutOfRange(PhaseDecode, []string{"field"}, 0x1234)
		if err.Kind != KindOutOfRange {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfRange)
		}
		if !strings.Contains(err.Detail, "0x00001234") {
			t.Errorf("Detail = %v, should contain the address", err.Detail)
		}
		if err.Value != uint64(0x1234) {
			t.Errorf("Value = %v, want 0x1234", err.Value)
		}
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		err := InvalidUTF8(PhaseDecode, []string{"str"}, []byte{0xff, 0xfe})
		if err.Kind != KindInvalidUTF8 {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidUTF8)
		}
	})

	t.Run("FieldMissing", func(t *testing.T) {
		err := FieldMissing(PhaseResolve, []string{"record"}, "count")
		if err.Kind != KindFieldMissing {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFieldMissing)
		}
		if !strings.Contains(err.Detail, `"count"`) {
			t.Errorf("Detail = %v, should name the field", err.Detail)
		}
	})

	t.Run("InvalidOffset", func(t *testing.T) {
		err := InvalidOffset(PhaseResolve, []string{"s", "b"}, 1, 4)
		if err.Kind != KindInvalidOffset {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidOffset)
		}
	})

	t.Run("UnresolvedType", func(t *testing.T) {
		err := UnresolvedType(PhaseResolve, []string{"x"}, "missing_t")
		if err.Kind != KindUnresolvedType {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnresolvedType)
		}
		if err.DataType != "missing_t" {
			t.Errorf("DataType = %v, want missing_t", err.DataType)
		}
	})

	t.Run("CyclicStructure", func(t *testing.T) {
		err := CyclicStructure([]string{"a", "b", "a"})
		if err.Kind != KindCyclicStructure || err.Phase != PhaseResolve {
			t.Errorf("got [%v] %v", err.Phase, err.Kind)
		}
		if err.Detail != "a -> b -> a" {
			t.Errorf("Detail = %q, want %q", err.Detail, "a -> b -> a")
		}
	})

	t.Run("InvalidParam", func(t *testing.T) {
		err := InvalidParam(PhaseChecksum, "unsupported width %d", 12)
		if err.Kind != KindInvalidParam {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidParam)
		}
		if err.Detail != "unsupported width 12" {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseLoad, "image", "fw.hex")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		cause := errors.New("bad")
		err := Malformed("layout document", cause)
		if err.Phase != PhaseParse || err.Kind != KindMalformed {
			t.Errorf("got [%v] %v", err.Phase, err.Kind)
		}
		if !errors.Is(err, cause) {
			t.Error("Malformed should wrap its cause")
		}
	})

	t.Run("Render", func(t *testing.T) {
		err := Render("execute template", errors.New("boom"))
		if err.Kind != KindRender {
			t.Errorf("Kind = %v, want %v", err.Kind, KindRender)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseDecode, "float16")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})
}
