package layout

import (
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/wippyai/hexlayout/errors"
)

// Diagnostic is a recoverable problem found while resolving a document.
// Usually the offending element (or the rest of its structure body) was
// skipped. A top-level structure redeclared at another address is still
// merged and only reported.
type Diagnostic struct {
	Err  *errors.Error
	Path string
}

func newDiagnostic(err *errors.Error) Diagnostic {
	return Diagnostic{Err: err, Path: strings.Join(err.Path, ".")}
}

func (d Diagnostic) Error() string {
	return d.Err.Error()
}

// Kind returns the error kind of the diagnostic.
func (d Diagnostic) Kind() errors.Kind {
	return d.Err.Kind
}

// Diagnostics is the ordered list of diagnostics of one resolution.
type Diagnostics []Diagnostic

// Err returns all diagnostics as one error, or nil when there are none.
func (d Diagnostics) Err() error {
	var result *multierror.Error
	for _, diag := range d {
		result = multierror.Append(result, diag.Err)
	}
	return result.ErrorOrNil()
}

// ByKind returns the diagnostics of the given kind.
func (d Diagnostics) ByKind(kind errors.Kind) Diagnostics {
	var out Diagnostics
	for _, diag := range d {
		if diag.Err.Kind == kind {
			out = append(out, diag)
		}
	}
	return out
}
