package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/hexlayout/config"
	"github.com/wippyai/hexlayout/image"
	"github.com/wippyai/hexlayout/layout"
	"github.com/wippyai/hexlayout/render"
	"github.com/wippyai/hexlayout/report"
)

// app carries the state shared by all commands.
type app struct {
	fs         afero.Fs
	warn       *color.Color
	isTerminal func() bool
	verbose    bool
}

func newApp(fs afero.Fs) *app {
	return &app{
		fs:   fs,
		warn: color.New(color.FgYellow),
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "hexlayout",
		Short:         "Inspect binary memory images through a structured layout.",
		Long:          "Dump, decode and checksum Intel HEX and raw binary images using a JSON or YAML layout document.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogging()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "increase logging verbosity")

	root.AddCommand(
		newDumpCmd(a),
		newPrintCmd(a),
		newChecksumCmd(a),
		newLayoutCmd(a),
		newBrowseCmd(a),
	)
	return root
}

func (a *app) setupLogging() error {
	if !a.verbose {
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return pkgerrors.Wrap(err, "create logger")
	}
	image.SetLogger(l.Named("image"))
	layout.SetLogger(l.Named("layout"))
	report.SetLogger(l.Named("report"))
	render.SetLogger(l.Named("render"))
	return nil
}

func (a *app) loadImage(name string) (*image.Sparse, error) {
	img, err := image.Load(a.fs, name)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "load image %s", name)
	}
	return img, nil
}

// resolve loads and resolves a layout document. Diagnostics are written to
// w as warnings; only fatal problems are returned.
func (a *app) resolve(w io.Writer, name string) (*layout.Tree, error) {
	doc, err := config.Load(a.fs, name)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "load layout %s", name)
	}
	tree, diags, err := layout.Resolve(doc)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "resolve layout %s", name)
	}
	for _, d := range diags {
		a.warn.Fprintf(w, "warning: %s\n", d.Error())
	}
	return tree, nil
}

// materialize loads an image and a layout and builds their report.
func (a *app) materialize(w io.Writer, imageFile, layoutFile string) (*image.Sparse, *report.Report, error) {
	img, err := a.loadImage(imageFile)
	if err != nil {
		return nil, nil, err
	}
	tree, err := a.resolve(w, layoutFile)
	if err != nil {
		return nil, nil, err
	}
	rep, err := report.Materialize(tree, img)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(err, "decode values")
	}
	return img, rep, nil
}

// number is a flag value accepting decimal, 0x hex, 0o octal and 0b
// binary notation.
type number uint64

func (n *number) String() string {
	return fmt.Sprintf("0x%X", uint64(*n))
}

func (n *number) Set(s string) error {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*n = number(v)
	return nil
}

func (n *number) Type() string {
	return "number"
}
