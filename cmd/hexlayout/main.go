package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/afero"
)

func main() {
	a := newApp(afero.NewOsFs())
	if err := newRootCmd(a).Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
