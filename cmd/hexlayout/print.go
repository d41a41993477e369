package main

import (
	"github.com/spf13/cobra"

	"github.com/wippyai/hexlayout/render"
)

func newPrintCmd(a *app) *cobra.Command {
	var (
		templateFile string
		hex          bool
		table        bool
	)

	cmd := &cobra.Command{
		Use:   "print IMAGE LAYOUT",
		Short: "Decode the elements of a layout and print them.",
		Long: "Decode the elements of a layout and print one \"path @ address: value\" line per value.\n" +
			"With --template the report is rendered through a text/template file instead.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, rep, err := a.materialize(cmd.ErrOrStderr(), args[0], args[1])
			if err != nil {
				return err
			}

			var r render.Renderer = render.Lines{Hex: hex}
			if table {
				r = render.Table{Hex: hex}
			}
			if templateFile != "" {
				t, err := render.LoadTemplate(a.fs, templateFile, img)
				if err != nil {
					return err
				}
				r = t
			}
			return r.Render(cmd.OutOrStdout(), rep)
		},
	}

	cmd.Flags().StringVarP(&templateFile, "template", "f", "", "render the report through this template file")
	cmd.Flags().BoolVarP(&hex, "hex", "x", false, "show numeric values in hex")
	cmd.Flags().BoolVar(&table, "table", false, "print the values as a table")
	return cmd
}
