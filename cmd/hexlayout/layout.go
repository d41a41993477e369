package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/wippyai/hexlayout/layout"
)

func newLayoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "layout LAYOUT",
		Short: "Print the resolved layout tree with addresses and sizes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.resolve(cmd.ErrOrStderr(), args[0])
			if err != nil {
				return err
			}
			root := treeprint.NewWithRoot(args[0])
			for _, e := range tree.Elements {
				addLayoutNode(root, e)
			}
			fmt.Fprint(cmd.OutOrStdout(), root.String())
			return nil
		},
	}
}

func addLayoutNode(parent treeprint.Tree, e *layout.Element) {
	switch e.Kind {
	case layout.KindPadding:
		parent.AddNode(fmt.Sprintf("padding @ 0x%08X (%s)", e.Addr, sizeLabel(e.Size())))
	case layout.KindStruct:
		branch := parent.AddBranch(elementLabel(e))
		for _, c := range e.Children {
			addLayoutNode(branch, c)
		}
	default:
		parent.AddNode(elementLabel(e))
	}
}

func elementLabel(e *layout.Element) string {
	typ := e.Type
	if typ == "" {
		typ = "{inline}"
	}
	if e.Count > 1 {
		typ = fmt.Sprintf("%s[%d]", typ, e.Count)
	}
	return fmt.Sprintf("%s @ 0x%08X %s (%s)", e.Name, e.Addr, typ, sizeLabel(e.Size()))
}

func sizeLabel(n uint64) string {
	if n == 1 {
		return "1 byte"
	}
	return humanize.Comma(int64(n)) + " bytes"
}
