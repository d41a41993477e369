package main

import (
	"github.com/spf13/cobra"

	"github.com/wippyai/hexlayout/errors"
	"github.com/wippyai/hexlayout/memaccess"
	"github.com/wippyai/hexlayout/report"
)

const dumpLineBytes = 16

func newDumpCmd(a *app) *cobra.Command {
	var (
		addr     number
		count    int
		dataType string
	)

	cmd := &cobra.Command{
		Use:   "dump IMAGE",
		Short: "Dump a range of values from a start address.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := memaccess.Lookup(dataType)
			if !ok || v.Category == memaccess.Text {
				return errors.InvalidParam(errors.PhaseDecode, "cannot dump data type %q", dataType)
			}
			if count < 0 {
				return errors.InvalidParam(errors.PhaseDecode, "count must not be negative, got %d", count)
			}
			img, err := a.loadImage(args[0])
			if err != nil {
				return err
			}
			return report.Dump(cmd.OutOrStdout(), v.Bind(img), uint64(addr), count, dumpLineBytes)
		},
	}

	cmd.Flags().VarP(&addr, "addr", "a", "the dump starts at this address")
	cmd.Flags().IntVarP(&count, "count", "c", 64, "number of values to dump")
	cmd.Flags().StringVarP(&dataType, "type", "t", "uint8", "data type of one value")
	return cmd
}
