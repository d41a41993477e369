package main

import (
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wippyai/hexlayout/checksum"
	"github.com/wippyai/hexlayout/errors"
	"github.com/wippyai/hexlayout/memaccess"
)

type checksumOptions struct {
	dataType   string
	preset     string
	start      number
	end        number
	poly       number
	seed       number
	width      int
	reflectIn  bool
	reflectOut bool
	finalXor   bool
}

// params builds the CRC parameters. Flags given explicitly override the
// values of a preset.
func (o *checksumOptions) params(flags *pflag.FlagSet) (checksum.Params, error) {
	p := checksum.Params{
		Polynomial: uint64(o.poly),
		Seed:       uint64(o.seed),
		Width:      o.width,
		ReflectIn:  o.reflectIn,
		ReflectOut: o.reflectOut,
		FinalXor:   o.finalXor,
	}
	if o.preset == "" {
		return p, nil
	}

	base, ok := checksum.Preset(o.preset)
	if !ok {
		return p, errors.InvalidParam(errors.PhaseChecksum, "unknown preset %q (known: %s)",
			o.preset, strings.Join(checksum.PresetNames(), ", "))
	}
	if !flags.Changed("poly") {
		p.Polynomial = base.Polynomial
	}
	if !flags.Changed("seed") {
		p.Seed = base.Seed
	}
	if !flags.Changed("width") {
		p.Width = base.Width
	}
	if !flags.Changed("reflect-in") {
		p.ReflectIn = base.ReflectIn
	}
	if !flags.Changed("reflect-out") {
		p.ReflectOut = base.ReflectOut
	}
	if !flags.Changed("final-xor") {
		p.FinalXor = base.FinalXor
	}
	return p, nil
}

func newChecksumCmd(a *app) *cobra.Command {
	o := &checksumOptions{poly: 0x04C11DB7}

	cmd := &cobra.Command{
		Use:   "checksum IMAGE",
		Short: "Calculate a CRC over an address range.",
		Long:  "Calculate a CRC over [start, end). The range is read as words of --type, most significant byte first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := memaccess.Lookup(o.dataType)
			if !ok {
				return errors.InvalidParam(errors.PhaseChecksum, "unknown data type %q", o.dataType)
			}
			p, err := o.params(cmd.Flags())
			if err != nil {
				return err
			}
			img, err := a.loadImage(args[0])
			if err != nil {
				return err
			}
			crc, err := checksum.Compute(img, v, uint64(o.start), uint64(o.end), p)
			if err != nil {
				return pkgerrors.Wrapf(err, "checksum 0x%X..0x%X", uint64(o.start), uint64(o.end))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%0*X\n", p.Width/4, crc)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.dataType, "type", "t", "uint8", "word type the range is read as")
	f.StringVar(&o.preset, "preset", "", "named parameter set ("+strings.Join(checksum.PresetNames(), ", ")+")")
	f.VarP(&o.start, "start", "s", "the calculation starts at this address")
	f.VarP(&o.end, "end", "e", "the calculation ends before this address")
	f.VarP(&o.poly, "poly", "p", "generator polynomial without the top bit")
	f.IntVarP(&o.width, "width", "w", 32, "CRC width in bits (8, 16, 32 or 64)")
	f.Var(&o.seed, "seed", "initial register value")
	f.BoolVar(&o.reflectIn, "reflect-in", false, "reflect each input byte")
	f.BoolVar(&o.reflectOut, "reflect-out", false, "reflect the final register")
	f.BoolVar(&o.finalXor, "final-xor", false, "xor the result with all ones")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
