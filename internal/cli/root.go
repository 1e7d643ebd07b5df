// Package cli implements the bfcalc command line calculator.
package cli

import (
	"fmt"
	"os"

	"github.com/db47h/bigfloat"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// config holds the settings shared by all commands, resolved from flags and
// BFCALC_* environment variables.
type config struct {
	opts   bigfloat.Options
	base   int
	digits int
	status bool
}

// Execute runs the bfcalc command. It is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCmd returns the bfcalc root command with all its subcommands.
func NewRootCmd() *cobra.Command {
	var (
		prec = precValue(bigfloat.DefaultPrec)
		mode = modeValue(bigfloat.ToNearestEven)
		cfg  = new(config)
		v    = viper.New()
	)

	root := &cobra.Command{
		Use:   "bfcalc",
		Short: "bfcalc - arbitrary precision binary floating-point calculator",
		Long: `bfcalc evaluates a single operation on arbitrary precision binary
floating-point numbers with IEEE 754 semantics and prints the rounded result.

The precision, rounding mode and output base default to the BFCALC_PREC,
BFCALC_MODE and BFCALC_BASE environment variables when set.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.load(v)
		},
	}

	flags := root.PersistentFlags()
	flags.Var(&prec, "prec", `precision in bits, or "inf"`)
	flags.Var(&mode, "mode", "rounding mode (even, away, zero, up, floor, ceil)")
	flags.Int("base", 10, "output base")
	flags.IntVar(&cfg.digits, "digits", -1, "digits after the radix point, -1 for the shortest exact representation")
	flags.BoolVarP(&cfg.status, "status", "s", false, "print the status flags after the result")

	v.SetEnvPrefix("BFCALC")
	v.AutomaticEnv()
	for _, name := range []string{"prec", "mode", "base"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	for i := range ops {
		root.AddCommand(ops[i].command(cfg))
	}
	root.AddCommand(piCmd(cfg), parseCmd(cfg))
	return root
}

func (c *config) load(v *viper.Viper) error {
	var err error
	if c.opts.Prec, err = parsePrec(v.GetString("prec")); err != nil {
		return err
	}
	if c.opts.Mode, err = bigfloat.ParseRoundingMode(v.GetString("mode")); err != nil {
		return err
	}
	c.base = v.GetInt("base")
	if c.base < 2 || c.base > bigfloat.MaxBase {
		return fmt.Errorf("invalid base %d", c.base)
	}
	return nil
}

// operands parses args with the configured options and returns the parsed
// values along with the accumulated status.
func (c *config) operands(args []string) ([]*bigfloat.Float, bigfloat.Status, error) {
	var s bigfloat.Status
	xs := make([]*bigfloat.Float, len(args))
	for i, a := range args {
		x, st, err := bigfloat.ParseFloat(c.opts, a, 0)
		if err != nil {
			return nil, st, err
		}
		xs[i] = x
		s |= st
	}
	return xs, s, nil
}

// print writes z formatted according to c to the command output.
func (c *config) print(cmd *cobra.Command, z *bigfloat.Float, s bigfloat.Status) {
	f := bigfloat.FormatOptions{Notation: bigfloat.Plain, Digits: c.digits}
	if c.digits < 0 {
		f = bigfloat.FormatOptions{Shortest: true, Prec: c.opts.Prec}
	}
	out := z.TextBase(c.base, f)
	if c.status {
		out += " " + s.String()
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
}
