package cli

import (
	"fmt"

	"github.com/db47h/bigfloat"
	"github.com/db47h/bigfloat/math"
	"github.com/spf13/cobra"
)

// op is an operation on a fixed number of operands.
type op struct {
	name  string
	short string
	args  []string
	eval  func(z *bigfloat.Float, o bigfloat.Options, x []*bigfloat.Float) bigfloat.Status
}

func unary(f func(z *bigfloat.Float, o bigfloat.Options, x *bigfloat.Float) bigfloat.Status) func(*bigfloat.Float, bigfloat.Options, []*bigfloat.Float) bigfloat.Status {
	return func(z *bigfloat.Float, o bigfloat.Options, x []*bigfloat.Float) bigfloat.Status {
		return f(z, o, x[0])
	}
}

func binary(f func(z *bigfloat.Float, o bigfloat.Options, x, y *bigfloat.Float) bigfloat.Status) func(*bigfloat.Float, bigfloat.Options, []*bigfloat.Float) bigfloat.Status {
	return func(z *bigfloat.Float, o bigfloat.Options, x []*bigfloat.Float) bigfloat.Status {
		return f(z, o, x[0], x[1])
	}
}

var ops = []op{
	{"add", "x + y", []string{"x", "y"}, binary((*bigfloat.Float).Add)},
	{"sub", "x - y", []string{"x", "y"}, binary((*bigfloat.Float).Sub)},
	{"mul", "x × y", []string{"x", "y"}, binary((*bigfloat.Float).Mul)},
	{"quo", "x / y", []string{"x", "y"}, binary((*bigfloat.Float).Quo)},
	{"mod", "remainder of x / y truncated toward zero", []string{"x", "y"}, binary((*bigfloat.Float).Mod)},
	{"rem", "IEEE 754 remainder of x / y", []string{"x", "y"}, binary((*bigfloat.Float).Rem)},
	{"fma", "x × y + u with a single rounding", []string{"x", "y", "u"},
		func(z *bigfloat.Float, o bigfloat.Options, x []*bigfloat.Float) bigfloat.Status {
			return math.FMA(z, o, x[0], x[1], x[2])
		}},
	{"pow", "x raised to the power y", []string{"x", "y"}, binary(math.Pow)},
	{"hypot", "sqrt(x² + y²)", []string{"x", "y"}, binary(math.Hypot)},
	{"sqrt", "square root of x", []string{"x"}, unary(math.Sqrt)},
	{"exp", "e raised to the power x", []string{"x"}, unary(math.Exp)},
	{"expm1", "e raised to the power x, minus 1", []string{"x"}, unary(math.Expm1)},
	{"log", "natural logarithm of x", []string{"x"}, unary(math.Log)},
	{"log2", "binary logarithm of x", []string{"x"}, unary(math.Log2)},
	{"log10", "decimal logarithm of x", []string{"x"}, unary(math.Log10)},
	{"neg", "-x", []string{"x"}, unary((*bigfloat.Float).Neg)},
	{"abs", "|x|", []string{"x"}, unary((*bigfloat.Float).Abs)},
	{"round", "x rounded to an integer", []string{"x"}, unary((*bigfloat.Float).RoundToInt)},
}

func (p *op) command(cfg *config) *cobra.Command {
	use := p.name
	for _, a := range p.args {
		use += " " + a
	}
	return &cobra.Command{
		Use:   use,
		Short: p.short,
		Args:  cobra.ExactArgs(len(p.args)),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, s, err := cfg.operands(args)
			if err != nil {
				return err
			}
			z := new(bigfloat.Float)
			s |= p.eval(z, cfg.opts, x)
			cfg.print(cmd, z, s)
			return nil
		},
	}
}

func piCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "pi",
		Short: "the constant π",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			z := new(bigfloat.Float)
			cfg.print(cmd, z, math.Pi(z, cfg.opts))
			return nil
		},
	}
}

func parseCmd(cfg *config) *cobra.Command {
	var base int
	cmd := &cobra.Command{
		Use:   "parse x",
		Short: "x rounded to the current precision",
		Long: `parse rounds x to the current precision and prints it in the output base.
The input base is set by --in, 0 detects a 0b, 0o or 0x prefix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if base != 0 && (base < 2 || base > bigfloat.MaxBase) {
				return fmt.Errorf("invalid input base %d", base)
			}
			z, s, err := bigfloat.ParseFloat(cfg.opts, args[0], base)
			if err != nil {
				return err
			}
			cfg.print(cmd, z, s)
			return nil
		},
	}
	cmd.Flags().IntVar(&base, "in", 0, "input base")
	return cmd
}
