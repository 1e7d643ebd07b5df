package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/db47h/bigfloat"
	"github.com/spf13/pflag"
)

// modeValue is a pflag.Value holding a rounding mode.
type modeValue bigfloat.RoundingMode

var _ pflag.Value = (*modeValue)(nil)

func (m *modeValue) String() string { return bigfloat.RoundingMode(*m).String() }

func (m *modeValue) Set(s string) error {
	mode, err := bigfloat.ParseRoundingMode(s)
	if err != nil {
		return err
	}
	*m = modeValue(mode)
	return nil
}

func (*modeValue) Type() string { return "mode" }

// precValue is a pflag.Value holding a precision in bits. It accepts "inf"
// for infinite precision.
type precValue uint

var _ pflag.Value = (*precValue)(nil)

func (p *precValue) String() string {
	if uint(*p) == bigfloat.PrecInf {
		return "inf"
	}
	return strconv.FormatUint(uint64(*p), 10)
}

func (p *precValue) Set(s string) error {
	prec, err := parsePrec(s)
	if err != nil {
		return err
	}
	*p = precValue(prec)
	return nil
}

func (*precValue) Type() string { return "prec" }

func parsePrec(s string) (uint, error) {
	if strings.EqualFold(s, "inf") {
		return bigfloat.PrecInf, nil
	}
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil || n == 0 || uint(n) == bigfloat.PrecInf {
		return 0, fmt.Errorf("invalid precision %q", s)
	}
	return uint(n), nil
}
