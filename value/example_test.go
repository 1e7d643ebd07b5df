package value_test

import (
	"errors"
	"fmt"
	"slices"

	"github.com/db47h/bigfloat"
	"github.com/db47h/bigfloat/value"
)

// solve solves the quadratic equation ax² + bx + c = 0, using e's rounding
// mode and precision. It can fail with various combinations of inputs, for
// example a = 0, b = 2, c = -3 will result in dividing zero by zero when
// computing x0. So we need to check errors.
func solve(e *value.Env, a, b, c value.Value) (x0, x1 value.Value, err error) {
	// compute discriminant
	d, _ := e.Mul(a, e.FromInt64(-4)) // d = a × -4
	d, _ = e.Mul(d, c)                //     × c
	d, _ = e.FMA(b, b, d)             //     + b × b
	if err = e.Err(); err != nil {
		return x0, x1, fmt.Errorf("error computing discriminant: %w", err)
	}
	if d.Sign() < 0 {
		return x0, x1, errors.New("no real roots")
	}
	// d = √d
	d, _ = e.Sqrt(d)
	twoA, _ := e.Mul(a, e.FromInt64(2))
	negB, _ := e.Neg(b)

	x0, _ = e.Add(negB, d)
	x0, _ = e.Quo(x0, twoA)
	x1, _ = e.Sub(negB, d)
	x1, _ = e.Quo(x1, twoA)

	if err = e.Err(); err != nil {
		return x0, x1, fmt.Errorf("error computing roots: %w", err)
	}
	return
}

// Example demonstrates error checking with an Env.
func Example() {
	e := value.NewEnv(nil, bigfloat.Options{Prec: 100})
	a, b, c := e.FromInt64(1), e.FromInt64(2), e.FromInt64(-3)
	x0, x1, err := solve(e, a, b, c)
	if err != nil {
		fmt.Printf("failed to solve %g×x²%+gx%+g: %v\n", a, b, c, err)
		return
	}
	fmt.Printf("roots of %g×x²%+gx%+g: %g, %g\n", a, b, c, x0, x1)

	a = value.Value{} // zero
	x0, x1, err = solve(e, a, b, c)
	if err != nil {
		// obviously, our solve() algorithm cannot handle a == 0
		fmt.Printf("failed to solve %g×x²%+gx%+g: %v\n", a, b, c, err)
		return
	}
	fmt.Printf("roots of %g×x²%+gx%+g: %g, %g\n", a, b, c, x0, x1)
	//
	// Output:
	// roots of 1×x²+2x-3: 1, -3
	// failed to solve 0×x²+2x-3: error computing roots: division by zero, invalid operation
}

// ExampleCompareTotal sorts values, including signed zeros and NaNs, in a
// deterministic order.
func ExampleCompareTotal() {
	e := value.Default()
	nan, _ := e.Sqrt(e.FromInt64(-1))
	vs := []value.Value{e.FromFloat64(2.5), nan, e.FromFloat64(0), e.FromFloat64(-1)}
	negZero, _ := e.Neg(e.FromInt64(0))
	vs = append(vs, negZero)
	slices.SortFunc(vs, value.CompareTotal)
	fmt.Println(vs)
	fmt.Println(value.Equal(vs[1], vs[2]), value.Equal(nan, nan))
	// Output:
	// [-1 -0 0 2.5 NaN]
	// true false
}
