// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/db47h/bigfloat"
)

var (
	defaultOnce sync.Once
	defaultCtx  *bigfloat.Context
)

// DefaultContext returns the process-wide Context used by Envs created
// without one. It is created on first use and never closed.
func DefaultContext() *bigfloat.Context {
	defaultOnce.Do(func() {
		defaultCtx = bigfloat.NewContext()
	})
	return defaultCtx
}

// An Env creates Values and computes operations on them with a fixed set of
// Options. It records the status of every operation until Status is called.
//
// An Env must be created with NewEnv or Default. It is safe for concurrent use.
type Env struct {
	ctx    *bigfloat.Context
	opts   bigfloat.Options
	status atomic.Uint32
}

// NewEnv returns an Env that allocates Values from ctx and rounds results
// according to o. If ctx is nil, the default context is used.
func NewEnv(ctx *bigfloat.Context, o bigfloat.Options) *Env {
	if ctx == nil {
		ctx = DefaultContext()
	}
	return &Env{ctx: ctx, opts: o}
}

// Default returns a new Env bound to the default context with
// bigfloat.DefaultOptions.
func Default() *Env {
	return NewEnv(nil, bigfloat.DefaultOptions)
}

// Options returns e's rounding options.
func (e *Env) Options() bigfloat.Options { return e.opts }

// Context returns the Context e allocates from.
func (e *Env) Context() *bigfloat.Context { return e.ctx }

// WithOptions returns a new Env sharing e's context with options o. The
// returned Env starts with a clear status.
func (e *Env) WithOptions(o bigfloat.Options) *Env {
	return &Env{ctx: e.ctx, opts: o}
}

// Status returns the union of the statuses of all operations performed with e
// since the last call to Status, and clears it.
func (e *Env) Status() bigfloat.Status {
	return bigfloat.Status(e.status.Swap(0))
}

// Err returns the conditions recorded by e that a computation cannot ignore:
// an invalid operation or a division by zero. Like Status, it clears e's
// recorded status.
func (e *Env) Err() error {
	return (e.Status() & (bigfloat.InvalidOperation | bigfloat.DivideByZero)).Err()
}

func (e *Env) record(s bigfloat.Status) {
	if s != bigfloat.Ok {
		e.status.Or(uint32(s))
	}
}

// new returns a fresh Float bound to e's context. Its buffers go back to the
// context once the Value holding it is garbage collected, so operands must be
// kept alive with runtime.KeepAlive until an operation returns.
func (e *Env) new() *bigfloat.Float {
	z := e.ctx.New()
	runtime.SetFinalizer(z, (*bigfloat.Float).Release)
	return z
}

func (e *Env) result(z *bigfloat.Float, s bigfloat.Status) (Value, bigfloat.Status) {
	e.record(s)
	return Value{z}, s
}

func (e *Env) round(z *bigfloat.Float) Value {
	v, _ := e.result(z, z.Round(e.opts))
	return v
}

// FromUint64 returns u rounded to e's Options.
func (e *Env) FromUint64(u uint64) Value {
	return e.round(e.new().SetUint64(u))
}

// FromInt64 returns i rounded to e's Options.
func (e *Env) FromInt64(i int64) Value {
	return e.round(e.new().SetInt64(i))
}

// FromFloat64 returns f rounded to e's Options. NaN converts to NaN.
func (e *Env) FromFloat64(f float64) Value {
	return e.round(e.new().SetFloat64(f))
}

// FromInt returns i rounded to e's Options.
func (e *Env) FromInt(i *big.Int) Value {
	return e.round(e.new().SetInt(i))
}

// Parse parses s in the given base like (*bigfloat.Float).Parse and returns
// the result rounded to e's Options. On error the result is NaN and the
// status is InvalidOperation.
func (e *Env) Parse(s string, base int) (Value, bigfloat.Status, error) {
	z := e.new()
	s0, _, err := z.Parse(e.opts, s, base)
	v, s0 := e.result(z, s0)
	return v, s0, err
}

// Round returns x rounded to e's Options.
func (e *Env) Round(x Value) (Value, bigfloat.Status) {
	z := e.new().Copy(x.float())
	runtime.KeepAlive(x.f)
	return e.result(z, z.Round(e.opts))
}

type unaryOp func(z *bigfloat.Float, o bigfloat.Options, x *bigfloat.Float) bigfloat.Status

type binaryOp func(z *bigfloat.Float, o bigfloat.Options, x, y *bigfloat.Float) bigfloat.Status

func (e *Env) unary(op unaryOp, x Value) (Value, bigfloat.Status) {
	z := e.new()
	s := op(z, e.opts, x.float())
	runtime.KeepAlive(x.f)
	return e.result(z, s)
}

func (e *Env) binary(op binaryOp, x, y Value) (Value, bigfloat.Status) {
	z := e.new()
	s := op(z, e.opts, x.float(), y.float())
	runtime.KeepAlive(x.f)
	runtime.KeepAlive(y.f)
	return e.result(z, s)
}

// Add returns the rounded sum x+y.
func (e *Env) Add(x, y Value) (Value, bigfloat.Status) {
	return e.binary((*bigfloat.Float).Add, x, y)
}

// Sub returns the rounded difference x-y.
func (e *Env) Sub(x, y Value) (Value, bigfloat.Status) {
	return e.binary((*bigfloat.Float).Sub, x, y)
}

// Mul returns the rounded product x×y.
func (e *Env) Mul(x, y Value) (Value, bigfloat.Status) {
	return e.binary((*bigfloat.Float).Mul, x, y)
}

// Quo returns the rounded quotient x/y.
func (e *Env) Quo(x, y Value) (Value, bigfloat.Status) {
	return e.binary((*bigfloat.Float).Quo, x, y)
}

// Mod returns the rounded remainder of x/y truncated towards zero.
func (e *Env) Mod(x, y Value) (Value, bigfloat.Status) {
	return e.binary((*bigfloat.Float).Mod, x, y)
}

// Rem returns the rounded IEEE 754 remainder of x/y.
func (e *Env) Rem(x, y Value) (Value, bigfloat.Status) {
	return e.binary((*bigfloat.Float).Rem, x, y)
}

// Pow returns the rounded value of x**y.
func (e *Env) Pow(x, y Value) (Value, bigfloat.Status) {
	return e.binary((*bigfloat.Float).Pow, x, y)
}

// PowUint returns the rounded value of x**n.
func (e *Env) PowUint(x Value, n uint64) (Value, bigfloat.Status) {
	z := e.new()
	s := z.PowUint(e.opts, x.float(), n)
	runtime.KeepAlive(x.f)
	return e.result(z, s)
}

// FMA returns x×y+u, computed with only one rounding.
func (e *Env) FMA(x, y, u Value) (Value, bigfloat.Status) {
	z := e.new()
	s := z.FMA(e.opts, x.float(), y.float(), u.float())
	runtime.KeepAlive(x.f)
	runtime.KeepAlive(y.f)
	runtime.KeepAlive(u.f)
	return e.result(z, s)
}

// Sqrt returns the rounded square root of x.
func (e *Env) Sqrt(x Value) (Value, bigfloat.Status) {
	return e.unary((*bigfloat.Float).Sqrt, x)
}

// Neg returns -x, rounded.
func (e *Env) Neg(x Value) (Value, bigfloat.Status) {
	return e.unary((*bigfloat.Float).Neg, x)
}

// Abs returns |x|, rounded.
func (e *Env) Abs(x Value) (Value, bigfloat.Status) {
	return e.unary((*bigfloat.Float).Abs, x)
}

// RoundToInt returns x rounded to an integer according to e's rounding mode.
func (e *Env) RoundToInt(x Value) (Value, bigfloat.Status) {
	return e.unary((*bigfloat.Float).RoundToInt, x)
}

// Exp returns the value of e**x.
func (e *Env) Exp(x Value) (Value, bigfloat.Status) {
	return e.unary((*bigfloat.Float).Exp, x)
}

// Log returns the natural logarithm of x.
func (e *Env) Log(x Value) (Value, bigfloat.Status) {
	return e.unary((*bigfloat.Float).Log, x)
}
