// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	"sync"
	"sync/atomic"
)

// A Context is the allocation handle that Floats are created against. It
// holds no numeric state: precision and rounding are given per operation by
// Options. A Context keeps a pool of limb buffers that the Floats created
// with it use as scratch space and return to when released.
//
// A Context is safe for concurrent use. The Floats it creates are not.
//
// Allocation failure is fatal: the Go runtime aborts the program when memory
// is exhausted. This is the only condition under which an operation does not
// return a Status.
type Context struct {
	pool atomic.Pointer[sync.Pool]
	live atomic.Int64
}

// NewContext creates a new, live Context.
func NewContext() *Context {
	c := new(Context)
	c.pool.Store(new(sync.Pool))
	return c
}

// New returns a new Float of value +0 bound to c. It panics with
// ErrContextClosed if c has been closed.
func (c *Context) New() *Float {
	if c.pool.Load() == nil {
		panic(ErrContextClosed)
	}
	c.live.Add(1)
	return &Float{ctx: c}
}

// Close destroys c and drops every pooled buffer it holds. Floats created
// with c remain usable but no new Float can be created with it.
// Close is idempotent.
func (c *Context) Close() {
	c.pool.Store(nil)
}

// Closed reports whether c has been closed.
func (c *Context) Closed() bool {
	return c.pool.Load() == nil
}

// Live returns the number of Floats created with c that have not been
// released.
func (c *Context) Live() int64 {
	return c.live.Load()
}

// getNat returns a *nat of len n from c's pool. The contents may not be zero.
// The pool holds *nat to avoid allocation when converting to interface{}.
// A nil or closed Context allocates.
func (c *Context) getNat(n int) *nat {
	var z *nat
	if c != nil {
		if p := c.pool.Load(); p != nil {
			if v := p.Get(); v != nil {
				z = v.(*nat)
			}
		}
	}
	if z == nil {
		z = new(nat)
	}
	*z = z.make(n)
	return z
}

func (c *Context) putNat(x *nat) {
	if c == nil || x == nil {
		return
	}
	if p := c.pool.Load(); p != nil {
		p.Put(x)
	}
}

// release is called when a Float bound to c is released.
func (c *Context) release(m nat) {
	if c == nil {
		return
	}
	c.live.Add(-1)
	if cap(m) > 0 {
		m = m[:0]
		c.putNat(&m)
	}
}
