package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdconv"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input mdconv.Input) (*mdconv.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*mdconv.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// poolFactory builds a Pool of size converters sharing opts.
type poolFactory func(size int, opts ...mdconv.Option) (Pool, error)

// poolAdapter exposes an mdconv.ConverterPool as a Pool.
type poolAdapter struct {
	pool *mdconv.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// newConverterPool is the production poolFactory.
func newConverterPool(size int, opts ...mdconv.Option) (Pool, error) {
	p, err := mdconv.NewConverterPool(size, opts...)
	if err != nil {
		return nil, err
	}
	return &poolAdapter{pool: p}, nil
}

func (a *poolAdapter) Acquire(ctx context.Context) (CLIConverter, error) {
	c, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Release returns c to the pool. Panics if c did not come from Acquire.
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*mdconv.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
