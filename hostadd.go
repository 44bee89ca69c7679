// Package hostadd contains a Go-defined integer addition function exported to
// WebAssembly guests under the module name "env".
//
// # Function
//
//   - "add" - returns the sum of two i32 parameters "a" and "b".
//
// Here's the import in a user's module that ends up using this, in
// WebAssembly 1.0 (MVP) Text Format:
//
//	(import "env" "add" (func $add (param i32 i32) (result i32)))
//
// # Overflow
//
// Signed i32 addition can overflow, and each exporter commits to exactly one
// deterministic policy for it:
//
//   - fail (default): the call traps with ErrOverflow.
//   - wrap: the result is the two's-complement wraparound of the sum. See
//     FunctionExporter WithWrapOnOverflow.
//   - saturate: the result clamps to math.MinInt32 or math.MaxInt32. See
//     FunctionExporter WithSaturateOnOverflow.
package hostadd

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wasmlibs/hostadd/internal/arith"
)

const (
	// ModuleName is the module name guests use to import FunctionName.
	ModuleName = "env"

	// FunctionName is the export name of the addition function.
	FunctionName = "add"
)

// ErrOverflow is returned by Add, and is the cause of the trap raised by the
// default exporter, when a sum is not representable as an int32.
var ErrOverflow = arith.ErrOverflow

// Add returns a + b for direct Go callers, using the same contract guests get
// from the default exporter: a sum outside the int32 range fails with
// ErrOverflow.
func Add(a, b int32) (int32, error) {
	return arith.Add(a, b)
}

// MustInstantiate calls Instantiate or panics on error.
//
// This is a simpler function for those who know the module "env" is not
// already instantiated, and don't need to unload it.
func MustInstantiate(ctx context.Context, r wazero.Runtime) {
	if _, err := Instantiate(ctx, r); err != nil {
		panic(err)
	}
}

// Instantiate instantiates the "env" module into the runtime, exporting "add"
// with the default (fail on overflow) policy.
//
// # Notes
//
//   - Failure cases are documented on wazero.Runtime InstantiateModule.
//   - Closing the wazero.Runtime has the same effect as closing the result.
//   - To rename the module, pick another overflow policy, or add more
//     functions next to "add", use FunctionExporter with your own builder.
func Instantiate(ctx context.Context, r wazero.Runtime) (api.Closer, error) {
	builder := r.NewHostModuleBuilder(ModuleName)
	NewFunctionExporter().ExportFunctions(builder)
	return builder.Instantiate(ctx)
}

// FunctionExporter builds the "add" function for use with a
// wazero.HostModuleBuilder, for callers who compose their own host module.
//
// # Notes
//
//   - This is an interface for decoupling, not third-party implementations.
type FunctionExporter interface {
	// WithWrapOnOverflow configures "add" to return the two's-complement
	// wraparound of the sum instead of trapping on overflow.
	WithWrapOnOverflow() FunctionExporter

	// WithSaturateOnOverflow configures "add" to clamp the sum to
	// math.MinInt32 or math.MaxInt32 instead of trapping on overflow.
	WithSaturateOnOverflow() FunctionExporter

	// ExportFunctions builds the "add" function into builder.
	ExportFunctions(builder wazero.HostModuleBuilder)
}

// NewFunctionExporter returns a FunctionExporter which traps on overflow.
func NewFunctionExporter() FunctionExporter {
	return &functionExporter{addFn: failAdd}
}

type functionExporter struct {
	addFn func(a, b int32) int32
}

// WithWrapOnOverflow implements FunctionExporter.WithWrapOnOverflow
func (e *functionExporter) WithWrapOnOverflow() FunctionExporter {
	return &functionExporter{addFn: arith.WrapAdd}
}

// WithSaturateOnOverflow implements FunctionExporter.WithSaturateOnOverflow
func (e *functionExporter) WithSaturateOnOverflow() FunctionExporter {
	return &functionExporter{addFn: arith.SatAdd}
}

// ExportFunctions implements FunctionExporter.ExportFunctions
func (e *functionExporter) ExportFunctions(builder wazero.HostModuleBuilder) {
	builder.NewFunctionBuilder().
		WithFunc(e.addFn).
		WithName(FunctionName).
		WithParameterNames("a", "b").
		WithResultNames("sum").
		Export(FunctionName)
}

// failAdd traps the calling guest on overflow. wazero recovers the panic and
// surfaces it as the error of the in-flight call.
func failAdd(a, b int32) int32 {
	sum, err := arith.Add(a, b)
	if err != nil {
		panic(fmt.Errorf("%s: %w", FunctionName, err))
	}
	return sum
}
