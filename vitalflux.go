// Package vitalflux provides the dynamic widget resolution engine behind
// the VitalFlux healthcare analytics dashboard.
//
// Usage:
//
//	import (
//	    "github.com/vitalflux/vitalflux/gateway"
//	    "github.com/vitalflux/vitalflux/resolve"
//	    "github.com/vitalflux/vitalflux/schema"
//	)
//
//	reg := schema.VitalFlux()
//	gw := gateway.New(gateway.DefaultConfig(apiKey), reg)
//	cfg, err := gw.Generate(ctx, "show me readmissions by condition")
//	binding := resolve.New(reg).DataOptions(cfg)
//
// The gateway asks an external generative model for a widget config,
// validates and repairs it against the schema catalog, and the resolver
// turns the config's string references into render-ready chart bindings.
// Model output is never executed as code; only the fixed reference
// grammar in the ref package is interpreted.
package vitalflux
