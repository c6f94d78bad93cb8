// File: lixenwraith/deconfig/doc.go

// Package deconfig provides declarative configuration resolution.
// A schema declares fields with their defaults, transformers and validators;
// containers of that schema resolve each field on access by querying an
// ordered chain of adapters (environment, .env files, INI, TOML/YAML/JSON
// files, command-line arguments, in-memory maps, Consul, Viper).
//
// Quick Start:
//
//	schema := deconfig.NewBuilder("server").
//	    WithAdapters(deconfig.NewEnvAdapter("MYAPP_")).
//	    Method(
//	        deconfig.Method("Port", deconfig.Default(8080)).
//	            Field("server.port").
//	            Transform(deconfig.Integer()).
//	            Validate(deconfig.InRange(1, 65535)),
//	        deconfig.Method("Hosts", deconfig.NoDefault()).
//	            Field("server.hosts").
//	            Optional().
//	            Transform(deconfig.Split(",")),
//	    ).
//	    MustBuild()
//
//	cfg := schema.New()
//	port, err := deconfig.Get[int](cfg, "server.port") // MYAPP_SERVER_PORT or 8080
//
// Resolution of a field, on every access:
//  1. Field level adapters, then the container chain, left to right.
//     An adapter error wrapping ErrNotFound moves on to the next adapter;
//     any other error aborts with an *AdapterError.
//  2. When no adapter has a value, the provider is invoked.
//  3. A nil value yields nil for optional fields and a *MissingFieldError
//     for required ones. Transformers and validators are skipped.
//  4. Transformers run in declaration order, each receiving the previous output.
//  5. Validators run in declaration order; the first failure is returned.
//
// Nothing is cached. Creating a container resolves nothing, and a change in
// an environment variable or file is visible on the next access. Use
// Container.Check at start-up to surface every problem at once.
//
// Adapter chain precedence:
//  1. Adapters passed to Schema.New
//  2. Adapters given to Builder.WithAdapters
//  3. The registry (DefaultRegistry unless Builder.WithRegistry is used)
//
// The registry starts empty; a container with no adapters anywhere fails on
// access with ErrNoAdapters. Containers read the registry on every access,
// so set it once during start-up and Seal it.
//
// Thread Safety:
// Schemas are immutable and containers hold no mutable state. Concurrent
// access is safe whenever the bound adapters are; every built-in adapter is.
package deconfig
