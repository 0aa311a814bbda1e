// Package memory provides in-process repositories seeded with demo data.
// They back the server when no database is configured and serve as fakes
// in service tests.
package memory
