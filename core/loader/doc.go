// Package loader provides the plugin-like feature loading system of the HTTP API.
//
// Each feature implements the Feature interface, which defines whether it can run and
// how it registers its routes.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Loading of enabled features via LoadAll()
//
// The `serve` command registers the sync feature (feature/syncapi). A feature whose
// dependencies are missing reports itself disabled and is skipped.
package loader
