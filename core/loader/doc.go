// Package loader provides the plugin-like feature loading system.
//
// It allows the application to register and initialize features (modules)
// dynamically. Each feature implements the Feature interface, which defines
// its lifecycle hooks and route registration logic.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager struct holds the registry of available features and loads the
// enabled ones via LoadAll(). The sync feature is the only built-in feature
// today, but the registry keeps route wiring out of the server bootstrap.
package loader
