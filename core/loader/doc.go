// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry: features are added with Register and the
// enabled ones mount their routes in registration order with LoadAll. The
// start command registers the inventory and crm features.
package loader
