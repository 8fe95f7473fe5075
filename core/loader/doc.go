// Package loader registers the server's features and mounts their routes.
//
// A feature implements:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager.Register collects features; Manager.LoadAll loads the enabled ones in
// registration order and stops at the first failure. Feature names must be unique.
// The server registers the tags feature (disabled without a database) and the
// integrity feature.
package loader
