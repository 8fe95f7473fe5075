// Package utils provides common utility functions for the tag-manager application.
// It includes helper functions for type conversion of loosely typed import values
// (CSV cells, JSON numbers, YAML scalars).
package utils
