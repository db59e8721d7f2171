// Package util holds small helpers shared across packages.
package util

// Ptr returns a pointer to v. Useful when filling optional fields
// on request and model structs.
func Ptr[T any](v T) *T {
	return &v
}
