// Package types defines the record model shared by the table engine, the
// dataset store and the CLI: the closed Value variant, Record, column and
// filter descriptors, view modes, the Store and Dataset interfaces, and the
// standard sentinel errors.
package types
