// Package textutil holds small string helpers shared across packages:
// filesystem-safe names for library folders and display casing for person
// names.
package textutil
