package catalog

import "saynope/data"

// Embedded returns the catalog compiled into the binary.
func Embedded() (*Catalog, error) {
	return Parse(data.Reasons, FormatJSON)
}
