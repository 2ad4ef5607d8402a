// Package data holds the reason catalog shipped with the binary.
package data

import _ "embed"

// Reasons is the default catalog document in JSON form.
//
//go:embed reasons.json
var Reasons []byte
