// Package schemas holds the JSON Schema documents describing the files this
// module writes.
package schemas

import _ "embed"

// Usage is the schema of the merged usage JSON array.
//
//go:embed usage.schema.json
var Usage string
