// Package source installs go-json as the default tokenizer when imported.
package source

import (
	"github.com/reoring/jsonrec"
	drvgojson "github.com/reoring/jsonrec/source/gojson"
)

// init in a separate package to avoid an import cycle in root.
func init() { jsonrec.SetJSONDriver(drvgojson.Driver()) }
