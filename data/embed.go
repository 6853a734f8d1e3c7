package data

import (
	_ "embed"
)

//go:embed varieties.json
var VarietiesJSON []byte
