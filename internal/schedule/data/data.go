package data

import _ "embed"

//go:embed shuttles.json
var Shuttles []byte
