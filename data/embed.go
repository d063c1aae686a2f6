package data

import (
	_ "embed"
)

//go:embed seed/fixtures.json
var SeedFixtures string
