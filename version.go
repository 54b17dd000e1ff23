package arbor

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version is the current Arbor release, embedded from the VERSION file.
var Version = strings.TrimSpace(rawVersion)
