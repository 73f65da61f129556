// Package embedded bundles the dashboard frontend into the binary so the
// server ships as a single artifact.
package embedded

import "embed"

//go:embed frontend
var Files embed.FS
