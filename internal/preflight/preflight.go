package preflight

import (
	"path/filepath"

	"karaoke/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := []Result{
		CheckDirectoryAccess("Storage directory", cfg.Paths.StorageDir),
	}
	for _, sub := range []string{"uploads", "outputs", "tmp"} {
		results = append(results, CheckDirectoryAccess("Storage "+sub, filepath.Join(cfg.Paths.StorageDir, sub)))
	}
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	return results
}
