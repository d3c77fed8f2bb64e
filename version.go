/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymap

import (
	"runtime"
	"runtime/debug"

	"github.com/suparena/entitymap/definition"
	"github.com/suparena/entitymap/mapping"
)

// Release metadata, overridable with -ldflags "-X github.com/suparena/entitymap.Version=...".
var (
	Version   = "0.1.0"
	GitCommit = ""
	BuildDate = ""
)

// VersionInfo describes the build and the formats it understands.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	// DefinitionFormat is the mapping definition file version accepted by LoadFile.
	DefinitionFormat string `json:"definitionFormat"`
	// DbTypes is the number of database types a mapping can name.
	DbTypes int `json:"dbTypes"`
}

// GetVersionInfo returns the version information. Commit and build date fall back to
// the VCS stamp of the binary, then to "unknown".
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:          Version,
		GitCommit:        GitCommit,
		BuildDate:        BuildDate,
		GoVersion:        runtime.Version(),
		DefinitionFormat: definition.CurrentVersion,
		DbTypes:          mapping.DbTypeCount,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildDate == "":
				info.BuildDate = s.Value
			}
		}
	}
	if info.GitCommit == "" {
		info.GitCommit = "unknown"
	}
	if info.BuildDate == "" {
		info.BuildDate = "unknown"
	}
	return info
}
