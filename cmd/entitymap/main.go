/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command entitymap checks YAML mapping definition files.
//
//	entitymap -file mappings.yaml
//
// The file and log level default to ENTITYMAP_FILE and ENTITYMAP_LOG_LEVEL, which
// may be set in a .env file in the working directory.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/suparena/entitymap"
	"github.com/suparena/entitymap/definition"
	"github.com/suparena/entitymap/internal/logging"
)

func main() {
	// A missing .env is fine; the environment is used as is.
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("entitymap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		file        = fs.String("file", os.Getenv("ENTITYMAP_FILE"), "Mapping definition file")
		versionFlag = fs.Bool("version", false, "Show version information")
		vFlag       = fs.Bool("v", false, "Show version information (short)")
		debug       = fs.Bool("debug", false, "Enable debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *versionFlag || *vFlag {
		info := entitymap.GetVersionInfo()
		fmt.Fprintf(stdout, "EntityMap version %s\n", info.Version)
		fmt.Fprintf(stdout, "Git commit: %s\n", info.GitCommit)
		fmt.Fprintf(stdout, "Build date: %s\n", info.BuildDate)
		fmt.Fprintf(stdout, "Go version: %s\n", info.GoVersion)
		fmt.Fprintf(stdout, "Definition format: %s (%d DbTypes)\n", info.DefinitionFormat, info.DbTypes)
		return 0
	}

	level := os.Getenv("ENTITYMAP_LOG_LEVEL")
	if *debug {
		level = "debug"
	}
	logger, err := logging.NewWithWriter(level, *debug, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "entitymap: %v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	if *file == "" {
		fmt.Fprintln(stderr, "entitymap: no definition file; use -file or ENTITYMAP_FILE")
		fs.Usage()
		return 2
	}

	logger.Debug("loading definition", zap.String("file", *file))
	f, err := definition.LoadFile(*file)
	if err != nil {
		logger.Error("failed to load definition", zap.String("file", *file), zap.Error(err))
		return 1
	}
	if err := definition.Validate(f); err != nil {
		logger.Error("definition is invalid", zap.String("file", *file), zap.Error(err))
		fmt.Fprintf(stdout, "%s: invalid\n%v\n", *file, err)
		return 1
	}

	s := f.Stats()
	fmt.Fprintf(stdout, "%s: version %s\n", *file, f.Version)
	fmt.Fprintf(stdout, "  entities:   %d\n", s.Entities)
	fmt.Fprintf(stdout, "  tables:     %d\n", s.Tables)
	fmt.Fprintf(stdout, "  keys:       %d\n", s.Keys)
	fmt.Fprintf(stdout, "  columns:    %d\n", s.Columns)
	fmt.Fprintf(stdout, "  dbtypes:    %d\n", s.DbTypes)
	fmt.Fprintf(stdout, "  attributes: %d\n", s.Attributes)
	fmt.Fprintf(stdout, "  types:      %d\n", s.Types)
	logger.Info("definition is valid", zap.String("file", *file), zap.Int("entities", s.Entities))
	return 0
}
