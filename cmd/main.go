// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"golang.org/x/term"

	"property-scan/internal/catalog"
	"property-scan/internal/config"
	"property-scan/internal/document"
	"property-scan/internal/export"
	"property-scan/internal/extract"
	"property-scan/internal/formatters"
	"property-scan/internal/observability"
	"property-scan/internal/processor"
	"property-scan/internal/registry"
	"property-scan/internal/store"
	"property-scan/internal/version"
	"property-scan/internal/web"

	// Import formatters to register them
	_ "property-scan/internal/formatters/csv"
	_ "property-scan/internal/formatters/json"
	_ "property-scan/internal/formatters/text"
)

// configFlags holds command line flag values
type configFlags struct {
	outputFormat string
	outputFile   string
	xlsxFile     string
	configFile   string
	storePath    string
	sessionID    string
	webPort      string
	verbose      bool
	debug        bool
	noColor      bool
	recursive    bool
	webMode      bool
	showVersion  bool
}

func parseFlags() *configFlags {
	flags := &configFlags{}
	flag.StringVar(&flags.outputFormat, "format", "", "Output format: text, json, csv")
	flag.StringVar(&flags.outputFile, "output", "", "Write formatted output to a file instead of stdout")
	flag.StringVar(&flags.xlsxFile, "xlsx", "", "Additionally export the registry as an XLSX workbook")
	flag.StringVar(&flags.configFile, "config", "", "Path to configuration file")
	flag.StringVar(&flags.storePath, "store", "", "SQLite file for registry snapshots")
	flag.StringVar(&flags.sessionID, "session", "", "Resume a stored session by ID")
	flag.BoolVar(&flags.verbose, "verbose", false, "Include raw text previews in output")
	flag.BoolVar(&flags.debug, "debug", false, "Enable debug observability output")
	flag.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.recursive, "recursive", false, "Scan directories recursively")
	flag.BoolVar(&flags.webMode, "web", false, "Start the web server instead of scanning files")
	flag.StringVar(&flags.webPort, "port", "", "Web server port")
	flag.BoolVar(&flags.showVersion, "version", false, "Print version information and exit")
	flag.Parse()
	return flags
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		fmt.Println(version.Info())
		return
	}

	cfg := config.LoadConfigOrDefault(flags.configFile)
	applyConfigDefaults(flags, cfg)

	// Disable color when not writing to a terminal.
	if flags.noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	logLevel := slog.LevelWarn
	if flags.verbose || flags.debug {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	var observer *observability.StandardObserver
	if flags.debug {
		observer = observability.NewStandardObserver(observability.ObservabilityDebug, os.Stderr)
		observer.DebugObserver = observability.NewDebugObserver(os.Stderr)
	}

	patterns, err := catalog.NewRegistry(cfg.ExtraLabels())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid field configuration: %v\n", err)
		os.Exit(1)
	}

	engine := extract.NewEngine(patterns)
	reg := registry.New()
	proc := processor.New(engine, document.DefaultReaders(), reg, logger, observer)
	proc.PreviewLength = cfg.Defaults.PreviewLength
	exporter := export.NewService(patterns.FieldNames(), logger)

	// Optional snapshot store; also used to resume a previous session.
	var snapshots *store.Store
	if flags.storePath != "" {
		snapshots, err = store.Open(flags.storePath, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open store: %v\n", err)
			os.Exit(1)
		}
		defer snapshots.Close()

		if flags.sessionID != "" {
			if err := snapshots.Load(context.Background(), flags.sessionID, reg); err != nil {
				fmt.Fprintf(os.Stderr, "Error: cannot resume session %s: %v\n", flags.sessionID, err)
				os.Exit(1)
			}
		}
	}

	if flags.webMode {
		server := web.NewWebServer(flags.webPort, proc, exporter, patterns.FieldNames(), logger)
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: web server failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	files := collectFiles(flag.Args(), flags.recursive)
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: property-scan [options] <file|directory>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	results := proc.ProcessBatch(files)
	failures := reportResults(results)

	keys, records := reg.Snapshot()
	output, err := formatters.Export(flags.outputFormat, keys, records, patterns.FieldNames(), formatters.FormatterOptions{
		Verbose: flags.verbose,
		NoColor: flags.noColor,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flags.outputFile != "" {
		if err := os.WriteFile(flags.outputFile, []byte(output), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot write output file: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println(output)
	}

	if flags.xlsxFile != "" {
		data, err := exporter.ExportXLSX(reg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: XLSX export failed: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(flags.xlsxFile, data, 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot write XLSX file: %v\n", err)
			os.Exit(1)
		}
	}

	if snapshots != nil {
		if err := snapshots.Save(context.Background(), reg, patterns.FieldNames()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot save session snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Session %s saved to %s\n", reg.SessionID, flags.storePath)
	}

	if failures > 0 {
		os.Exit(1)
	}
}

// applyConfigDefaults fills unset flags from the loaded configuration
func applyConfigDefaults(flags *configFlags, cfg *config.Config) {
	if flags.outputFormat == "" {
		flags.outputFormat = cfg.Defaults.Format
	}
	if flags.webPort == "" {
		flags.webPort = cfg.Web.Port
	}
	if flags.storePath == "" {
		flags.storePath = cfg.Store.Path
	}
	flags.verbose = flags.verbose || cfg.Defaults.Verbose
	flags.debug = flags.debug || cfg.Defaults.Debug
	flags.noColor = flags.noColor || cfg.Defaults.NoColor
	flags.recursive = flags.recursive || cfg.Defaults.Recursive
}

// collectFiles expands the positional arguments into a flat, ordered file
// list. Directories contribute their supported files in name order.
func collectFiles(args []string, recursive bool) []string {
	var files []string
	readers := document.DefaultReaders()

	supported := func(path string) bool {
		for _, r := range readers {
			if r.CanRead(path) {
				return true
			}
		}
		return false
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			// Keep unknown paths in the batch so their failure is reported
			// per-file rather than silently dropped.
			files = append(files, arg)
			continue
		}

		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		var dirFiles []string
		if recursive {
			filepath.Walk(arg, func(path string, fi os.FileInfo, err error) error {
				if err == nil && !fi.IsDir() && supported(path) {
					dirFiles = append(dirFiles, path)
				}
				return nil
			})
		} else {
			entries, err := os.ReadDir(arg)
			if err != nil {
				continue
			}
			for _, e := range entries {
				path := filepath.Join(arg, e.Name())
				if !e.IsDir() && supported(path) {
					dirFiles = append(dirFiles, path)
				}
			}
		}
		sort.Strings(dirFiles)
		files = append(files, dirFiles...)
	}
	return files
}

// reportResults prints per-file confirmation lines and returns the number
// of failed documents.
func reportResults(results []processor.FileResult) int {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	failures := 0
	for _, res := range results {
		name := filepath.Base(res.File)
		if res.Err != nil {
			failures++
			red.Fprintf(os.Stderr, "✗ %s: %v\n", name, res.Err)
			continue
		}
		address := res.Record.Address()
		if address == "" {
			address = "no address"
		}
		action := "saved"
		if res.Updated {
			action = "updated"
		}
		green.Fprintf(os.Stderr, "✓ %s: %s %s (%s)\n", name, action, res.Key, address)
	}
	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d documents failed\n", failures, len(results))
	}
	return failures
}
