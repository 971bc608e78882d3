// Package main provides the CLI entrypoint for xmlbind.
//
// xmlbind is an XML binding compiler: it loads a declarative binding
// manifest, resolves it into a conflict-free binding model (field
// classification, inherited-field composition, polymorphic dispatch
// tables, virtual path trees, converter assignment) and reports every
// mapping problem it finds in one pass.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"xmlbind/internal/diagnostic"
	"xmlbind/internal/meta"
	"xmlbind/internal/resolve"
)

func main() {
	manifestPath := flag.String("manifest", "", "path to the binding manifest (.yaml, .yml or .json)")
	scanMode := flag.String("scan-mode", "", "process-wide default scan mode: common or explicit (overrides the manifest)")
	dump := flag.Bool("dump", false, "dump the resolved binding model to stdout")
	flag.Parse()

	if *manifestPath == "" {
		fmt.Fprintln(os.Stderr, "xmlbind: -manifest is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*manifestPath, *scanMode, *dump); err != nil {
		fmt.Fprintln(os.Stderr, "xmlbind:", err)
		os.Exit(1)
	}
}

func run(manifestPath, scanMode string, dump bool) error {
	manifest, err := meta.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	defaultMode, err := defaultScanMode(manifest, scanMode)
	if err != nil {
		return err
	}

	set, diags := manifest.Descriptors()
	report(diags)

	if diags.HasErrors() {
		return fmt.Errorf("manifest %s is invalid", manifestPath)
	}

	resolver := resolve.New(set, resolve.Config{
		DefaultScanMode: defaultMode,
		Converters:      manifest.Converters,
	})

	binding, resDiags := resolver.Resolve()
	report(resDiags)

	if binding == nil {
		return fmt.Errorf("binding model rejected")
	}

	fmt.Fprintf(os.Stderr, "resolved %d types\n", binding.Len())

	if dump {
		spew.Dump(binding)
	}

	return nil
}

func defaultScanMode(manifest *meta.Manifest, override string) (meta.ScanMode, error) {
	switch override {
	case "":
		return manifest.DefaultScanMode()
	case "common":
		return meta.ScanModeCommonCase, nil
	case "explicit":
		return meta.ScanModeExplicitOnly, nil
	default:
		return meta.ScanModeDefault, fmt.Errorf("unknown scan mode %q (want 'common' or 'explicit')", override)
	}
}

func report(diags *diagnostic.Diagnostics) {
	for _, w := range diags.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	for _, e := range diags.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
	}
}
