// reportviewer opens previously generated chart PNGs in a window, one tab per
// file, with PNG export from the File menu.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iafilius/FabricDefectReport/src/config"
	"github.com/iafilius/FabricDefectReport/src/logging"
	"github.com/iafilius/FabricDefectReport/src/viewer"
)

func main() {
	dir := flag.String("dir", ".", "Directory holding the report charts (used when no files are given)")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()
	if err := logging.SetLevel(*logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	paths := flag.Args()
	if len(paths) == 0 {
		paths = defaultPaths(*dir, config.Default())
	}
	items, err := viewer.LoadItems(paths...)
	if err == nil {
		err = viewer.Show("Fabric Defect Report Viewer", items)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func defaultPaths(dir string, cfg config.Config) []string {
	return []string{
		filepath.Join(dir, cfg.Runtime.File),
		filepath.Join(dir, cfg.Defects.File),
	}
}
