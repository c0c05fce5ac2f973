package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/personalplanner/planner/internal/evolution"
	"github.com/personalplanner/planner/internal/logging"
	"github.com/personalplanner/planner/internal/report"
	"github.com/personalplanner/planner/internal/source"
	"github.com/personalplanner/planner/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	// stdout only carries the written paths
	log.SetOutput(os.Stderr)
	log.SetLevel(logging.GetLevel(os.Getenv("PLANNER_LOG_LEVEL")))

	written, err := run(os.Args[1:], time.Now)
	if err != nil {
		log.Errorf("report: %s", err)
		os.Exit(1)
	}
	for _, path := range written {
		fmt.Println(path)
	}
}

// run renders the report (and optionally the evolution workbook) for a bundle file
// and returns the paths it wrote.
func run(args []string, clock func() time.Time) ([]string, error) {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	input := fs.String("input", "", "path of the student bundle JSON file")
	outDir := fs.String("out", ".", "output directory")
	tz := fs.String("tz", "America/Sao_Paulo", "timezone for the report dates")
	withWorkbook := fs.Bool("xlsx", false, "also export the evolution chart workbook")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *input == "" {
		return nil, fmt.Errorf("-input is required")
	}

	location, err := time.LoadLocation(*tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone [%s]: %w", *tz, err)
	}

	if err := ensureDir(*outDir); err != nil {
		return nil, err
	}

	bundle, err := readBundle(*input)
	if err != nil {
		return nil, err
	}

	composer := report.NewComposer(report.ComposerParams{
		Clock:    clock,
		Location: location,
	})
	doc := composer.Compose(bundle.ReportInput())

	pdfPath := filepath.Join(*outDir, doc.FileName)
	if err := writeFile(pdfPath, func(w io.Writer) error {
		return report.RenderPDF(doc, w)
	}); err != nil {
		return nil, err
	}
	log.Debugf("report written to [%s]", pdfPath)
	written := []string{pdfPath}

	if *withWorkbook {
		view := evolution.BuildView(bundle.Evolutions, bundle.Student.Goal)
		xlsxPath := filepath.Join(*outDir, report.WorkbookFileName(bundle.Student.Name, clock()))
		if err := writeFile(xlsxPath, func(w io.Writer) error {
			return report.RenderWorkbook(view, w)
		}); err != nil {
			return written, err
		}
		log.Debugf("evolution workbook written to [%s]", xlsxPath)
		written = append(written, xlsxPath)
	}

	return written, nil
}

func ensureDir(dir string) error {
	exists, err := pkg.PathExists(dir, true)
	if err != nil {
		return fmt.Errorf("check output dir: %w", err)
	}
	if exists {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

func readBundle(path string) (*source.Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("close bundle file: %s", err)
		}
	}()

	return source.DecodeBundle(f)
}

func writeFile(path string, render func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	if err := render(f); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
