package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/codalyzer/codalyzer/internal/fileproc"
	"github.com/codalyzer/codalyzer/internal/output"
	"github.com/codalyzer/codalyzer/internal/progress"
	"github.com/codalyzer/codalyzer/internal/provider"
	"github.com/codalyzer/codalyzer/internal/report"
	"github.com/codalyzer/codalyzer/internal/service/analysis"
	"github.com/codalyzer/codalyzer/pkg/models"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Analyze complexity of files or directories (use - for stdin)",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Value:   "auto",
				Usage:   "Source language (auto-detected by default)",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Value:   fileproc.DefaultWorkers,
				Usage:   "Concurrent provider requests for batch analysis",
			},
			&cli.StringFlag{
				Name:  "html",
				Usage: "Write an HTML report to the given file",
			},
		},
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	svc, err := analysis.New(analysis.WithConfig(cfg))
	if err != nil {
		return err
	}
	if !svc.Available() {
		return fmt.Errorf("no API key configured (set CODALYZER_API_KEY or GEMINI_API_KEY)")
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	// Stdin mode: one snippet, one result.
	if c.Args().Len() == 1 && c.Args().First() == "-" {
		code, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}

		spinner := progress.NewSpinner("Analyzing...")
		result, err := svc.Analyze(ctx, provider.Request{
			Code:     string(code),
			Filename: "untitled",
			Language: c.String("language"),
		})
		if err != nil {
			spinner.FinishError(err)
			return err
		}
		spinner.FinishSuccess()

		return outputResults(c, formatter, svc.Model(), []*models.AnalysisResult{result})
	}

	paths := getPaths(c)
	total, err := svc.CountFiles(paths)
	if err != nil {
		return err
	}
	if total == 0 {
		color.Yellow("No source files found")
		return nil
	}

	tracker := progress.NewTracker("Analyzing files...", total)
	results, errs, err := svc.AnalyzeFiles(ctx, paths, analysis.BatchOptions{
		Workers:    c.Int("workers"),
		OnProgress: tracker.Tick,
	})
	tracker.FinishSuccess()
	if err != nil {
		return err
	}

	if err := outputResults(c, formatter, svc.Model(), results); err != nil {
		return err
	}

	if errs != nil && errs.HasErrors() && formatter.Format() == output.FormatText {
		fmt.Println()
		color.Yellow("Failed (%d):", len(errs.Errors))
		for _, pe := range errs.Errors {
			fmt.Printf("  - %s\n", pe.Error())
		}
	}
	return nil
}

func outputResults(c *cli.Context, formatter *output.Formatter, model string, results []*models.AnalysisResult) error {
	if htmlPath := c.String("html"); htmlPath != "" {
		if err := writeHTMLReport(htmlPath, model, results); err != nil {
			return err
		}
		formatter.Success("HTML report written to %s", htmlPath)
	}

	if formatter.Format() == output.FormatJSON {
		return formatter.Output(results)
	}

	for _, result := range results {
		if err := formatter.Output(report.Build(result)); err != nil {
			return err
		}
	}
	return nil
}

func writeHTMLReport(path, model string, results []*models.AnalysisResult) error {
	renderer, err := report.NewRenderer()
	if err != nil {
		return err
	}

	flat := make([]models.AnalysisResult, 0, len(results))
	for _, r := range results {
		flat = append(flat, *r)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	return renderer.RenderHTML(f, model, flat)
}
