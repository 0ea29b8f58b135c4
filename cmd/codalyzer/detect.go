package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/codalyzer/codalyzer/internal/output"
	"github.com/codalyzer/codalyzer/pkg/detect"
)

func detectCmd() *cli.Command {
	return &cli.Command{
		Name:      "detect",
		Usage:     "Detect the source language of files (use - for stdin)",
		ArgsUsage: "<path...>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "extension-only",
				Usage: "Resolve by file extension only, skip content heuristics",
			},
		},
		Action: runDetectCmd,
	}
}

func runDetectCmd(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("detect requires at least one file path (or - for stdin)")
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	type detection struct {
		File     string `json:"file"`
		Language string `json:"language"`
	}

	var rows [][]string
	var detections []detection
	for _, path := range c.Args().Slice() {
		var language string
		switch {
		case path == "-":
			code, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			language = detect.Detect("untitled", string(code))
		case c.Bool("extension-only"):
			language = detect.ByExtension(path)
		default:
			code, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			language = detect.Detect(path, string(code))
		}

		if language == "" {
			language = "unknown"
		}
		rows = append(rows, []string{path, language})
		detections = append(detections, detection{File: path, Language: language})
	}

	table := output.NewTable(
		"Language Detection",
		[]string{"File", "Language"},
		rows,
		nil,
		detections,
	)
	return formatter.Output(table)
}
