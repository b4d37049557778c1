package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/coverletter-agent/internal/app"
	"github.com/jonathan/coverletter-agent/internal/config"
	"github.com/jonathan/coverletter-agent/internal/observability"
	"github.com/jonathan/coverletter-agent/internal/pipeline"
	"github.com/jonathan/coverletter-agent/internal/types"
)

var generateFlags struct {
	resumePath   string
	jobURL       string
	title        string
	company      string
	description  string
	instructions string
	outPath      string
	configPath   string
	useBrowser   bool
	useStrategy  bool
	verbose      bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one application document",
	Long:  `Run the full pipeline once: read the resume, resolve the job, draft and humanize the letter, and write the merged PDF to disk.`,
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateFlags.resumePath, "resume", "", "Path to the resume PDF (required)")
	f.StringVar(&generateFlags.jobURL, "job-url", "", "Job posting URL")
	f.StringVar(&generateFlags.title, "title", "", "Job title (manual mode)")
	f.StringVar(&generateFlags.company, "company", "", "Company name (manual mode)")
	f.StringVar(&generateFlags.description, "description", "", "Job description text (manual mode)")
	f.StringVar(&generateFlags.instructions, "instructions", "", "Extra instructions for this application")
	f.StringVar(&generateFlags.outPath, "out", "", "Output path for the merged PDF (defaults to the output directory)")
	f.StringVar(&generateFlags.configPath, "config", "", "Path to a JSON config file")
	f.BoolVar(&generateFlags.useBrowser, "use-browser", false, "Fall back to a headless browser for JS-heavy job pages")
	f.BoolVar(&generateFlags.useStrategy, "use-strategy", false, "Run the strategy pre-pass before drafting")
	f.BoolVarP(&generateFlags.verbose, "verbose", "v", false, "Print intermediate results")

	generateCmd.MarkFlagRequired("resume") //nolint:errcheck
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if generateFlags.configPath != "" {
		fileCfg, err := config.LoadFile(generateFlags.configPath)
		if err != nil {
			return err
		}
		merged := fileCfg.MergeWithDefaults(*cfg)
		cfg = &merged
	}
	cfg.UseBrowser = generateFlags.useBrowser
	cfg.UseStrategy = generateFlags.useStrategy
	cfg.Verbose = generateFlags.verbose

	if err := cfg.Validate(); err != nil {
		return err
	}

	resumeBytes, err := os.ReadFile(generateFlags.resumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	ctx := context.Background()
	runtime, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer runtime.Close()

	printer := observability.NewPrinter(os.Stdout)

	result, err := runtime.Pipeline.Run(ctx, pipeline.RunOptions{
		Resume: resumeBytes,
		Job: types.JobRequest{
			URL:         generateFlags.jobURL,
			Title:       generateFlags.title,
			Company:     generateFlags.company,
			Description: generateFlags.description,
		},
		Instructions: generateFlags.instructions,
		OnProgress: func(e pipeline.ProgressEvent) {
			if e.Message != "" {
				fmt.Println(e.Message)
			}
		},
	})
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer.PrintJobPosting(result.Job)
		printer.PrintLetter(result.Letter)
		printer.PrintOutput(result.Output)
	}

	outPath := generateFlags.outPath
	if outPath == "" {
		outPath = result.Output.Filename
	}
	if err := os.WriteFile(outPath, result.Output.PDFBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Printf("Wrote %s (%d pages)\n", outPath, result.Output.PageCount)
	return nil
}
