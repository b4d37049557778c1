// Package main provides the entry point for the cover letter agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coverletter_agent",
	Short: "Tailored cover letter generator",
	Long:  "Generates a tailored, humanized cover letter from a resume PDF and a job posting, renders it to PDF, and merges it with the resume into one application document.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
