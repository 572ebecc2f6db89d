// Package main provides the suitelint binary, a standalone checker for
// suite documents. It runs the same validation the import endpoint uses,
// so authors can lint a file before uploading it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courseloom/courseloom-backend/internal/suite"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "suitelint <file.json>",
		Short: "Validate a suite document",
		Long: `Suitelint checks a suite document against the upload rules:
suite metadata, question fields, option counts, difficulty, type and
tag enums. It reports the first violation it finds, in the same order
the import endpoint checks them.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return lint(args[0], quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the summary on success")
	return cmd
}

func lint(path string, quiet bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if err := suite.CheckUpload(path, "application/json", info.Size()); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	doc, err := suite.Parse(data)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("%s: ok (%q, %d questions, %d keywords)\n",
			path, doc.Title, len(doc.Questions), len(doc.Keywords))
	}
	return nil
}
