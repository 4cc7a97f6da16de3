package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kontheocharis/katla-locations/pkg/generate"
	"github.com/kontheocharis/katla-locations/pkg/logging"
	"github.com/kontheocharis/katla-locations/pkg/tag"
)

var (
	outputDir   string
	dryRun      bool
	katlaPath   string
	grammarPath string
	colorMode   string
	verbosity   int
)

var rootCmd = &cobra.Command{
	Use:   "katla-gen [flags] SRC_FILE TTM_FILE [SRC_FILE TTM_FILE ...]",
	Short: "Generate katla LaTeX macros from source locations in annotated files",
	Long: `katla-gen extracts named snippets from annotated source files and runs
katla once per snippet, concatenating the generated LaTeX macros into a
single file.

Files are given as pairs: each source file is followed by its .ttm
metadata file produced by the compiler. Snippets are delimited either by
standalone comment marker lines (-- <name> ... -- </name>) or by inline
marker pairs ({- <name> -}...{- </name> -}) within one line.`,
	Args:         cobra.MinimumNArgs(2),
	RunE:         runGenerate,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory for the combined macro file")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print snippets and planned katla invocations without running katla")
	rootCmd.Flags().StringVar(&katlaPath, "katla", "katla", "Path to the katla binary")
	rootCmd.Flags().StringVar(&grammarPath, "grammar", "", "Path to a YAML file overriding the annotation marker set")
	rootCmd.Flags().StringVar(&colorMode, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (repeatable)")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logging.Setup(verbosity)

	if len(args)%2 != 0 {
		return fmt.Errorf("files must be provided in pairs of SRC_FILE and TTM_FILE")
	}
	if !dryRun && outputDir == "" {
		return fmt.Errorf("--output-dir is required unless --dry-run is set")
	}

	grammar := tag.DefaultGrammar()
	if grammarPath != "" {
		g, err := tag.LoadGrammarFile(grammarPath)
		if err != nil {
			return fmt.Errorf("loading grammar: %w", err)
		}
		grammar = g
	}
	matcher, err := tag.NewMatcher(grammar)
	if err != nil {
		return fmt.Errorf("compiling grammar: %w", err)
	}

	pairs := make([]generate.FilePair, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		pairs = append(pairs, generate.FilePair{Source: args[i], Metadata: args[i+1]})
	}

	config := generate.Config{
		Matcher:   matcher,
		KatlaPath: katlaPath,
		DryRun:    dryRun,
	}
	if dryRun {
		config.Observer = newSnippetDumper(cmd.OutOrStdout(), colorEnabled(colorMode)).dump
	}

	result := generate.New(config).Run(context.Background(), pairs)

	if dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "\nWould generate combined macro file with %d snippets\n", result.Total)
		return nil
	}

	path, err := generate.WriteDocument(outputDir, result.Document)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated combined macro file: %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Processed %d/%d snippets successfully\n", result.Succeeded, result.Total)

	if !result.Complete() {
		return fmt.Errorf("%d of %d snippets failed", result.Total-result.Succeeded, result.Total)
	}
	return nil
}
