package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codemerge/pkg/language"
	"codemerge/pkg/logging"
	"codemerge/pkg/merge"
	"codemerge/pkg/version"
)

var (
	flagOutput     string
	flagLanguages  []string
	flagPatterns   []string
	flagIgnore     []string
	flagSplitKB    int
	flagThreads    int
	flagForce      bool
	flagLogLevel   string
	flagLogFile    string
	flagLangFile   string
	flagNoProgress bool
)

// RootCmd is the merge operation itself: codemerge SOURCE_DIR [flags].
var RootCmd = &cobra.Command{
	Use:   "codemerge SOURCE_DIR",
	Short: "Merge source files into Markdown documents",
	Long: `Codemerge discovers source files under a directory tree, filters them by
language and glob patterns, and concatenates their contents into one or
more Markdown documents with per-file headers and language-tagged code
fences, splitting the output when it exceeds a configured size.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runMerge,
}

func init() {
	RootCmd.Flags().StringVarP(&flagOutput, "output", "o", "merged_code.md", "Output Markdown file")
	RootCmd.Flags().StringSliceVarP(&flagLanguages, "languages", "l", nil, "Languages to include (e.g. python, go)")
	RootCmd.Flags().StringSliceVarP(&flagPatterns, "patterns", "p", nil, "Glob patterns to include (e.g. '*.cpp', '*test*.py')")
	RootCmd.Flags().StringSliceVar(&flagIgnore, "ignore", nil, "Glob patterns for files or directories to exclude")
	RootCmd.Flags().IntVarP(&flagSplitKB, "split-size", "s", 0, "Split threshold in KB; 0 writes a single document")
	RootCmd.Flags().IntVarP(&flagThreads, "threads", "t", merge.DefaultWorkers, "Number of concurrent file readers")
	RootCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Overwrite existing output files without asking")
	RootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	RootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Also write a DEBUG log to this file, rotated at 10 MB")
	RootCmd.Flags().StringVar(&flagLangFile, "languages-file", "", "YAML file extending the built-in language table")
	RootCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "Disable the progress bar")
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

func runMerge(cmd *cobra.Command, args []string) error {
	logger, err := logging.Setup(flagLogLevel, flagLogFile, "codemerge", version.Get().Version)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logging.SafeSync(logger)

	table := language.Builtin()
	if flagLangFile != "" {
		if table, err = language.Load(flagLangFile); err != nil {
			logger.Error("Failed to load languages file", zap.String("path", flagLangFile), zap.Error(err))
			return err
		}
	}

	// Resolve the overwrite decision up front so the core never has to
	// prompt: when artifacts exist we ask once, then clear them.
	force := flagForce
	existing, err := merge.CheckExisting(flagOutput)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		if !force {
			ok, promptErr := promptUser(fmt.Sprintf(
				"The following output files already exist: %s\nOverwrite? (y/n): ",
				strings.Join(existing, ", ")))
			if promptErr != nil {
				return fmt.Errorf("failed to read user input: %w", promptErr)
			}
			if !ok {
				logger.Info("Merge cancelled by user")
				return nil
			}
		}
		if err := merge.RemoveArtifacts(existing, logger); err != nil {
			logger.Error("Failed to remove existing artifacts", zap.Error(err))
			return err
		}
		force = true
	}

	summary, err := merge.Run(cmd.Context(), merge.Arguments{
		SourceDir:      args[0],
		Output:         flagOutput,
		Languages:      flagLanguages,
		Patterns:       flagPatterns,
		IgnorePatterns: flagIgnore,
		SplitSizeKB:    flagSplitKB,
		Workers:        flagThreads,
		Force:          force,
		Table:          table,
		Reporter:       merge.NewReporter(!flagNoProgress),
	}, logger)
	if err != nil {
		logger.Error("Merge failed", zap.Error(err))
		return err
	}

	if summary.Units > 0 {
		fmt.Printf("Merged %d files into %s (%d bytes)\n",
			summary.Included, strings.Join(summary.Artifacts, ", "), summary.TotalBytes)
	}
	return nil
}

// promptUser displays a message and waits for the user to enter 'y' or 'n'.
// Returns true if the user enters 'y' or 'yes' (case-insensitive).
func promptUser(message string) (bool, error) {
	fmt.Print(message)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
