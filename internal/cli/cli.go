package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"stringsync/internal/catalog"
	"stringsync/internal/config"
	"stringsync/internal/merge"
	"stringsync/internal/policy"
	"stringsync/internal/textutil"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Exit codes surfaced to the build system.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUsage       = 2
	ExitMissingFile = 3
	ExitIncomplete  = 4
)

// exitError carries a process exit code alongside the cause.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitWith(code int, format string, args ...any) *exitError {
	return &exitError{code: code, err: fmt.Errorf(format, args...)}
}

// asExit maps an internal error onto its exit code.
func asExit(err error) *exitError {
	if errors.Is(err, fs.ErrNotExist) {
		return &exitError{code: ExitMissingFile, err: err}
	}
	return &exitError{code: ExitError, err: err}
}

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "stringsync",
		Short: "Incremental localization sync for .strings catalogs",
		Long: `Regenerates .strings catalogs from source code references, merges each one
against the previously committed catalog per locale, and reports translation
completeness. Intended to run as a build phase: warnings and errors are
printed in a form the build log picks up.`,
	}

	rootCmd.AddCommand(syncCmd())
	rootCmd.AddCommand(mergeCmd())

	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(ExitUsage)
	}
}

func mergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <old> <new> <output>",
		Short: "Merge a committed table with a freshly extracted one",
		Long: `Merges the previously committed table <old> with the freshly extracted
table <new> and writes the result to <output>. A missing or malformed <old>
is treated as an empty table; a missing <new> is an error (the extraction
must have failed upstream).`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, args[0], args[1], args[2])
		},
	}

	cmd.Flags().String("tag", "", "Temporary tag prefix marking untranslated values")
	cmd.Flags().Bool("dev-language", false, "Treat the table as the development language")
	cmd.Flags().Bool("strict", false, "Fail when untranslated or temporary strings remain")
	cmd.Flags().Bool("no-warnings", false, "Suppress the temporary-strings warning")

	return cmd
}

// runMerge handles the `merge` command.
func runMerge(cmd *cobra.Command, oldPath, newPath, outPath string) error {
	cfg := config.Load()

	tag, _ := cmd.Flags().GetString("tag")
	if tag == "" {
		tag = cfg.TempTag
	}
	dev, _ := cmd.Flags().GetBool("dev-language")
	strict, _ := cmd.Flags().GetBool("strict")
	quiet, _ := cmd.Flags().GetBool("no-warnings")

	res, err := mergeTables(oldPath, newPath, outPath, tag, dev)
	if err != nil {
		return asExit(err)
	}

	printReport(outPath, res)

	pol := policy.Policy{
		Strict:           strict,
		SuppressWarnings: quiet,
		FailOnDefaults:   cfg.FailOnDefaults,
		TempTag:          tag,
	}
	agg := policy.NewAggregator()
	agg.Record(outPath, res, dev, pol)
	return finishRun(agg.Decide(pol))
}

// mergeTables loads both tables, merges them, and saves the result. A
// missing or malformed previous table falls back to an empty one; a missing
// extracted table is the caller's problem.
func mergeTables(oldPath, newPath, outPath, tag string, dev bool) (*merge.Result, error) {
	old, err := catalog.Load(oldPath)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, catalog.ErrMalformed):
		log.Warn().Err(err).Str("table", oldPath).Msg("Previous catalog unusable, starting empty")
		old = catalog.New()
	default:
		return nil, fmt.Errorf("load previous table: %w", err)
	}

	fresh, err := catalog.Load(newPath)
	if err != nil {
		return nil, fmt.Errorf("load extracted table: %w", err)
	}

	merged, res := merge.Merge(old, fresh, merge.Options{
		TempTag:             tag,
		DevelopmentLanguage: dev,
	})

	if err := merged.Save(outPath); err != nil {
		return nil, err
	}
	return res, nil
}

// printReport writes one table's classification lines and summary to stdout.
func printReport(table string, res *merge.Result) {
	fmt.Printf("+ %s\n", table)
	fmt.Printf("    # %d %s generated\n", res.Total, textutil.Plural(res.Total, "string"))
	for _, line := range res.Lines() {
		fmt.Println(line)
	}
	for _, line := range res.Summary() {
		fmt.Println(line)
	}
	fmt.Println()
}

// finishRun emits the run verdict in the form the build log picks up.
func finishRun(outcome policy.Outcome) error {
	switch outcome.Status {
	case policy.Failure:
		fmt.Printf("error: %s\n", outcome.Message)
		return exitWith(ExitIncomplete, "translations incomplete")
	case policy.Warning:
		fmt.Printf("warning: %s\n", outcome.Message)
	}
	return nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}
