package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"stringsync/internal/config"
	"stringsync/internal/extract"
	"stringsync/internal/localedir"
	"stringsync/internal/merge"
	"stringsync/internal/policy"
	"stringsync/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync <source-dir>",
		Short: "Regenerate, merge and verify all locale catalogs",
		Long: `Sync runs the full pipeline for every *.lproj folder under <source-dir>:
extract referenced strings from source code, convert the extractor output to
UTF-8, merge it with the committed catalog (preserving translated values,
refreshing comments, pruning removed keys, tagging new entries in
non-development locales), save the merged catalog in place, and decide the
run verdict from the accumulated classification results.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, args[0])
		},
	}

	cmd.Flags().String("tag", "", "Temporary tag prefix marking untranslated values")
	cmd.Flags().String("routine", "", "Marker routine name passed to the extractor")
	cmd.Flags().String("dev", "", "Development locale identifier (e.g. en)")
	cmd.Flags().String("file", "", "Strings file name (default Localizable.strings)")
	cmd.Flags().Int("workers", 0, "Number of concurrent locale pipelines")
	cmd.Flags().Bool("strict", false, "Fail when untranslated or temporary strings remain")
	cmd.Flags().Bool("no-warnings", false, "Suppress the temporary-strings warning")
	cmd.Flags().Bool("fail-on-defaults", true, "Count development-language values equal to their key as untranslated")

	return cmd
}

// syncOptions holds the fully resolved settings for one sync run.
type syncOptions struct {
	sourceDir   string
	stringsFile string
	tag         string
	routine     string
	devFolder   string
	workers     int
	policy      policy.Policy
}

// resolveSyncOptions layers CLI flags over environment-backed defaults.
func resolveSyncOptions(cmd *cobra.Command, sourceDir string) syncOptions {
	cfg := config.Load()

	str := func(name, fallback string) string {
		v, _ := cmd.Flags().GetString(name)
		if v == "" {
			return fallback
		}
		return v
	}

	opts := syncOptions{
		sourceDir:   sourceDir,
		stringsFile: str("file", cfg.StringsFile),
		tag:         str("tag", cfg.TempTag),
		routine:     str("routine", cfg.Routine),
		devFolder:   localedir.DevFolder(str("dev", cfg.DevLocale)),
		workers:     cfg.WorkerCount,
	}
	if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
		opts.workers = n
	}

	strict, _ := cmd.Flags().GetBool("strict")
	quiet, _ := cmd.Flags().GetBool("no-warnings")
	failOnDefaults := cfg.FailOnDefaults
	if cmd.Flags().Changed("fail-on-defaults") {
		failOnDefaults, _ = cmd.Flags().GetBool("fail-on-defaults")
	}
	opts.policy = policy.Policy{
		Strict:           strict,
		SuppressWarnings: quiet,
		FailOnDefaults:   failOnDefaults,
		TempTag:          opts.tag,
	}

	return opts
}

// localeOutcome is one locale pipeline's contribution to the run decision.
type localeOutcome struct {
	dir localedir.Dir
	dev bool
	res *merge.Result
}

// runSync handles the `sync` command.
func runSync(cmd *cobra.Command, sourceDir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	opts := resolveSyncOptions(cmd, sourceDir)

	dirs, err := localedir.Discover(sourceDir)
	if err != nil {
		return asExit(err)
	}
	if len(dirs) == 0 {
		log.Warn().Str("root", sourceDir).Msg("No *.lproj folders detected")
		return nil
	}

	extractor := extract.NewExtractor(opts.routine)
	converter := extract.NewConverter()

	outcomes := worker.Run(ctx, opts.workers, dirs,
		func(ctx context.Context, d localedir.Dir) (*localeOutcome, error) {
			return syncLocale(ctx, d, opts, extractor, converter)
		},
	)

	agg := policy.NewAggregator()
	for _, oc := range outcomes {
		if oc.Err != nil {
			log.Error().Err(oc.Err).Str("locale", oc.Input.Name).Msg("Locale sync failed, skipping")
			continue
		}
		if oc.Value == nil || oc.Value.res == nil {
			continue
		}
		table := filepath.Join(oc.Value.dir.Path, opts.stringsFile)
		printReport(table, oc.Value.res)
		agg.Record(table, oc.Value.res, oc.Value.dev, opts.policy)
	}

	log.Info().
		Int("locales", len(dirs)).
		Int("translated", agg.TranslatedCount()).
		Int("total", agg.TotalCount()).
		Msg("Sync complete")

	return finishRun(agg.Decide(opts.policy))
}

// syncLocale runs the pipeline for one locale folder: stage the committed
// catalog aside, extract, convert, merge, save. Failures skip this locale
// only; the run decision still happens across the rest.
func syncLocale(ctx context.Context, d localedir.Dir, opts syncOptions, extractor *extract.Extractor, converter *extract.Converter) (*localeOutcome, error) {
	original := filepath.Join(d.Path, opts.stringsFile)
	oldPath := original + ".old"
	newPath := original + ".new"
	invalidPath := original + ".invalid"

	// A stranded .old from an interrupted run is the committed catalog
	// itself; put it back before treating anything as junk.
	if fileExists(oldPath) && !fileExists(original) {
		if err := os.Rename(oldPath, original); err != nil {
			return nil, fmt.Errorf("restore stranded catalog: %w", err)
		}
	}
	removeIfExists(oldPath)
	removeIfExists(newPath)

	staged := false
	merged := false
	defer func() {
		removeIfExists(newPath)
		if !staged {
			return
		}
		if merged {
			removeIfExists(oldPath)
			return
		}
		// The merge never completed, so the .old copy is the only
		// surviving copy of the committed catalog. Put it back.
		if err := os.Rename(oldPath, original); err != nil {
			log.Error().Err(err).Str("table", original).Msg("Failed to restore committed catalog")
		}
	}()

	out := &localeOutcome{dir: d, dev: d.IsDevelopment(opts.devFolder)}

	if fileExists(original) {
		enc, err := converter.DetectEncoding(ctx, original)
		if err != nil {
			return nil, err
		}
		switch {
		case extract.IsTextual(enc):
			if err := os.Rename(original, oldPath); err != nil {
				return nil, fmt.Errorf("stage previous catalog: %w", err)
			}
			staged = true
		case fileEmpty(original):
			removeIfExists(original)
		default:
			// Unusable encoding, likely hand-edited. Quarantined for
			// inspection rather than merged against.
			log.Warn().Str("encoding", enc).Str("table", original).Msg("Previous catalog has unusable encoding, quarantining")
			if err := os.Rename(original, invalidPath); err != nil {
				return nil, fmt.Errorf("quarantine previous catalog: %w", err)
			}
		}
	}

	if err := extractor.Extract(ctx, opts.sourceDir, d.Path); err != nil {
		return nil, err
	}

	// The extractor writes UTF-16; the parser wants UTF-8.
	if fileExists(original) {
		if err := converter.ToUTF8(ctx, original, newPath); err != nil {
			return nil, err
		}
	} else if err := os.WriteFile(newPath, nil, 0644); err != nil {
		return nil, fmt.Errorf("create empty extracted table: %w", err)
	}

	// Always merge, even with no previous catalog: first-run entries in
	// non-development locales must come out temporary-tagged, and saving
	// guarantees a .strings file exists so project references stay valid.
	res, err := mergeTables(oldPath, newPath, original, opts.tag, out.dev)
	if err != nil {
		return nil, err
	}
	merged = true
	out.res = res

	log.Info().
		Str("locale", d.Name).
		Bool("development", out.dev).
		Int("strings", res.Total).
		Msg("Catalog merged")

	return out, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func fileEmpty(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() == 0
}

func removeIfExists(path string) {
	if fileExists(path) {
		if err := os.Remove(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Failed to remove temp file")
		}
	}
}
