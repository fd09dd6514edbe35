package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"

	"bookvert/internal/archive"
	"bookvert/internal/books"
	"bookvert/internal/config"
	"bookvert/internal/interactive"
	"bookvert/internal/journal"
	"bookvert/internal/logging"
	"bookvert/internal/pickpolicy"
	"bookvert/internal/resolve"
	"bookvert/internal/scan"
)

type convertOptions struct {
	Roots          []string
	Out            string
	Name           string
	Picks          []string
	Include        []string
	Skip           []string
	Force          bool
	NonInteractive bool
	DryRun         bool

	Series    string
	Author    string
	Artist    string
	Publisher string
	Genre     string
	Language  string
	Summary   string
	Manga     string
}

// mangaValue maps the accepted --manga spellings onto the ComicInfo
// enum. Empty input leaves the field unset.
func mangaValue(input string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return "", nil
	case "yes":
		return "Yes", nil
	case "no":
		return "No", nil
	case "rtl", "yesandrighttoleft":
		return "YesAndRightToLeft", nil
	default:
		return "", fmt.Errorf("manga %q: must be yes, no, or rtl", input)
	}
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert [dir...]",
		Short: "Group book directories and write one CBZ per catalogue",
		Long: `Convert scans the given directories (default: the working directory) for
book directories, groups them into catalogues by the numbers in their
names, resolves ambiguous catalogues with pick rules or an interactive
prompt, and writes one CBZ archive per catalogue.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts.Roots = args
			if len(opts.Roots) == 0 {
				opts.Roots = []string{"."}
			}

			var prompter interactive.Prompter
			if !opts.NonInteractive && isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
				prompter = interactive.NewConsole(os.Stdin, cmd.OutOrStdout())
			}

			return runConvert(cmd.Context(), cfg, logger, opts, prompter, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Out, "out", "o", "", "Output directory (default: paths.output_dir)")
	flags.StringVar(&opts.Name, "name", "", "Series title (default: derived from directory names)")
	flags.StringArrayVarP(&opts.Picks, "pick", "p", nil, "Pick rule, [from=]to; may repeat or comma-separate")
	flags.StringArrayVar(&opts.Include, "include", nil, "Only convert catalogues in these number ranges")
	flags.StringArrayVar(&opts.Skip, "skip", nil, "Skip directories matching these patterns")
	flags.BoolVarP(&opts.Force, "force", "f", false, "Overwrite existing archives")
	flags.BoolVarP(&opts.NonInteractive, "non-interactive", "n", false, "Fail instead of prompting for ambiguous catalogues")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "Resolve and report without writing archives")
	flags.StringVar(&opts.Series, "series", "", "ComicInfo series (default: the title)")
	flags.StringVar(&opts.Author, "author", "", "ComicInfo writer")
	flags.StringVar(&opts.Artist, "artist", "", "ComicInfo penciller")
	flags.StringVar(&opts.Publisher, "publisher", "", "ComicInfo publisher")
	flags.StringVar(&opts.Genre, "genre", "", "ComicInfo genre")
	flags.StringVar(&opts.Language, "language", "", "ComicInfo language, a BCP 47 tag")
	flags.StringVar(&opts.Summary, "summary", "", "ComicInfo summary")
	flags.StringVar(&opts.Manga, "manga", "", "ComicInfo manga marker: yes, no, or rtl")

	// --writer and --penciller are the ComicInfo field names; accept them
	// as spellings of --author and --artist.
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "writer":
			name = "author"
		case "penciller":
			name = "artist"
		}
		return pflag.NormalizedName(name)
	})

	return cmd
}

func runConvert(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts convertOptions, prompter interactive.Prompter, out io.Writer) error {
	runID := logging.NewRunID()
	ctx = logging.WithRunID(ctx, runID)
	log := logging.NewComponentLogger(logging.WithContext(ctx, logger), "convert")

	rules, err := pickpolicy.Parse(opts.Picks)
	if err != nil {
		return err
	}
	includes, err := pickpolicy.ParseRanges(opts.Include)
	if err != nil {
		return err
	}
	if opts.Language != "" {
		if _, err := language.Parse(opts.Language); err != nil {
			return fmt.Errorf("language %q: %w", opts.Language, err)
		}
	}
	manga, err := mangaValue(opts.Manga)
	if err != nil {
		return err
	}
	opts.Manga = manga

	skip := append([]*regexp.Regexp{}, cfg.SkipPatterns()...)
	for _, pattern := range opts.Skip {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("skip pattern %q: %w", pattern, err)
		}
		skip = append(skip, re)
	}

	found, err := scan.Scan(scan.Options{
		Roots:      opts.Roots,
		Extensions: scan.ExtensionSet(cfg.Scan.ImageExtensions),
		Skip:       skip,
	})
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return fmt.Errorf("no book directories found under %s", strings.Join(opts.Roots, ", "))
	}
	log.Info("scan complete", "roots", strings.Join(opts.Roots, ","), "books", len(found))

	candidates := scan.Candidates(found)
	catalogues := books.Group(candidates)
	if len(includes) > 0 {
		catalogues = filterCatalogues(catalogues, includes)
		if len(catalogues) == 0 {
			return errors.New("include ranges matched no catalogues")
		}
	}

	title := strings.TrimSpace(opts.Name)
	if title == "" {
		title, err = deriveTitle(candidates)
		if err != nil {
			return err
		}
	}

	resolutions := pickpolicy.ResolveAll(catalogues, rules)
	if prompter != nil {
		if err := interactive.Run(resolutions, prompter); err != nil {
			return err
		}
	}

	plan, err := resolve.Aggregate(title, resolutions)
	if err != nil {
		return err
	}

	outputDir := opts.Out
	if outputDir == "" {
		outputDir = cfg.Paths.OutputDir
	}
	outputDir, err = config.ExpandPath(outputDir)
	if err != nil {
		return err
	}

	if !opts.DryRun {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		lock := flock.New(filepath.Join(outputDir, ".bookvert.lock"))
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("lock output directory: %w", err)
		}
		if !locked {
			return fmt.Errorf("another bookvert run is writing to %s", outputDir)
		}
		defer lock.Unlock()
	}

	var store *journal.Store
	var runRow int64
	if !opts.DryRun && strings.TrimSpace(cfg.Paths.JournalDB) != "" {
		store, err = journal.Open(cfg.Paths.JournalDB)
		if err != nil {
			return err
		}
		defer store.Close()
		runRow, err = store.BeginRun(ctx, runID, strings.Join(opts.Roots, ", "), plan.Title)
		if err != nil {
			return err
		}
	}

	bookByPath := make(map[string]*scan.Book, len(found))
	for _, b := range found {
		bookByPath[b.Dir] = b
	}

	var (
		converted int
		rows      [][]string
		buildErrs []error
	)
	for _, entry := range plan.Entries {
		book := bookByPath[entry.Candidate.Path]
		if book == nil {
			return fmt.Errorf("no scanned book for %s", entry.Candidate.Path)
		}
		dest := filepath.Join(outputDir, entry.OutputBase+".cbz")
		rec := journal.Record{
			Book:    entry.Candidate.RawName,
			Archive: dest,
			Pages:   entry.Candidate.PageCount,
			Bytes:   entry.Candidate.Bytes,
		}

		err := archive.Build(book, dest, archive.Options{
			Overwrite: opts.Force || cfg.Archive.OverwriteExisting,
			DryRun:    opts.DryRun,
			Info:      comicInfo(opts, plan.Title, entry),
		})
		switch {
		case errors.Is(err, archive.ErrExists):
			log.Warn("archive exists, skipping", logging.FieldBook, entry.Candidate.RawName, logging.FieldArchive, dest)
			rec.Status = journal.RecordStatusSkipped
			rec.Detail = "archive already exists"
			rows = append(rows, []string{entry.OutputBase, entry.Candidate.RawName, "skipped"})
		case err != nil:
			log.Error("archive failed", logging.FieldBook, entry.Candidate.RawName, logging.Error(err))
			rec.Status = journal.RecordStatusFailed
			rec.Detail = err.Error()
			rows = append(rows, []string{entry.OutputBase, entry.Candidate.RawName, "failed"})
			buildErrs = append(buildErrs, err)
		default:
			converted++
			rec.Status = journal.RecordStatusConverted
			status := "converted"
			if opts.DryRun {
				status = "would convert"
			} else {
				log.Info("archive written", logging.FieldBook, entry.Candidate.RawName, logging.FieldArchive, dest, "pages", entry.Candidate.PageCount)
			}
			rows = append(rows, []string{entry.OutputBase, entry.Candidate.RawName, status})
		}

		if store != nil {
			if err := store.AddRecord(ctx, runRow, rec); err != nil {
				return err
			}
		}
	}

	runErr := errors.Join(buildErrs...)
	if store != nil {
		status := journal.RunStatusCompleted
		if runErr != nil {
			status = journal.RunStatusFailed
		}
		if err := store.FinishRun(ctx, runRow, status, converted, len(plan.Entries), runErr); err != nil {
			return err
		}
	}

	renderTable(out, []string{"Archive", "Source", "Status"}, rows)
	fmt.Fprintf(out, "%d of %d catalogues converted\n", converted, len(plan.Entries))
	return runErr
}

// filterCatalogues keeps catalogues whose number falls inside at least
// one include range.
func filterCatalogues(cats []*books.Catalogue, includes []pickpolicy.Range) []*books.Catalogue {
	var out []*books.Catalogue
	for _, cat := range cats {
		number, hasNumber := cat.Number()
		for _, rng := range includes {
			if rng.Matches(number, hasNumber) {
				out = append(out, cat)
				break
			}
		}
	}
	return out
}

// deriveTitle agrees on a series title from the candidates' directory
// names, or reports the conflicting suggestions.
func deriveTitle(candidates []books.Candidate) (string, error) {
	if title, ok := books.DetectTitle(candidates); ok {
		return books.SuggestTitle(title), nil
	}

	seen := make(map[string]struct{})
	var suggestions []string
	for _, cand := range candidates {
		suggestion := books.SuggestTitle(cand.RawName)
		if _, ok := seen[suggestion]; ok {
			continue
		}
		seen[suggestion] = struct{}{}
		suggestions = append(suggestions, suggestion)
	}
	if len(suggestions) == 1 {
		return suggestions[0], nil
	}
	return "", fmt.Errorf("cannot derive a single title from %s; pass --name", strings.Join(suggestions, ", "))
}

func comicInfo(opts convertOptions, title string, entry resolve.Entry) *archive.ComicInfo {
	series := opts.Series
	if series == "" {
		series = title
	}
	info := &archive.ComicInfo{
		Title:       entry.OutputBase,
		Series:      series,
		Summary:     opts.Summary,
		Writer:      opts.Author,
		Penciller:   opts.Artist,
		Publisher:   opts.Publisher,
		Genre:       opts.Genre,
		LanguageISO: opts.Language,
		Manga:       opts.Manga,
	}
	if number, ok := entry.Catalogue.Number(); ok {
		info.Number = strconv.FormatUint(number, 10)
	}
	return info
}
