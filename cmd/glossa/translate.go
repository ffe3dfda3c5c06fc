package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glossa-lang/glossa/internal/apperrors"
	"github.com/glossa-lang/glossa/internal/cleanup"
	"github.com/glossa-lang/glossa/internal/files"
	"github.com/glossa-lang/glossa/internal/lexicon"
	"github.com/glossa-lang/glossa/internal/logger"
	"github.com/glossa-lang/glossa/internal/pipeline"
	"github.com/glossa-lang/glossa/internal/tagger"
)

type translateOptions struct {
	basic       bool
	strict      bool
	tree        bool
	noSave      bool
	concurrency int
	useModel    bool
	modelName   string
	allowEnv    bool
	logFilePath string
	debug       bool
}

func newTranslateCmd() *cobra.Command {
	opts := translateOptions{}
	cmd := &cobra.Command{
		Use:   "translate <profile.yaml> [text]",
		Short: "Translate text into the conlang",
		Long: `Translate text into the conlang defined by the profile.

Text may be annotated inline (see#v, dog#n.PL, parenthesized groups) or
plain; plain text is tagged heuristically, or by a Gemini model with
--llm. Untagged words pass through untranslated. Newly invented words
are committed to the profile's lexicon so they stay stable forever.

With no text argument, lines are read from standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Usage()
				return fmt.Errorf("a profile file is required")
			}
			return runTranslate(cmd, args, &opts)
		},
		SilenceUsage: true,
	}

	cmd.SetUsageTemplate(subcommandUsageTemplate)
	addTranslateFlags(cmd, &opts)
	return cmd
}

func addTranslateFlags(cmd *cobra.Command, opts *translateOptions) {
	cmd.Flags().BoolVar(&opts.basic, "basic", false, "Treat input as plain text and tag it (no annotation parsing)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Require valid annotation; never fall back to tagging")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "Print the constituent tree alongside the translation")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "Do not persist newly generated words to the lexicon file")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", pipeline.DefaultConcurrency, "Parallel word generation per request (1-20)")
	cmd.Flags().BoolVar(&opts.useModel, "llm", false, "Tag plain text with a Gemini model instead of the built-in heuristics")
	cmd.Flags().StringVar(&opts.modelName, "model", "gemini-3-flash-preview", "Gemini model name (with --llm)")
	cmd.Flags().BoolVar(&opts.allowEnv, "allow-env", false, "Allow reading the API key from GEMINI_API_KEY")
	cmd.Flags().StringVar(&opts.logFilePath, "log-file", "", "Path to save machine-readable JSONL logs")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
}

func runTranslate(cmd *cobra.Command, args []string, opts *translateOptions) error {
	if opts.basic && opts.strict {
		return fmt.Errorf("--basic and --strict are mutually exclusive")
	}

	logLevel := logger.LevelInfo
	if opts.debug {
		logLevel = logger.LevelDebug
	}
	var logFileW io.Writer
	if opts.logFilePath != "" {
		if err := files.RejectSymlinkPath(opts.logFilePath); err != nil {
			return err
		}
		f, err := os.OpenFile(opts.logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		cleanup.Register(f.Close)
		logFileW = f
	}
	logger.Init(logLevel, logFileW)

	profilePath := args[0]
	prof, cache, err := loadSession(profilePath)
	if err != nil {
		return err
	}

	tag, closeTagger, err := buildTagger(cmd, opts)
	if err != nil {
		return err
	}
	if closeTagger != nil {
		cleanup.Register(closeTagger)
	}

	translator, err := pipeline.New(pipeline.Config{
		Profile:     prof,
		Lexicon:     cache,
		Tagger:      tag,
		Concurrency: opts.concurrency,
	})
	if err != nil {
		return err
	}

	mode := pipeline.ModeAuto
	if opts.basic {
		mode = pipeline.ModeBasic
	}
	if opts.strict {
		mode = pipeline.ModeAnnotated
	}

	ctx, stop := signalContext()
	defer stop()

	grew := false
	translateLine := func(line string) error {
		result, err := translator.Translate(ctx, pipeline.Request{
			Text:        line,
			Mode:        mode,
			IncludeTree: opts.tree,
		})
		if err != nil {
			return describeFailure(err)
		}
		printResult(cmd.OutOrStdout(), result, opts.tree)
		if len(result.NewWords) > 0 {
			grew = true
		}
		return nil
	}

	if len(args) > 1 {
		err = translateLine(strings.Join(args[1:], " "))
	} else {
		err = translateStdin(cmd.InOrStdin(), translateLine)
	}

	// Save whatever was committed even when a later line failed, so the
	// determinism guarantee extends across sessions.
	if grew && !opts.noSave {
		if saveErr := lexicon.Save(cache, lexiconPath(profilePath)); saveErr != nil {
			if err == nil {
				err = saveErr
			} else {
				logger.Error("Failed to save lexicon", "error", saveErr)
			}
		} else {
			logger.Info("Lexicon saved", "path", lexiconPath(profilePath), "entries", cache.Len())
		}
	}

	if err != nil && ctx.Err() != nil {
		logger.Warn("Translation canceled", "error", err)
		return nil
	}
	return err
}

// buildTagger picks the basic-mode tagger. The heuristic tagger is the
// default; --llm swaps in Gemini, which needs an API key.
func buildTagger(cmd *cobra.Command, opts *translateOptions) (tagger.Tagger, func() error, error) {
	if !opts.useModel {
		return tagger.Heuristic{}, nil, nil
	}

	key, source, err := resolveAPIKey(opts.allowEnv)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Using API Key", "service", "gemini", "source", source)

	g, err := tagger.NewGemini(cmd.Context(), key, opts.modelName)
	if err != nil {
		return nil, nil, fmt.Errorf("creating Gemini tagger: %w", err)
	}
	return g, g.Close, nil
}

func translateStdin(in io.Reader, translateLine func(string) error) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := translateLine(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func printResult(out io.Writer, result *pipeline.Result, withTree bool) {
	fmt.Fprintln(out, result.Output)
	if withTree && result.Tree != "" {
		fmt.Fprintf(out, "  tree: %s\n", result.Tree)
	}
	for _, lex := range result.NewWords {
		fmt.Fprintf(out, "  new word: %s = %s\n", lex.Key(), lex.Base)
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintf(out, "  note [%s]: %s\n", d.Kind, d.Message)
	}
}

// describeFailure keeps the kind-specific guidance close to the error.
func describeFailure(err error) error {
	kind, ok := apperrors.KindOf(err)
	if !ok {
		return err
	}
	switch kind {
	case apperrors.KindGeneration:
		return fmt.Errorf("%w\nThe profile's phonotactics cannot produce a valid word; loosen its forbidden sequences or letter cap.", err)
	case apperrors.KindParse:
		return fmt.Errorf("%w\nFix the annotation, or drop annotation entirely to use basic mode.", err)
	default:
		return err
	}
}
