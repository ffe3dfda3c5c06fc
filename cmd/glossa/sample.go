package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glossa-lang/glossa/internal/grammar"
	"github.com/glossa-lang/glossa/internal/profile"
	"github.com/glossa-lang/glossa/internal/synthesis"
)

type sampleOptions struct {
	class string
	count int
	seed  string
}

func newSampleCmd() *cobra.Command {
	opts := sampleOptions{}
	cmd := &cobra.Command{
		Use:   "sample <profile.yaml>",
		Short: "Preview words the profile's phonology would generate",
		Long: `Generate sample words without touching the lexicon, for tuning a
profile's phoneme inventory, syllable shapes and length tables. Samples
are deterministic; change --seed to see a different batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(cmd, args[0], &opts)
		},
		SilenceUsage: true,
	}

	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVar(&opts.class, "class", "n", "Word class to sample (affects word length)")
	cmd.Flags().IntVar(&opts.count, "count", 10, "Number of words to generate")
	cmd.Flags().StringVar(&opts.seed, "seed", "", "Sample batch seed (default: the profile's own seed)")
	return cmd
}

func runSample(cmd *cobra.Command, profilePath string, opts *sampleOptions) error {
	prof, err := profile.Load(profilePath)
	if err != nil {
		return err
	}
	class, err := parseClassArg(opts.class)
	if err != nil {
		return err
	}
	if opts.count < 1 || opts.count > 1000 {
		return fmt.Errorf("count must be between 1 and 1000")
	}
	if opts.seed != "" {
		prof.Seed = opts.seed
	}

	gen := synthesis.NewGenerator(prof)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s samples for %s (%s):\n", prof.Name, class.Name(), describeLengths(class))
	for i := 0; i < opts.count; i++ {
		// Synthetic lemmas keep samples out of the real lexicon keyspace.
		word, err := gen.Generate(fmt.Sprintf("\x00sample-%d", i), class)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-14s %s\n", word.Form, shapes(word))
	}
	return nil
}

func describeLengths(class grammar.WordClass) string {
	if class.IsContent() {
		return "content length table"
	}
	return "function length table"
}

func shapes(w synthesis.Word) string {
	s := ""
	for i, syl := range w.Syllables {
		if i > 0 {
			s += "."
		}
		s += syl.Shape
	}
	return s
}
