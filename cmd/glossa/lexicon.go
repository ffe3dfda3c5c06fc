package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glossa-lang/glossa/internal/lexicon"
	"github.com/glossa-lang/glossa/internal/logger"
)

func newLexiconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect and edit a conlang's word memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetUsageTemplate(keysUsageTemplate)
	cmd.AddCommand(
		newLexiconListCmd(),
		newLexiconSetCmd(),
	)
	return cmd
}

func newLexiconListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <profile.yaml>",
		Short: "List all generated and overridden words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLexiconList(cmd, args[0])
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newLexiconSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <profile.yaml> <lemma> <class> <word>",
		Short: "Set an irregular word, bypassing generation permanently",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLexiconSet(cmd, args[0], args[1], args[2], args[3])
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func runLexiconList(cmd *cobra.Command, profilePath string) error {
	_, cache, err := loadSession(profilePath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	lexemes := cache.Lexemes()
	if len(lexemes) == 0 {
		fmt.Fprintln(out, "The lexicon is empty; translate something first.")
		return nil
	}

	fmt.Fprintf(out, "%-20s %-14s %-16s %s\n", "LEMMA", "CLASS", "WORD", "NOTES")
	for _, lex := range lexemes {
		var notes []string
		if lex.Override {
			notes = append(notes, "override")
		}
		if n := cache.Homonyms(lex.Base); n > 1 {
			notes = append(notes, fmt.Sprintf("homonym x%d", n))
		}
		fmt.Fprintf(out, "%-20s %-14s %-16s %s\n", lex.Lemma, lex.Class.Name(), lex.Base, strings.Join(notes, ", "))
	}
	fmt.Fprintf(out, "\n%d entries\n", len(lexemes))
	return nil
}

func runLexiconSet(cmd *cobra.Command, profilePath, lemma, classArg, word string) error {
	class, err := parseClassArg(classArg)
	if err != nil {
		return err
	}
	if strings.TrimSpace(word) == "" {
		return fmt.Errorf("the word must not be empty")
	}

	_, cache, err := loadSession(profilePath)
	if err != nil {
		return err
	}

	lex := cache.Override(lemma, class, strings.TrimSpace(word))
	if err := lexicon.Save(cache, lexiconPath(profilePath)); err != nil {
		return err
	}

	logger.Info("Override saved", "key", lex.Key().String(), "word", lex.Base)
	fmt.Fprintf(cmd.OutOrStdout(), "%s is now always %q.\n", lex.Key(), lex.Base)
	return nil
}
