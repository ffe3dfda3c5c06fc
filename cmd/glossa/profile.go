package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glossa-lang/glossa/internal/profile"
	"github.com/glossa-lang/glossa/internal/prompt"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Create and check conlang profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetUsageTemplate(keysUsageTemplate)
	cmd.AddCommand(
		newProfileInitCmd(),
		newProfileCheckCmd(),
	)
	return cmd
}

func newProfileInitCmd() *cobra.Command {
	var name string
	var force bool
	cmd := &cobra.Command{
		Use:   "init <profile.yaml>",
		Short: "Write a starter profile to edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileInit(cmd, args[0], name, force)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVar(&name, "name", "", "Conlang name (default: derived from the file name)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing profile without asking")
	return cmd
}

func newProfileCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <profile.yaml>",
		Short: "Validate a profile without translating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileCheck(cmd, args[0])
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func runProfileInit(cmd *cobra.Command, path, name string, force bool) error {
	if _, err := os.Stat(path); err == nil {
		confirmed, err := prompt.DefaultConfirmer().ConfirmOverwrite(path, force)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("aborted; %s left unchanged", path)
		}
	}

	if name == "" {
		name = profileNameFromPath(path)
	}
	if err := profile.Default(name).Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote starter profile %q to %s.\n", name, path)
	fmt.Fprintf(cmd.OutOrStdout(), "Its lexicon will live at %s.\n", lexiconPath(path))
	return nil
}

func runProfileCheck(cmd *cobra.Command, path string) error {
	p, err := profile.Load(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d graphemes, %d paradigms, clause order %s)\n",
		p.Name, len(p.Graphemes), len(p.Morphology), p.Syntax.ClauseOrder)
	return nil
}
