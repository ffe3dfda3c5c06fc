package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/glossa-lang/glossa/internal/auth"
	"github.com/glossa-lang/glossa/internal/grammar"
	"github.com/glossa-lang/glossa/internal/lexicon"
	"github.com/glossa-lang/glossa/internal/logger"
	"github.com/glossa-lang/glossa/internal/profile"
)

var (
	isTerminal   = term.IsTerminal
	getKey       = auth.GetKey
	hasKey       = auth.HasKey
	promptForKey = auth.PromptForAPIKey
)

// lexiconPath derives the lexicon file location from the profile path:
// the profile's base name with a .lexicon.json suffix, in the same
// directory. Keeping them side by side makes a conlang copyable as a
// pair of files.
func lexiconPath(profilePath string) string {
	ext := filepath.Ext(profilePath)
	return strings.TrimSuffix(profilePath, ext) + ".lexicon.json"
}

// loadSession loads the profile and its lexicon for a command run.
func loadSession(profilePath string) (*profile.Profile, *lexicon.Cache, error) {
	p, err := profile.Load(profilePath)
	if err != nil {
		return nil, nil, err
	}
	cache, err := lexicon.Load(lexiconPath(profilePath))
	if err != nil {
		return nil, nil, err
	}
	return p, cache, nil
}

// resolveAPIKey finds the Gemini key for model-assisted tagging.
// Keychain first, environment only when allowed, then an interactive
// prompt as a last resort.
func resolveAPIKey(allowEnv bool) (string, string, error) {
	if key, source := getKey(false); key != "" {
		return key, source, nil
	}
	if allowEnv {
		if key, source := getKey(true); key != "" {
			return key, source, nil
		}
	}

	if isTerminal(int(os.Stdin.Fd())) {
		key, err := promptForKey("Gemini API Key (press Enter to skip): ")
		if err != nil {
			return "", "", fmt.Errorf("error reading API key: %w", err)
		}
		if strings.TrimSpace(key) != "" {
			return strings.TrimSpace(key), "Terminal Prompt", nil
		}
	}

	if !isTerminal(int(os.Stdin.Fd())) {
		return "", "", fmt.Errorf("no API key available (non-interactive shell); set keychain or use --allow-env")
	}
	if allowEnv {
		return "", "", fmt.Errorf("API key is required; not found in keychain or environment")
	}
	return "", "", fmt.Errorf("API key is required; not found in keychain (environment disabled by default; use --allow-env)")
}

// profileNameFromPath derives a conlang name from the profile file name.
func profileNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parseClassArg resolves a user-supplied word class argument.
func parseClassArg(arg string) (grammar.WordClass, error) {
	class, ok := grammar.ParseWordClass(arg)
	if !ok {
		return "", fmt.Errorf("unknown word class %q (use n, v, nm, vm, pro, det, adp or conj)", arg)
	}
	return class, nil
}

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("Cancellation requested")
		cancel()
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
