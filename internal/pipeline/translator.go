package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/glossa-lang/glossa/internal/annotate"
	"github.com/glossa-lang/glossa/internal/apperrors"
	"github.com/glossa-lang/glossa/internal/lexicon"
	"github.com/glossa-lang/glossa/internal/logger"
	"github.com/glossa-lang/glossa/internal/morphology"
	"github.com/glossa-lang/glossa/internal/synthesis"
	"github.com/glossa-lang/glossa/internal/syntax"
)

// Translator runs the end-to-end pipeline for one conlang. It is safe
// for concurrent use: the lexicon serializes its own mutations and every
// other stage is a pure function of the immutable profile.
type Translator struct {
	cfg        Config
	generator  *synthesis.Generator
	morph      *morphology.Engine
	transducer *syntax.Transducer
}

// New validates the config and builds a translator. Concurrency is
// normalized silently; call Config.Normalize first to surface the notes.
func New(cfg Config) (*Translator, error) {
	cfg, _ = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Config(err)
	}

	morph := morphology.New(cfg.Profile)
	return &Translator{
		cfg:        cfg,
		generator:  synthesis.NewGenerator(cfg.Profile),
		morph:      morph,
		transducer: syntax.NewTransducer(cfg.Profile.Syntax, morph),
	}, nil
}

// Translate runs one request through the pipeline. Words already in the
// lexicon reuse their committed base form; new words are generated at
// most once each, even across concurrent calls. Non-fatal morphology
// gaps are collected on the result instead of failing the request.
func (t *Translator) Translate(ctx context.Context, req Request) (*Result, error) {
	// Request IDs correlate the log lines of interleaved concurrent calls.
	reqID := uuid.NewString()
	result := &Result{}
	logger.Debug("translation requested", "request_id", reqID, "mode", req.Mode, "chars", len(req.Text))

	tokens, err := t.tokens(ctx, req, result)
	if err != nil {
		return nil, err
	}

	root, err := syntax.Build(tokens)
	if err != nil {
		return nil, apperrors.Structure(err)
	}

	leaves := root.Leaves(nil)
	newWords, err := t.resolve(ctx, leaves)
	if err != nil {
		return nil, err
	}
	result.NewWords = newWords

	for _, leaf := range leaves {
		if leaf.Base == "" {
			// Punctuation and untagged words pass through unchanged.
			leaf.Form = leaf.Token.Surface
			continue
		}
		form, gaps := t.morph.Inflect(leaf.Base, leaf.Token.Class, leaf.Token.Attrs)
		leaf.Form = form
		t.recordGaps(result, gaps)
	}

	ordered, gaps := t.transducer.Transduce(root)
	t.recordGaps(result, gaps)

	result.Output = render(ordered)
	if req.IncludeTree {
		result.Tree = root.String()
	}

	logger.Debug("translation complete",
		"request_id", reqID,
		"tokens", len(tokens),
		"new_words", len(result.NewWords),
		"diagnostics", len(result.Diagnostics))
	return result, nil
}

// tokens produces the token sequence for the request's mode.
func (t *Translator) tokens(ctx context.Context, req Request, result *Result) ([]annotate.Token, error) {
	mode := req.Mode
	if mode == "" {
		mode = ModeAuto
	}

	switch mode {
	case ModeAnnotated:
		tokens, err := annotate.Parse(req.Text)
		if err != nil {
			return nil, apperrors.Parse(err)
		}
		return tokens, nil

	case ModeBasic:
		if t.cfg.Tagger == nil {
			return nil, apperrors.Config(fmt.Errorf("basic mode requested but no tagger is configured"))
		}
		return t.cfg.Tagger.Tag(ctx, req.Text)

	case ModeAuto:
		tokens, err := annotate.Parse(req.Text)
		if err == nil {
			return tokens, nil
		}
		if t.cfg.Tagger == nil {
			return nil, apperrors.Parse(err)
		}
		logger.Debug("annotation parse failed, falling back to tagger", "error", err)
		tokens, tagErr := t.cfg.Tagger.Tag(ctx, req.Text)
		if tagErr != nil {
			// The fallback failing is secondary; the parse error is what
			// the user can act on.
			return nil, apperrors.Parse(err)
		}
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Kind:    DiagTaggerFallback,
			Message: fmt.Sprintf("input was not valid annotation (%v); tagged heuristically instead", err),
		})
		return tokens, nil

	default:
		return nil, apperrors.Config(fmt.Errorf("unknown mode %q", mode))
	}
}

// resolve fills every classed word leaf's Base from the lexicon,
// generating missing entries. Distinct keys resolve in parallel; the
// cache's reservation protocol guarantees one generation per key no
// matter how many leaves or concurrent requests share it.
func (t *Translator) resolve(ctx context.Context, leaves []*syntax.Node) ([]lexicon.Lexeme, error) {
	byKey := make(map[lexicon.Key][]*syntax.Node)
	for _, leaf := range leaves {
		if leaf.Token.Kind != annotate.Word || !leaf.Token.Class.Known() {
			continue
		}
		key := lexicon.NewKey(leaf.Token.Lemma, leaf.Token.Class)
		byKey[key] = append(byKey[key], leaf)
	}
	if len(byKey) == 0 {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		created []lexicon.Lexeme
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.cfg.Concurrency)
	for key, group := range byKey {
		key, group := key, group
		g.Go(func() error {
			lex, reservation, err := t.cfg.Lexicon.LookupOrReserve(gctx, key.Lemma, key.Class)
			if err != nil {
				return err
			}
			if reservation != nil {
				word, genErr := t.generator.Generate(key.Lemma, key.Class)
				if genErr != nil {
					reservation.Abandon()
					return apperrors.Generation(genErr)
				}
				if gctx.Err() != nil {
					// Cancelled mid-generation: leave the key uncommitted
					// so a later request can generate it.
					reservation.Abandon()
					return gctx.Err()
				}
				lex = reservation.Commit(word.Form)
				logger.Debug("generated word", "key", key.String(), "base", lex.Base)
				mu.Lock()
				created = append(created, lex)
				mu.Unlock()
			}
			for _, leaf := range group {
				leaf.Base = lex.Base
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(created, func(i, j int) bool { return created[i].Lemma < created[j].Lemma })
	return created, nil
}

func (t *Translator) recordGaps(result *Result, gaps []morphology.Gap) {
	for _, gap := range gaps {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Kind:    DiagMorphologyGap,
			Message: gap.String(),
		})
	}
}

// render joins leaf forms with spaces, attaching punctuation to the
// preceding word.
func render(leaves []*syntax.Node) string {
	var b strings.Builder
	for _, leaf := range leaves {
		form := leaf.Form
		if form == "" {
			continue
		}
		if b.Len() > 0 && leaf.Token.Kind != annotate.Punct {
			b.WriteByte(' ')
		}
		b.WriteString(form)
	}
	return b.String()
}
