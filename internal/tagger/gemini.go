package tagger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/glossa-lang/glossa/internal/annotate"
	"github.com/glossa-lang/glossa/internal/apperrors"
)

// requestTimeout bounds a single tagging call; the genai client carries
// no HTTP timeout of its own.
const requestTimeout = 60 * time.Second

const systemInstruction = `You are a linguistic annotator. Annotate the user's text with this inline syntax:
- append #n (noun), #v (verb), #nm (noun modifier), #vm (verb modifier), #pro (pronoun), #det (determiner), #adp (adposition) or #conj (conjunction) to each word
- append attribute suffixes after the class tag: .PST .PRS .FUT .SG .PL .NEG .DEF
- replace inflected words with their dictionary form (answers -> answer#n.PL, found -> find#v.PST); auxiliaries like "will" become an attribute on their verb and are removed
- wrap each phrase in parentheses, at most one group inside another
- keep punctuation as-is and never add, drop or reorder words otherwise
Respond with JSON: {"annotated": "..."}`

// request is the JSON payload sent to the model.
type request struct {
	Text string `json:"text"`
}

// response is the JSON document the model is instructed to return.
type response struct {
	Annotated string `json:"annotated"`
}

// Gemini tags text with a Gemini model. It satisfies Tagger; the model's
// output is parsed with the regular annotation parser, so a malformed
// reply fails the same way malformed user annotation would.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

var _ Tagger = (*Gemini)(nil)

// NewGemini creates a Gemini-backed tagger.
//
// option.WithHTTPClient is avoided because it interferes with the genai
// library's internal header injection for API keys; timeouts are
// enforced per call via context instead.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	return &Gemini{client: client, model: model}, nil
}

// Close closes the underlying genai client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Tag sends the text to the model and parses the annotated reply.
func (g *Gemini) Tag(ctx context.Context, text string) ([]annotate.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload, err := json.Marshal(request{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling tag request: %w", err)
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(payload))
	if err != nil {
		return nil, classifyError(err)
	}
	body, err := extractText(resp)
	if err != nil {
		return nil, apperrors.BadRequest(err)
	}

	var r response
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		// Some models skip the wrapper and return the annotated string
		// directly.
		var bare string
		if err2 := json.Unmarshal([]byte(body), &bare); err2 != nil {
			return nil, apperrors.BadRequest(fmt.Errorf("unmarshaling tag response: %w", err))
		}
		r.Annotated = bare
	}

	tokens, err := annotate.Parse(r.Annotated)
	if err != nil {
		return nil, apperrors.BadRequest(fmt.Errorf("model produced invalid annotation: %w", err))
	}
	return tokens, nil
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates returned from Gemini")
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		var combined string
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				combined += string(text)
			}
		}
		if combined != "" {
			return combined, nil
		}
	}
	return "", errors.New("no text parts in Gemini response")
}

func classifyError(err error) error {
	if err == nil {
		return nil
	}
	wrapped := fmt.Errorf("gemini generate content failed: %w", err)

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == 401 || gerr.Code == 403:
			return apperrors.New(apperrors.KindAuth, fmt.Sprintf("Gemini authentication failed (%d).", gerr.Code), wrapped)
		case gerr.Code == 404:
			return apperrors.New(apperrors.KindBadRequest, "Gemini model not found or no access (404).", wrapped)
		case gerr.Code == 429:
			return apperrors.New(apperrors.KindTransient, "Gemini rate limit exceeded (429). Please try again later.", wrapped)
		case gerr.Code >= 500:
			return apperrors.New(apperrors.KindTransient, fmt.Sprintf("Gemini service temporary error (%d). Please retry.", gerr.Code), wrapped)
		default:
			return apperrors.New(apperrors.KindBadRequest, fmt.Sprintf("Gemini API error (%d).", gerr.Code), wrapped)
		}
	}

	// Non-HTTP transport failures (DNS, socket, timeout) are usually
	// transient.
	return apperrors.New(apperrors.KindTransient, "Gemini request failed due to a temporary network error.", wrapped)
}
