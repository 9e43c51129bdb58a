package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"go.uber.org/zap"

	"github.com/roach88/callcheck/internal/lexicon"
	"github.com/roach88/callcheck/internal/resolve"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

const llmInstructions = `You classify words found in Spanish contact-center transcripts.
You receive one unrecognized word, the closest known words, and the categories already in use.
Answer "select" with one known word when the unrecognized word is a misspelling of it.
Answer "keep" with a category and an integer sentiment weight between -3 and 3 when the word is a real word worth registering; prefer existing categories.
Answer "cancel" for names, numbers, filler and anything you are unsure about.
Leave unused fields as empty strings or 0.`

// Responder is the part of the OpenAI client the LLM oracle calls.
type Responder interface {
	New(ctx context.Context, body responses.ResponseNewParams, opts ...option.RequestOption) (*responses.Response, error)
}

type llmRequest struct {
	Word        string   `json:"word"`
	Suggestions []string `json:"known_words"`
	Categories  []string `json:"categories"`
}

type llmAnswer struct {
	Action   string `json:"action" jsonschema:"enum=select,enum=keep,enum=cancel"`
	Word     string `json:"word" jsonschema:"description=The known word to use when action is select"`
	Category string `json:"category" jsonschema:"description=Category when action is keep"`
	Weight   int    `json:"weight" jsonschema:"description=Sentiment weight when action is keep"`
}

var llmAnswerSchema = generateSchema[llmAnswer]()

// LLM asks an OpenAI model to resolve unknown words.
type LLM struct {
	client  Responder
	model   string
	backoff backoff
	logger  *zap.Logger

	// complete is swapped out in tests.
	complete func(ctx context.Context, params responses.ResponseNewParams) (string, error)
}

// LLMOption configures an LLM oracle.
type LLMOption func(*LLM)

// WithLLMLogger sets the logger.
func WithLLMLogger(logger *zap.Logger) LLMOption {
	return func(l *LLM) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLLM creates an LLM oracle over client. An empty model uses DefaultModel.
func NewLLM(client Responder, model string, opts ...LLMOption) *LLM {
	if model == "" {
		model = DefaultModel
	}
	l := &LLM{
		client:  client,
		model:   model,
		backoff: defaultBackoff(),
		logger:  zap.NewNop(),
	}
	l.complete = l.callOpenAI
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewOpenAILLM builds the OpenAI client from an API key.
func NewOpenAILLM(apiKey, model string, opts ...LLMOption) *LLM {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return NewLLM(&client.Responses, model, opts...)
}

// Decide sends the query to the model and maps its structured answer onto a
// decision. Unparseable answers cancel.
func (l *LLM) Decide(ctx context.Context, q resolve.Query) (resolve.Decision, error) {
	payload, err := json.Marshal(llmRequest{Word: q.Word, Suggestions: q.Suggestions, Categories: q.Categories})
	if err != nil {
		return resolve.Decision{}, err
	}

	text, err := l.complete(ctx, l.params(string(payload)))
	if err != nil {
		return resolve.Decision{}, fmt.Errorf("llm oracle: %w", err)
	}

	var ans llmAnswer
	if err := decodeModelJSON(text, &ans); err != nil {
		l.logger.Warn("unparseable model answer", zap.String("word", q.Word), zap.Error(err))
		return resolve.Cancel(), nil
	}

	d := ans.decision()
	l.logger.Debug("model decided",
		zap.String("word", q.Word),
		zap.Stringer("kind", d.Kind),
		zap.String("answer", ans.Word),
		zap.String("category", ans.Category),
	)
	return d, nil
}

func (a llmAnswer) decision() resolve.Decision {
	switch a.Action {
	case "select":
		word := lexicon.Fold(a.Word)
		if word == "" {
			return resolve.Cancel()
		}
		return resolve.Select(word)
	case "keep":
		return resolve.KeepNew(strings.TrimSpace(a.Category), a.Weight)
	default:
		return resolve.Cancel()
	}
}

func (l *LLM) params(input string) responses.ResponseNewParams {
	return responses.ResponseNewParams{
		Model:           l.model,
		MaxOutputTokens: openai.Int(200),
		Instructions:    openai.String(llmInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(input, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "WordDecision",
					Schema:      llmAnswerSchema,
					Strict:      openai.Bool(true),
					Description: openai.String("Decision for one unrecognized word"),
					Type:        "json_schema",
				},
			},
		},
	}
}

func (l *LLM) callOpenAI(ctx context.Context, params responses.ResponseNewParams) (string, error) {
	resp, err := callWithRetry(ctx, l.client, params, l.backoff)
	if err != nil {
		return "", err
	}
	return resp.OutputText(), nil
}

// backoff holds the waits before each retry.
type backoff struct {
	rateLimit []time.Duration
	server    []time.Duration
}

func defaultBackoff() backoff {
	return backoff{
		rateLimit: []time.Duration{65 * time.Second, 100 * time.Second},
		server:    []time.Duration{5 * time.Second, 30 * time.Second},
	}
}

// callWithRetry retries rate-limit and server errors, waiting per b. The
// number of attempts is one more than the longer wait list.
func callWithRetry(ctx context.Context, client Responder, params responses.ResponseNewParams, b backoff) (*responses.Response, error) {
	attempts := max(len(b.rateLimit), len(b.server)) + 1

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		resp, err := client.New(ctx, params)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		var waits []time.Duration
		switch {
		case isRateLimitError(err):
			waits = b.rateLimit
		case isServerError(err):
			waits = b.server
		default:
			return nil, err
		}
		if attempt >= len(waits) {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(waits[attempt]):
		}
	}
	return nil, fmt.Errorf("failed after retries: %w", lastErr)
}

func isRateLimitError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "429") ||
		strings.Contains(s, "rate limit") ||
		strings.Contains(s, "too many requests")
}

func isServerError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "500") ||
		strings.Contains(s, "internal server error") ||
		strings.Contains(s, "server_error")
}

// decodeModelJSON unmarshals the model's output, falling back to the
// outermost {...} span when the text carries extra prose.
func decodeModelJSON(text string, v any) error {
	s := strings.TrimSpace(text)
	if s == "" {
		return errors.New("empty model output")
	}
	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}
	start, end := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}')
	if start == -1 || end <= start {
		return fmt.Errorf("no JSON object in model output (len=%d)", len(s))
	}
	return json.Unmarshal([]byte(s[start:end+1]), v)
}
