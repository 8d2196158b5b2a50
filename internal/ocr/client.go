package ocr

import (
	"context"
	"fmt"
	"strings"

	"pdf-ocr/internal/config"
	"pdf-ocr/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Engine is the OCR provider contract: one page image in, markdown text out.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, image []byte) (string, error)
}

type llmEngine struct {
	name   string
	model  llms.Model
	prompt string
}

// NewEngine builds an OCR engine from the LLM configuration. An error here
// is a fatal configuration error; the batch must not start.
func NewEngine(cfg *config.LLMConfig) (Engine, error) {
	log.Debug().Str("provider", cfg.Provider).Str("model", cfg.Model).Msg("Initializing OCR engine")

	switch cfg.Provider {
	case config.ProviderOpenAI:
		llm, err := openai.New(
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("initializing %s engine: %w", cfg.Provider, err)
		}
		return newLLMEngine(cfg.Provider, llm), nil
	case config.ProviderOllama:
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("initializing %s engine: %w", cfg.Provider, err)
		}
		return newLLMEngine(cfg.Provider, llm), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
}

func newLLMEngine(name string, model llms.Model) *llmEngine {
	return &llmEngine{name: name, model: model, prompt: models.OCRPromptTemplate}
}

func (e *llmEngine) Name() string {
	return e.name
}

// Recognize sends one page image with the fixed OCR instruction and returns
// the markdown text of the first choice.
func (e *llmEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart("image/png", image),
				llms.TextPart(e.prompt),
			},
		},
	}

	resp, err := e.model.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", e.name)
	}
	return resp.Choices[0].Content, nil
}
