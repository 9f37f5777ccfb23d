package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jimlawless/whereami"
	openai "github.com/sashabaranov/go-openai"

	"github.com/DRSN-tech/fitting-backend/internal/cfg"
	"github.com/DRSN-tech/fitting-backend/internal/domain"
	"github.com/DRSN-tech/fitting-backend/internal/usecase"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
)

const analyzeSystemPrompt = `You are a fashion style analyst. Analyze the provided photos and return a JSON object
with these optional string-array fields: tags, captions, top, pants, shoes, outer,
accessories, overall_style, detected_style, colors, categories.
Use short lowercase English keywords. Return JSON only, no prose.`

// StyleAnalyzer строит профиль стиля по фотографиям через Azure OpenAI.
type StyleAnalyzer struct {
	client *openai.Client
	cfg    *cfg.LLMCfg
	logger logger.Logger
}

func NewStyleAnalyzer(client *openai.Client, llmCfg *cfg.LLMCfg, logger logger.Logger) *StyleAnalyzer {
	return &StyleAnalyzer{
		client: client,
		cfg:    llmCfg,
		logger: logger,
	}
}

func (a *StyleAnalyzer) Available() bool {
	return a != nil && a.client != nil
}

// AnalyzeStyle отправляет изображения в модель и разбирает JSON-профиль из ответа.
func (a *StyleAnalyzer) AnalyzeStyle(ctx context.Context, images []usecase.StyleImage) (*domain.StyleProfile, error) {
	if !a.Available() {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrAnalyzerUnavailable)
	}

	parts := make([]openai.ChatMessagePart, 0, len(images)+1)
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: "Analyze the style of these photos.",
	})

	for _, img := range images {
		mime := img.MimeType
		if mime == "" {
			mime = "image/jpeg"
		}

		label := img.Slot
		if label != "" {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: "Photo slot: " + label,
			})
		}

		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    fmt.Sprintf("data:%s;base64,%s", mime, img.Base64),
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}

	req := openai.ChatCompletionRequest{
		Model: a.cfg.DeploymentID,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: analyzeSystemPrompt,
			},
			{
				Role:         openai.ChatMessageRoleUser,
				MultiContent: parts,
			},
		},
		Temperature: a.cfg.Temperature,
		MaxTokens:   a.cfg.MaxTokens,
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if len(resp.Choices) == 0 {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrAnalyzerUnavailable)
	}

	raw := extractJSON(resp.Choices[0].Message.Content)
	if raw == "" {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("в ответе модели нет JSON"))
	}

	var profile domain.StyleProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &profile, nil
}
