package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jimlawless/whereami"
	openai "github.com/sashabaranov/go-openai"

	"github.com/DRSN-tech/fitting-backend/internal/cfg"
	"github.com/DRSN-tech/fitting-backend/internal/domain"
	"github.com/DRSN-tech/fitting-backend/internal/usecase"
	"github.com/DRSN-tech/fitting-backend/pkg/e"
	"github.com/DRSN-tech/fitting-backend/pkg/jitter"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
)

const (
	rerankBackoffBase = 500 * time.Millisecond
	rerankBackoffMax  = 5 * time.Second
)

const rerankSystemPrompt = `You are a fashion stylist. Given a style profile and candidate products grouped by
category, pick up to %d best matching product ids per category, ordered by relevance.
Return a JSON object mapping category name to an array of product id strings.
Return JSON only, no prose.`

// Reranker переупорядочивает кандидатов через Azure OpenAI с повторами.
type Reranker struct {
	client *openai.Client
	cfg    *cfg.LLMCfg
	logger logger.Logger
}

func NewReranker(client *openai.Client, llmCfg *cfg.LLMCfg, logger logger.Logger) *Reranker {
	return &Reranker{
		client: client,
		cfg:    llmCfg,
		logger: logger,
	}
}

func (r *Reranker) Available() bool {
	return r != nil && r.client != nil
}

// Rerank возвращает отображение категория -> идентификаторы в порядке
// предпочтения модели. Кандидаты усечены до безопасного размера промпта.
func (r *Reranker) Rerank(ctx context.Context, profile *domain.StyleProfile,
	candidates map[string][]usecase.RecommendationItem, topK int) (map[string][]string, error) {
	if !r.Available() {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrRerankerUnavailable)
	}

	prompt, err := r.buildPrompt(profile, candidates)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	req := openai.ChatCompletionRequest{
		Model: r.cfg.DeploymentID,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(rerankSystemPrompt, topK),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: r.cfg.RerankTemperature,
		MaxTokens:   r.cfg.RerankMaxTokens,
	}

	var lastErr error
	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := jitter.ExponentialBackoff(rerankBackoffBase, rerankBackoffMax, attempt-1, jitter.DefaultJitter)
			r.logger.Debugf("повтор ре-ранжирования #%d через %s", attempt, delay)

			select {
			case <-ctx.Done():
				return nil, e.Wrap(whereami.WhereAmI(), ctx.Err())
			case <-time.After(delay):
			}
		}

		ranked, err := r.complete(ctx, req)
		if err == nil {
			return ranked, nil
		}

		lastErr = err
	}

	return nil, e.Wrap(whereami.WhereAmI(), lastErr)
}

func (r *Reranker) complete(ctx context.Context, req openai.ChatCompletionRequest) (map[string][]string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("пустой ответ модели")
	}

	raw := extractJSON(resp.Choices[0].Message.Content)
	if raw == "" {
		return nil, fmt.Errorf("в ответе модели нет JSON")
	}

	var ranked map[string][]string
	if err := json.Unmarshal([]byte(raw), &ranked); err != nil {
		return nil, err
	}

	return ranked, nil
}

// buildPrompt сериализует профиль и усеченных кандидатов в текст запроса.
func (r *Reranker) buildPrompt(profile *domain.StyleProfile, candidates map[string][]usecase.RecommendationItem) (string, error) {
	type promptItem struct {
		ID    string   `json:"id"`
		Title string   `json:"title"`
		Tags  []string `json:"tags,omitempty"`
		Price int64    `json:"price"`
	}

	trimmed := make(map[string][]promptItem, len(candidates))
	for category, items := range candidates {
		if len(items) > maxCandidatesPerCategory {
			items = items[:maxCandidatesPerCategory]
		}

		out := make([]promptItem, 0, len(items))
		for _, item := range items {
			tags := item.Tags
			if len(tags) > maxTagsPerItem {
				tags = tags[:maxTagsPerItem]
			}

			out = append(out, promptItem{
				ID:    item.ID,
				Title: truncate(item.Title, maxTitleLen),
				Tags:  tags,
				Price: item.Price,
			})
		}

		trimmed[category] = out
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return "", err
	}

	candidatesJSON, err := json.Marshal(trimmed)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Style profile:\n")
	sb.Write(profileJSON)
	sb.WriteString("\n\nCandidates by category:\n")
	sb.Write(candidatesJSON)

	return sb.String(), nil
}
