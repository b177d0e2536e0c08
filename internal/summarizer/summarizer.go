package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Winner is one framework's recognition as handed to the summarizer.
type Winner struct {
	Framework     string
	StaffName     string
	Position      string
	Score         string
	MaxScore      int
	Justification string
}

type Average struct {
	Framework string
	Pillar    string
	Average   string
}

type Input struct {
	PeriodLabel string
	Persona     string
	Winners     []Winner
	Averages    []Average
}

//go:generate mockgen -source=summarizer.go -destination=mock/summarizer_mock.go -package=mock
type Summarizer interface {
	Summarize(ctx context.Context, in Input) (string, error)
}

// ChatClient is the part of the OpenAI client the summarizer uses.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

var personaPrompts = map[string]string{
	"director": `You are the Director of Residence Life writing to the housing leadership team.
Write a warm, professional recognition summary. Name each recipient, their role and what
stood out in their evaluation. Mention any pillar averages worth celebrating or watching.`,

	"celebratory": `You are writing a shout-out for the housing department newsletter.
Be upbeat and specific. Celebrate each recipient by name with one vivid detail from their reasoning.`,

	"concise": `You are writing a one-paragraph briefing for senior leadership.
State who was recognized in each framework and why, in plain language.`,
}

const defaultPersona = "director"

type openAISummarizer struct {
	client ChatClient
	model  string
	logger *zap.Logger
}

// New returns an OpenAI backed summarizer, or the deterministic one when no
// API key is configured.
func New(apiKey, model string, logger ...*zap.Logger) Summarizer {
	if apiKey == "" {
		return Deterministic{}
	}
	return NewWithClient(openai.NewClient(apiKey), model, logger...)
}

func NewWithClient(client ChatClient, model string, logger ...*zap.Logger) Summarizer {
	l := zap.L().Named("summarizer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("summarizer")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &openAISummarizer{client: client, model: model, logger: l}
}

// Summarize falls back to the deterministic text when the model call fails
// or returns nothing, so a report always carries a summary.
func (s *openAISummarizer) Summarize(ctx context.Context, in Input) (string, error) {
	if len(in.Winners) == 0 {
		return Deterministic{}.Summarize(ctx, in)
	}

	persona, ok := personaPrompts[in.Persona]
	if !ok {
		persona = personaPrompts[defaultPersona]
	}

	systemMessage := fmt.Sprintf(`%s

Period: %s

RULES:
1. Only use the facts provided. Do not invent accomplishments.
2. Keep scores exactly as given, including the maximum.
3. Keep the total under 180 words.`,
		persona,
		in.PeriodLabel,
	)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.4,
		MaxTokens:   350,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: facts(in)},
		},
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return "", ctx.Err()
		}
		s.logger.Warn("chat completion failed, using deterministic summary", zap.Error(err))
		return Deterministic{}.Summarize(ctx, in)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		s.logger.Warn("chat completion returned no content, using deterministic summary")
		return Deterministic{}.Summarize(ctx, in)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func facts(in Input) string {
	var b strings.Builder
	b.WriteString("Recognition results:\n")
	for _, w := range in.Winners {
		fmt.Fprintf(&b, "- %s: %s (%s), score %s/%d. Reasoning: %s\n",
			w.Framework, w.StaffName, w.Position, w.Score, w.MaxScore, w.Justification)
	}
	if len(in.Averages) > 0 {
		b.WriteString("\nPillar averages:\n")
		for _, a := range in.Averages {
			fmt.Fprintf(&b, "- %s %s: %s\n", a.Framework, a.Pillar, a.Average)
		}
	}
	return b.String()
}

// Deterministic builds a plain summary without calling a model.
type Deterministic struct{}

func (Deterministic) Summarize(_ context.Context, in Input) (string, error) {
	if len(in.Winners) == 0 {
		return fmt.Sprintf("No recognition was awarded for %s.", in.PeriodLabel), nil
	}
	parts := make([]string, 0, len(in.Winners))
	for _, w := range in.Winners {
		parts = append(parts, fmt.Sprintf("%s (%s) earned the %s recognition with %s/%d.",
			w.StaffName, w.Position, w.Framework, w.Score, w.MaxScore))
	}
	return fmt.Sprintf("%s: %s", in.PeriodLabel, strings.Join(parts, " ")), nil
}
