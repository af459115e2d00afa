package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"me-python-boutique/config"
)

type stubGenerator struct {
	answer string
	err    error

	model  string
	config *genai.GenerateContentConfig
	prompt string
}

func (s *stubGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.model = model
	s.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		s.prompt = contents[0].Parts[0].Text
	}
	if s.err != nil {
		return nil, s.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(s.answer, genai.RoleModel)}},
	}, nil
}

func TestAskWithoutAPIKeyApologizes(t *testing.T) {
	svc, err := NewAssistantService(context.Background(), config.AssistantConfig{Model: "gemini-2.5-flash"})
	require.NoError(t, err)

	resp, err := svc.Ask(context.Background(), "溫度要多少?")
	require.NoError(t, err)
	assert.Equal(t, AssistantApology, resp.Answer)
	assert.True(t, resp.IsError)
}

func TestAskSendsInstructionAndTemperature(t *testing.T) {
	gen := &stubGenerator{answer: "熱點 31-33°C"}
	svc := &AssistantService{models: gen, model: "gemini-2.5-flash"}

	resp, err := svc.Ask(context.Background(), "  熱點溫度?  ")
	require.NoError(t, err)

	assert.Equal(t, "熱點 31-33°C", resp.Answer)
	assert.False(t, resp.IsError)
	assert.Equal(t, "gemini-2.5-flash", gen.model)
	assert.Equal(t, "熱點溫度?", gen.prompt)
	require.NotNil(t, gen.config.Temperature)
	assert.Equal(t, float32(0.7), *gen.config.Temperature)
	assert.Contains(t, gen.config.SystemInstruction.Parts[0].Text, "繁體中文")
}

func TestAskUpstreamErrorApologizes(t *testing.T) {
	svc := &AssistantService{models: &stubGenerator{err: errors.New("quota exceeded")}, model: "m"}

	resp, err := svc.Ask(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, AssistantApology, resp.Answer)
	assert.True(t, resp.IsError)
}

func TestAskEmptyAnswer(t *testing.T) {
	svc := &AssistantService{models: &stubGenerator{answer: " "}, model: "m"}

	resp, err := svc.Ask(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, AssistantEmptyAnswer, resp.Answer)
}

func TestAskRejectsBlankQuestion(t *testing.T) {
	svc := &AssistantService{}
	_, err := svc.Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}
