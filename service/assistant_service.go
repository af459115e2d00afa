package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"me-python-boutique/config"
	"me-python-boutique/models"
)

// Fixed replies shown in place of a model answer
const (
	AssistantEmptyAnswer = "目前無法生成回應，請稍後再試。"
	AssistantApology     = "抱歉，我現在無法連接到知識庫，請檢查您的網路連線。"
)

const assistantTemperature float32 = 0.7

const assistantInstruction = `你是一個名為「Me&Python AI」的專業爬蟲學家助手，服務於高端球蟒品牌「迷蟒 Me&Python」。

你的語氣：
- 專業、冷靜、有禮貌，帶有一點都市質感。
- 請務必使用「繁體中文 (Traditional Chinese)」回答。

你的任務：
1. 專門回答關於爬蟲類，特別是球蟒 (Python regius) 的飼養、基因遺傳和繁殖問題。
2. 如果被問及其他話題，請禮貌地將話題轉回球蟒。
3. 提供準確的飼養數據 (熱點溫度: 31-33°C, 濕度: 60-70%)。
4. 保持回答簡潔（除非用戶要求詳細指南）。
5. 如果遇到嚴重的醫療問題，請務必建議用戶立即諮詢獸醫。`

// ErrEmptyQuestion is returned for a blank question
var ErrEmptyQuestion = errors.New("question is empty")

// contentGenerator is the part of genai.Models the assistant uses
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// AssistantService answers ball python care questions with Gemini
type AssistantService struct {
	models contentGenerator
	model  string
}

// NewAssistantService creates an AssistantService. Without an API key the
// service still works but always answers with the apology text.
func NewAssistantService(ctx context.Context, cfg config.AssistantConfig) (*AssistantService, error) {
	svc := &AssistantService{model: cfg.Model}
	if cfg.APIKey == "" {
		log.Printf("⚠️  GEMINI_API_KEY not set, care assistant will answer with a fixed apology")
		return svc, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	svc.models = client.Models
	log.Printf("✓ Care assistant ready (model=%s)", cfg.Model)
	return svc, nil
}

// Ask returns the assistant's answer. Upstream problems never surface as
// errors; the answer is then the apology text with IsError set.
func (s *AssistantService) Ask(ctx context.Context, question string) (models.AssistantResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return models.AssistantResponse{}, ErrEmptyQuestion
	}
	if s.models == nil {
		return models.AssistantResponse{Answer: AssistantApology, IsError: true}, nil
	}

	resp, err := s.models.GenerateContent(ctx, s.model,
		genai.Text(question),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(assistantInstruction, genai.RoleUser),
			Temperature:       genai.Ptr(assistantTemperature),
		},
	)
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		return models.AssistantResponse{Answer: AssistantApology, IsError: true}, nil
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return models.AssistantResponse{Answer: AssistantEmptyAnswer}, nil
	}
	return models.AssistantResponse{Answer: answer}, nil
}
