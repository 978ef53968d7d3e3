package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/halarumdigital/agente-financeiro/internal/logger"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	textModel      = "gpt-4o-mini"
	visionModel    = "gpt-4o"
	whisperModel   = "whisper-1"
)

const promptTemplate = `Você é um assistente financeiro que extrai transações de mensagens em português.
Data de hoje: %s

Categorias de despesa disponíveis: %s
Categorias de receita disponíveis: %s

Analise a mensagem e retorne APENAS um JSON válido, sem explicações e sem markdown:
{
  "type": "income" ou "expense",
  "amount": <número positivo, use ponto como separador decimal>,
  "category": "<uma das categorias disponíveis>",
  "description": "<descrição curta>",
  "date": "<YYYY-MM-DD ou termos como hoje, ontem>",
  "confidence": <número entre 0 e 1>
}

Regras:
- Prefira sempre uma categoria da lista; só sugira outra se nenhuma servir
- "ganhei", "recebi", "salário" indicam receita; "gastei", "paguei", "comprei" indicam despesa
- Sem data explícita, use a data de hoje
- Se a mensagem NÃO descreve uma transação financeira, retorne exatamente: null`

const receiptPrompt = `Você é um assistente financeiro que lê cupons fiscais e recibos brasileiros.
Data de hoje: %s

Categorias de despesa disponíveis: %s

Extraia o valor TOTAL do recibo e retorne APENAS um JSON válido, sem markdown:
{
  "type": "expense",
  "amount": <valor total>,
  "category": "<uma das categorias disponíveis>",
  "description": "<nome do estabelecimento>",
  "date": "<data do recibo em YYYY-MM-DD, ou hoje se ilegível>",
  "confidence": <número entre 0 e 1>
}

Se a imagem não for um recibo ou estiver ilegível, retorne exatamente: null`

// OpenAI implements Oracle against the OpenAI REST API.
type OpenAI struct {
	apiKey  string
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// Option customizes the OpenAI client.
type Option func(*OpenAI)

// WithBaseURL points the client at a different API host. Tests use it to
// target a local server.
func WithBaseURL(url string) Option {
	return func(o *OpenAI) { o.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *OpenAI) { o.client = client }
}

// WithClock replaces the time source used to date-stamp prompts.
func WithClock(now func() time.Time) Option {
	return func(o *OpenAI) { o.now = now }
}

// NewOpenAI creates an OpenAI-backed oracle.
func NewOpenAI(apiKey string, opts ...Option) *OpenAI {
	o := &OpenAI{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *OpenAI) chat(ctx context.Context, model string, messages []chatMessage) (string, error) {
	payload, err := json.Marshal(chatRequest{Model: model, Temperature: 0.1, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		logger.Get().Errorw("openai error response", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("openai api error: status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode openai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (o *OpenAI) ParseText(ctx context.Context, text string, categories Categories) (*ParsedTransaction, error) {
	today := o.now().Format("2006-01-02")
	system := fmt.Sprintf(promptTemplate, today,
		strings.Join(categories.Expense, ", "),
		strings.Join(categories.Income, ", "))

	content, err := o.chat(ctx, textModel, []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: text},
	})
	if err != nil {
		return nil, err
	}
	return DecodeParsed(content, o.now())
}

func (o *OpenAI) ParseReceipt(ctx context.Context, imageJPEG []byte, categories Categories) (*ParsedTransaction, error) {
	today := o.now().Format("2006-01-02")
	system := fmt.Sprintf(receiptPrompt, today, strings.Join(categories.Expense, ", "))
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageJPEG)

	content, err := o.chat(ctx, visionModel, []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: []contentPart{
			{Type: "text", Text: "Extraia a transação deste recibo."},
			{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
		}},
	})
	if err != nil {
		return nil, err
	}
	return DecodeParsed(content, o.now())
}

func (o *OpenAI) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.WriteField("model", whisperModel); err != nil {
		return "", err
	}
	if err := writer.WriteField("language", "pt"); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai transcription failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		logger.Get().Errorw("openai transcription error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("openai api error: status %d", resp.StatusCode)
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode transcription: %w", err)
	}
	return strings.TrimSpace(parsed.Text), nil
}
