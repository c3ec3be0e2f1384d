package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/pkg/circuitbreaker"
	apperrors "github.com/fonsecabarber/barber-api/pkg/errors"
)

// FallbackReply is sent when the model returns no text.
const FallbackReply = "Desculpe, tive um problema ao processar sua mensagem. Tente novamente ou nos chame no WhatsApp!"

var instruction = template.Must(template.New("instruction").Parse(`Você é o assistente virtual da Fonseca Barber Club.
Seu objetivo é ajudar os clientes com dúvidas sobre a barbearia e incentivá-los a agendar um horário via WhatsApp.
{{- if .Services}}
A barbearia oferece:
{{- range .Services}}
- {{.Name}}{{if .Desc}} ({{.Desc}}){{end}}{{if .Price}} - {{.Price}}{{end}}
{{- end}}
{{- end}}
Localização: {{.Address}}.
Horário: Seg-Sáb, 09h às 20h.

Sempre seja cordial, use um tom masculino e profissional.
Se o usuário quiser agendar, forneça o link do WhatsApp: https://wa.me/{{.WhatsApp}}`))

// ContentSource supplies the live price list and contact details for the prompt.
type ContentSource interface {
	Get(ctx context.Context) model.ContentDocument
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Service forwards chat turns to the Gemini generateContent REST API.
type Service struct {
	cfg        Config
	content    ContentSource
	httpClient *http.Client
	cb         *circuitbreaker.CircuitBreaker
	logger     zerolog.Logger
}

func NewService(cfg Config, content ContentSource, logger zerolog.Logger) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Service{
		cfg:        cfg,
		content:    content,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "gemini",
			MaxFailures: 5,
			Timeout:     30 * time.Second,
			IsFailure:   upstreamFault,
		}),
		logger: logger.With().Str("component", "chat").Logger(),
	}
}

type part struct {
	Text string `json:"text"`
}

type turn struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction turn   `json:"systemInstruction"`
	Contents          []turn `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content turn `json:"content"`
	} `json:"candidates"`
}

func (s *Service) Reply(ctx context.Context, req model.ChatRequest) (model.ChatResponse, error) {
	if s.cfg.APIKey == "" {
		return model.ChatResponse{}, apperrors.NewConfiguration("GEMINI_API_KEY is not configured")
	}

	system, err := s.systemInstruction(ctx)
	if err != nil {
		return model.ChatResponse{}, apperrors.NewInternal(err)
	}

	body := generateRequest{SystemInstruction: turn{Parts: []part{{Text: system}}}}
	for _, h := range req.History {
		body.Contents = append(body.Contents, turn{Role: h.Role, Parts: []part{{Text: h.Text}}})
	}
	body.Contents = append(body.Contents, turn{Role: "user", Parts: []part{{Text: req.Message}}})

	var out generateResponse
	err = s.cb.Execute(func() error {
		if err := s.generate(ctx, body, &out); err != nil {
			if ctx.Err() != nil {
				return &abandonedError{err: err}
			}
			return err
		}
		return nil
	})
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return model.ChatResponse{}, apperrors.NewUnavailable("chat is temporarily unavailable", err)
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("gemini request failed")
		return model.ChatResponse{}, apperrors.NewUpstream("gemini", err)
	}

	var reply strings.Builder
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			reply.WriteString(p.Text)
		}
	}
	if strings.TrimSpace(reply.String()) == "" {
		return model.ChatResponse{Reply: FallbackReply}, nil
	}
	return model.ChatResponse{Reply: reply.String()}, nil
}

func (s *Service) generate(ctx context.Context, body generateRequest, out *generateResponse) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", s.cfg.BaseURL, s.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(msg))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// statusError is a non-2xx answer from the model API.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.code, e.body)
}

// abandonedError marks a call whose caller went away before it finished.
type abandonedError struct{ err error }

func (e *abandonedError) Error() string { return e.err.Error() }
func (e *abandonedError) Unwrap() error { return e.err }

// upstreamFault decides which errors trip the breaker. Callers that cancel and
// requests the API rejects as malformed say nothing about its health; 429 does.
func upstreamFault(err error) bool {
	var abandoned *abandonedError
	if errors.As(err, &abandoned) {
		return false
	}
	var status *statusError
	if errors.As(err, &status) {
		return status.code >= 500 || status.code == http.StatusTooManyRequests
	}
	return true
}

func (s *Service) systemInstruction(ctx context.Context) (string, error) {
	doc := model.FallbackDocument(model.SourceUnavailable)
	if s.content != nil {
		doc = s.content.Get(ctx)
	}

	var buf bytes.Buffer
	err := instruction.Execute(&buf, struct {
		Services []model.Service
		Address  string
		WhatsApp string
	}{
		Services: doc.Services,
		Address:  doc.Settings[model.SettingAddress],
		WhatsApp: doc.Settings[model.SettingWhatsAppNumber],
	})
	if err != nil {
		return "", fmt.Errorf("failed to render instruction: %w", err)
	}
	return buf.String(), nil
}
