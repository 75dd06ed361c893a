package assistant

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"plaza/config"
	"plaza/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/genai"
)

// ErrAssistantDisabled is returned by the generator used when no API key is configured.
var ErrAssistantDisabled = errors.New("assistant API key is not configured")

// Module provides the text generator behind the plaza assistant.
var Module = fx.Module("assistant",
	fx.Provide(NewTextGenerator),
)

type GeneratorParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewTextGenerator returns a Gemini client, or a generator that always fails when the key is empty.
// The failure is turned into an in-character reply by the assistant usecase.
func NewTextGenerator(params GeneratorParams) (service.TextGenerator, error) {
	cfg := params.Config.Assistant
	if cfg == nil || strings.TrimSpace(cfg.APIKey) == "" {
		params.Logger.Warn("Assistant API key missing, assistant replies will be degraded")

		return disabledGenerator{}, nil
	}

	return newGeminiGenerator(params.Ctx, cfg, "", params.Logger)
}

type disabledGenerator struct{}

func (disabledGenerator) GenerateText(context.Context, string) (string, error) {
	return "", ErrAssistantDisabled
}

type geminiGenerator struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// newGeminiGenerator builds the client. baseURL overrides the public endpoint when set.
func newGeminiGenerator(ctx context.Context, cfg *config.AssistantConfig, baseURL string, logger *slog.Logger) (*geminiGenerator, error) {
	httpClient, err := newHTTPClient(cfg.ProxyURL)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create genai client")
	}

	logger.Info("Gemini assistant initialized", slog.String("model", cfg.Model), slog.Bool("proxy", cfg.ProxyURL != ""))

	return &geminiGenerator{
		client: client,
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// newHTTPClient routes outbound calls through proxyURL when one is configured.
func newHTTPClient(proxyURL string) (*http.Client, error) {
	if proxyURL == "" {
		return &http.Client{}, nil
	}

	parsed, err := url.Parse(proxyURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.Errorf("invalid assistant proxy URL: %q", proxyURL)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = http.ProxyURL(parsed)

	return &http.Client{Transport: transport}, nil
}

func (g *geminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate content")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("assistant returned an empty response")
	}

	g.logger.Debug("Assistant reply generated", slog.Int("prompt_len", len(prompt)), slog.Int("reply_len", len(text)))

	return text, nil
}
