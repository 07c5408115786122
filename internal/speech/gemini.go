package speech

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	DefaultModel   = "gemini-2.5-flash-preview-tts"
	DefaultTimeout = 60 * time.Second
)

// GeminiConfig configures the Gemini synthesizer.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// RequestsPerMinute throttles outbound calls; zero disables throttling.
	RequestsPerMinute int
	// BaseURL overrides the API endpoint.
	BaseURL string
}

// Gemini calls generateContent with an audio response modality.
type Gemini struct {
	cfg     GeminiConfig
	log     *log.Logger
	limiter *rate.Limiter

	mu     sync.Mutex
	client *genai.Client
}

var _ Synthesizer = (*Gemini)(nil)

// NewGemini returns a synthesizer. A missing API key is not an error here; it
// is reported by every Synthesize call instead.
func NewGemini(cfg GeminiConfig, logger *log.Logger) *Gemini {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}
	return &Gemini{
		cfg:     cfg,
		log:     logger,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Model returns the model identifier in use.
func (g *Gemini) Model() string {
	return g.cfg.Model
}

func (g *Gemini) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	key := strings.TrimSpace(g.cfg.APIKey)
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	cc := &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	}
	if g.cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = g.cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("client init failed: %w", err)
	}
	g.client = client
	return client, nil
}

// Synthesize implements Synthesizer.
func (g *Gemini) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: string(req.Voice),
				},
			},
		},
	}
	contents := []*genai.Content{
		genai.NewContentFromText(ComposePrompt(req.Prompt, req.Text), genai.RoleUser),
	}

	start := time.Now()
	g.log.Debug("Generating speech", "model", g.cfg.Model, "voice", req.Voice, "chars", len([]rune(req.Text)))
	resp, err := client.Models.GenerateContent(ctx, g.cfg.Model, contents, cfg)
	if err != nil {
		g.log.Error("Speech request failed", "err", err)
		return nil, err
	}

	pcm, err := audioFromResponse(resp)
	if err != nil {
		g.log.Error("Unusable speech response", "err", err)
		return nil, err
	}
	g.log.Info("Speech generated",
		"voice", req.Voice,
		"bytes", len(pcm),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return pcm, nil
}

// audioFromResponse extracts the inline audio of the first candidate. The SDK
// has already base64-decoded the payload.
func audioFromResponse(resp *genai.GenerateContentResponse) ([]byte, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, &BlockedError{Reason: string(resp.PromptFeedback.BlockReason)}
		}
		return nil, fmt.Errorf("no candidates returned, the request might have been filtered: %w", ErrNoAudio)
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 ||
		c.Content.Parts[0] == nil || c.Content.Parts[0].InlineData == nil ||
		len(c.Content.Parts[0].InlineData.Data) == 0 {
		return nil, fmt.Errorf("candidates existed but lacked inline data: %w", ErrNoAudio)
	}
	return c.Content.Parts[0].InlineData.Data, nil
}
