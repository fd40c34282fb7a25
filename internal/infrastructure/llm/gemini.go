package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"GrainIntel/internal/domain"
	"GrainIntel/internal/ports"
)

const (
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 20 * time.Second
	maxSummaryLen  = 500
)

// GeminiJudge scores items against the grain-industry rubric via the
// Gemini API. Every failure mode (network, timeout, non-JSON body,
// missing score field) surfaces as an error so the caller can apply
// its deterministic fallback; nothing here is fatal for a batch.
type GeminiJudge struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

var _ ports.RelevanceJudge = (*GeminiJudge)(nil)

// NewGeminiJudge wires a Gemini client; model defaults to gemini-2.0-flash.
func NewGeminiJudge(client *genai.Client, model string) *GeminiJudge {
	if model == "" {
		model = defaultModel
	}
	return &GeminiJudge{client: client, model: model, timeout: defaultTimeout}
}

// Judge asks Gemini for a relevance score, reason, and summary.
func (g *GeminiJudge) Judge(ctx context.Context, item domain.RawItem) (domain.Judgement, error) {
	if g == nil || g.client == nil {
		return domain.Judgement{}, fmt.Errorf("gemini client not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	content := genai.NewContentFromText(buildPrompt(item), genai.RoleUser)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, nil)
	if err != nil {
		return domain.Judgement{}, fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return domain.Judgement{}, fmt.Errorf("empty gemini response")
	}

	return parseJudgement(resp.Candidates[0].Content.Parts[0].Text)
}

func buildPrompt(item domain.RawItem) string {
	return fmt.Sprintf(`You are a grain industry analyst. Score this article for relevance to the grain quality/grading technology industry.

Article Title: %s
Article Summary: %s
Source: %s

Respond in JSON format only:
{
  "relevance_score": <0-100 integer>,
  "reason": "<brief reason for score>",
  "summary": "<1-2 sentence summary focusing on grain industry relevance>"
}

Scoring guide:
- 80-100: Directly about grain grading, quality testing, or inspection technology
- 60-79: About grain industry, agriculture AI, or crop quality
- 40-59: Tangentially related to grains or farming technology
- 0-39: Not relevant to grain industry
`, item.Title, truncateRunes(item.Summary, maxSummaryLen), item.Source)
}

// parseJudgement decodes the model reply, tolerating a fenced code
// block around the JSON object.
func parseJudgement(raw string) (domain.Judgement, error) {
	var reply struct {
		RelevanceScore *int   `json:"relevance_score"`
		Reason         string `json:"reason"`
		Summary        string `json:"summary"`
	}

	if err := json.Unmarshal([]byte(stripFence(raw)), &reply); err != nil {
		return domain.Judgement{}, fmt.Errorf("parse gemini reply: %w", err)
	}
	if reply.RelevanceScore == nil {
		return domain.Judgement{}, fmt.Errorf("gemini reply missing relevance_score")
	}

	score := *reply.RelevanceScore
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return domain.Judgement{Score: score, Reason: reply.Reason, Summary: reply.Summary}, nil
}

func stripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimPrefix(strings.TrimSpace(text), "json")
	return strings.TrimSpace(text)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
