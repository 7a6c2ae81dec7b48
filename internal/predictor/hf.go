package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/malingi/accabot/internal/pkg/config"
	"github.com/malingi/accabot/internal/pkg/interfaces"
	"github.com/malingi/accabot/internal/pkg/models"
)

const inferenceAPIBase = "https://api-inference.huggingface.co/models/"

// Ensure HuggingFace implements interfaces.Predictor
var _ interfaces.Predictor = (*HuggingFace)(nil)

// HuggingFace asks a text model for outcome probabilities. Most models answer
// in loose prose rather than structured JSON, so the response is mined for
// the first three numbers and treated as home/draw/away. Unusable answers
// return nil probabilities, not an error; the caller falls back to implied
// odds.
type HuggingFace struct {
	apiKey string
	model  string
	client *http.Client
}

func NewHuggingFace(cfg config.PredictorConfig) *HuggingFace {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &HuggingFace{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		client: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether both the API key and model are configured.
func (h *HuggingFace) Enabled() bool {
	return h.apiKey != "" && h.model != ""
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// Probabilities queries the model for 1X2 probabilities of one match.
func (h *HuggingFace) Probabilities(ctx context.Context, match *models.Match) (map[string]float64, error) {
	if !h.Enabled() {
		return nil, nil
	}

	prompt := fmt.Sprintf(
		"Match: %s vs %s\nOdds (1X2): home %v, draw %v, away %v\n"+
			"Return a JSON object with keys 'home','draw','away' containing probability values (0-1).",
		match.HomeTeam, match.AwayTeam,
		match.Odds[models.OutcomeHome], match.Odds[models.OutcomeDraw], match.Odds[models.OutcomeAway],
	)

	body, err := json.Marshal(inferenceRequest{Inputs: prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, inferenceAPIBase+h.model, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference returned status %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode inference response: %w", err)
	}

	return ParseProbabilities(extractText(raw)), nil
}

// extractText pulls the generated text out of the few response shapes the
// inference API uses: [{"generated_text": ...}], [{"text": ...}], a plain
// string, or anything else stringified.
func extractText(raw json.RawMessage) string {
	var asList []map[string]any
	if err := json.Unmarshal(raw, &asList); err == nil && len(asList) > 0 {
		if s, ok := asList[0]["generated_text"].(string); ok {
			return s
		}
		if s, ok := asList[0]["text"].(string); ok {
			return s
		}
		return fmt.Sprint(asList[0])
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}

	var asMap map[string]any
	if err := json.Unmarshal(raw, &asMap); err == nil {
		if _, isErr := asMap["error"]; isErr {
			return ""
		}
		return fmt.Sprint(asMap)
	}

	return string(raw)
}

var numberRe = regexp.MustCompile(`([0-9]*\.[0-9]+|[0-9]+)%?`)

// ParseProbabilities mines the first three numbers out of model text and
// maps them to home/draw/away. Values above 1.0 are treated as percentages.
// Returns nil when fewer than three numbers were found.
func ParseProbabilities(text string) map[string]float64 {
	if text == "" {
		return nil
	}

	matches := numberRe.FindAllString(text, 3)
	if len(matches) < 3 {
		return nil
	}

	probs := make([]float64, 0, 3)
	percentages := false
	for _, m := range matches {
		var v float64
		if _, err := fmt.Sscanf(m, "%f", &v); err != nil {
			return nil
		}
		if v > 1.0 {
			percentages = true
		}
		probs = append(probs, v)
	}
	if percentages {
		for i := range probs {
			probs[i] /= 100.0
		}
	}

	return map[string]float64{
		models.OutcomeHome: probs[0],
		models.OutcomeDraw: probs[1],
		models.OutcomeAway: probs[2],
	}
}
