package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ExtractedFoodItem is one food the interpreter pulled out of a phrase.
// The JSON keys match the prompt contract, so the model output decodes
// straight into this struct.
type ExtractedFoodItem struct {
	Food     string  `json:"alimento"`
	Quantity float64 `json:"quantidade"`
	Unit     string  `json:"unidade"`
}

// UnitGrams is the only unit the prompt allows the model to emit.
// Household measures (slices, cups, spoons, sizes) are converted to gram
// weights by the model itself; we only validate the shape of the result.
const UnitGrams = "grams"

const extractionPromptTemplate = `You are a nutrition assistant. Extract every food mentioned in the
sentence below, in any language, and answer ONLY with a JSON array.

Each element of the array must be an object with exactly these keys:
- "alimento": the food name translated to English, suitable for a food
  database search (e.g. "rice", "grilled chicken breast").
- "quantidade": the amount as a number, always expressed in grams.
- "unidade": always the string "grams".

If the sentence uses household measures (a slice, a cup, a tablespoon,
small/medium/large, a unit of fruit, etc.), convert them yourself to a
reasonable gram weight using your world knowledge. Never output any unit
other than grams. Do not add explanations, markdown or any text outside
the JSON array.

Now analyze the following sentence:
"%s"`

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"topP"`
	TopK             int     `json:"topK"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GeminiService calls the generative language API to turn a free-text meal
// description into a structured food list.
type GeminiService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *zap.SugaredLogger
}

func NewGeminiService(apiKey, model string, log *zap.SugaredLogger) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		baseURL: fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent", model),
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// ExtractFoods submits the extraction prompt and validates the response
// shape. Validation is all-or-nothing: a single bad element invalidates the
// whole response. No retries happen here; that is the caller's decision.
func (s *GeminiService) ExtractFoods(ctx context.Context, phrase string) ([]ExtractedFoodItem, error) {
	s.log.Infow("extracting foods from phrase", "phrase", phrase)

	text, err := s.generate(ctx, fmt.Sprintf(extractionPromptTemplate, phrase))
	if err != nil {
		s.log.Errorw("gemini call failed", "error", err)
		return nil, interpretationError(KindInterpretationUnavailable,
			"could not reach the meal interpretation service", err)
	}

	var payload interface{}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		s.log.Errorw("gemini returned malformed JSON", "response", text)
		return nil, interpretationError(KindInterpretationParse,
			"could not process the meal description", err)
	}

	arr, ok := payload.([]interface{})
	if !ok {
		s.log.Errorw("gemini response is not an array", "response", text)
		return nil, interpretationError(KindInterpretationShape,
			"could not process the meal description", nil)
	}
	for _, el := range arr {
		obj, ok := el.(map[string]interface{})
		if !ok {
			return nil, interpretationError(KindInterpretationShape,
				"could not process the meal description", nil)
		}
		for _, key := range []string{"alimento", "quantidade", "unidade"} {
			if _, present := obj[key]; !present {
				s.log.Errorw("gemini item missing required key", "key", key, "item", obj)
				return nil, interpretationError(KindInterpretationShape,
					"could not process the meal description", nil)
			}
		}
	}

	var items []ExtractedFoodItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, interpretationError(KindInterpretationShape,
			"could not process the meal description", err)
	}

	s.log.Infow("extracted foods", "count", len(items))
	return items, nil
}

func (s *GeminiService) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:      0.1,
			TopP:             1,
			TopK:             1,
			MaxOutputTokens:  2048,
			ResponseMimeType: "application/json",
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	u := fmt.Sprintf("%s?key=%s", s.baseURL, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(body))
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("failed to parse gemini envelope: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response has no candidates")
	}

	return gr.Candidates[0].Content.Parts[0].Text, nil
}
