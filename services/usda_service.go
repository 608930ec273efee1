package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// NutrientVector holds the four tracked macros for one resolved item.
type NutrientVector struct {
	Calories float64 `json:"calories_kcal"`
	Protein  float64 `json:"protein_g"`
	Fat      float64 `json:"fat_g"`
	Carbs    float64 `json:"carbs_g"`
}

// usdaSearchResponse covers the subset of the FoodData Central search
// payload we consume.
type usdaSearchResponse struct {
	Foods []struct {
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientName string  `json:"nutrientName"`
			UnitName     string  `json:"unitName"`
			Value        float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// USDAService resolves one extracted food item against the FoodData Central
// search endpoint. The first hit is taken as the authoritative match;
// ranking is entirely the database's problem.
type USDAService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *zap.SugaredLogger
}

func NewUSDAService(apiKey string, log *zap.SugaredLogger) *USDAService {
	return &USDAService{
		apiKey:  apiKey,
		baseURL: "https://api.nal.usda.gov/fdc/v1/foods/search",
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// Resolve returns the scaled macro vector for the item, or nil when the
// item cannot be resolved. A nil here is never an error: invalid items, no
// database match and lookup failures all collapse into "no data", and the
// aggregator just counts the item out.
func (s *USDAService) Resolve(ctx context.Context, item ExtractedFoodItem) *NutrientVector {
	if item.Food == "" || item.Quantity == 0 || item.Unit == "" {
		s.log.Warnw("skipping incomplete extracted item", "item", item)
		return nil
	}

	s.log.Infow("looking up food", "food", item.Food)

	u := fmt.Sprintf("%s?api_key=%s&query=%s", s.baseURL, s.apiKey, url.QueryEscape(item.Food))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		s.log.Errorw("failed to build food lookup request", "error", err)
		return nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Errorw("food lookup request failed", "food", item.Food, "error", err)
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.log.Errorw("failed to read food lookup response", "error", err)
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		s.log.Errorw("food lookup API error", "status", resp.StatusCode, "body", string(body))
		return nil
	}

	var sr usdaSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		s.log.Errorw("failed to parse food lookup JSON", "error", err)
		return nil
	}
	if len(sr.Foods) == 0 {
		s.log.Warnw("food not found in nutrition database", "food", item.Food)
		return nil
	}

	top := sr.Foods[0]
	s.log.Infow("matched food", "description", top.Description)

	// Values are reported per 100 g. Each macro is matched on nutrient name
	// AND unit; a name match with the wrong unit is dropped, not converted.
	var base NutrientVector
	for _, n := range top.FoodNutrients {
		unit := strings.ToUpper(n.UnitName)
		switch {
		case n.NutrientName == "Energy" && unit == "KCAL":
			base.Calories = n.Value
		case n.NutrientName == "Protein" && unit == "G":
			base.Protein = n.Value
		case n.NutrientName == "Total lipid (fat)" && unit == "G":
			base.Fat = n.Value
		case n.NutrientName == "Carbohydrate, by difference" && unit == "G":
			base.Carbs = n.Value
		}
	}

	if item.Unit != UnitGrams {
		// Contract violation from the interpreter; fall back to the 100 g
		// basis instead of failing the item.
		s.log.Warnw("unsupported unit, returning 100g basis", "unit", item.Unit, "food", item.Food)
		return &base
	}

	if item.Quantity <= 0 {
		return nil
	}

	factor := item.Quantity / 100.0
	return &NutrientVector{
		Calories: round2(base.Calories * factor),
		Protein:  round2(base.Protein * factor),
		Fat:      round2(base.Fat * factor),
		Carbs:    round2(base.Carbs * factor),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
