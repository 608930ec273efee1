package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeGeminiServer wraps the given model text in a generateContent envelope.
func fakeGeminiServer(t *testing.T, modelText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)

		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": modelText}},
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestGemini(srv *httptest.Server) *GeminiService {
	return &GeminiService{
		apiKey:  "test-key",
		baseURL: srv.URL,
		client:  srv.Client(),
		log:     zap.NewNop().Sugar(),
	}
}

func TestExtractFoods(t *testing.T) {
	srv := fakeGeminiServer(t, `[
		{"alimento": "rice", "quantidade": 100, "unidade": "grams"},
		{"alimento": "chicken breast", "quantidade": 150, "unidade": "grams"}
	]`)
	defer srv.Close()

	items, err := newTestGemini(srv).ExtractFoods(context.Background(), "100g of rice and 150g of chicken")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "rice", items[0].Food)
	assert.Equal(t, 100.0, items[0].Quantity)
	assert.Equal(t, UnitGrams, items[0].Unit)
	assert.Equal(t, "chicken breast", items[1].Food)
}

func TestExtractFoodsMalformedJSON(t *testing.T) {
	srv := fakeGeminiServer(t, `this is not json`)
	defer srv.Close()

	_, err := newTestGemini(srv).ExtractFoods(context.Background(), "lunch")
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindInterpretationParse, se.Kind)
	assert.Equal(t, http.StatusBadRequest, se.Status)
}

func TestExtractFoodsObjectInsteadOfArray(t *testing.T) {
	srv := fakeGeminiServer(t, `{"alimento": "rice", "quantidade": 100, "unidade": "grams"}`)
	defer srv.Close()

	_, err := newTestGemini(srv).ExtractFoods(context.Background(), "rice")
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindInterpretationShape, se.Kind)
}

func TestExtractFoodsMissingKeyFailsWholeResponse(t *testing.T) {
	// One valid item plus one without "unidade": the entire response is
	// rejected, not filtered per item.
	srv := fakeGeminiServer(t, `[
		{"alimento": "rice", "quantidade": 100, "unidade": "grams"},
		{"alimento": "beans", "quantidade": 80}
	]`)
	defer srv.Close()

	_, err := newTestGemini(srv).ExtractFoods(context.Background(), "rice and beans")
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindInterpretationShape, se.Kind)
}

func TestExtractFoodsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestGemini(srv).ExtractFoods(context.Background(), "rice")
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindInterpretationUnavailable, se.Kind)
}

func TestExtractFoodsUpstreamUnreachable(t *testing.T) {
	srv := fakeGeminiServer(t, `[]`)
	srv.Close() // connection refused from here on

	_, err := newTestGemini(srv).ExtractFoods(context.Background(), "rice")
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindInterpretationUnavailable, se.Kind)
}

func TestExtractFoodsEmptyArray(t *testing.T) {
	srv := fakeGeminiServer(t, `[]`)
	defer srv.Close()

	items, err := newTestGemini(srv).ExtractFoods(context.Background(), "nothing edible here")
	require.NoError(t, err)
	assert.Empty(t, items)
}
