package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hairgator/recipe-rag/internal/core/recipe"
	"github.com/hairgator/recipe-rag/internal/core/retrieval"
	"github.com/hairgator/recipe-rag/internal/infra/memory"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (stubEmbedder) Dimension() int { return 3 }

type stubGenerator struct {
	response  string
	fragments []string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.response, nil
}

func (g *stubGenerator) GenerateStream(ctx context.Context, prompt string, onFragment func(string)) (string, error) {
	var full strings.Builder
	for _, f := range g.fragments {
		onFragment(f)
		full.WriteString(f)
	}
	return full.String(), nil
}

func newTestServer(t *testing.T, gen recipe.Generator) *Server {
	t.Helper()

	store := memory.NewStore()
	store.Add(
		&retrieval.Chunk{
			ID:        "theory-1",
			Title:     "Layer Basics",
			Text:      "layer removes weight",
			TextKo:    "레이어는 무게를 제거한다",
			Keywords:  []string{"layer", "레이어"},
			Embedding: []float32{1, 0, 0},
		},
		&retrieval.Chunk{
			ID:        "theory-2",
			Title:     "Graduation Basics",
			Text:      "graduation builds weight",
			TextKo:    "그라데이션은 무게를 쌓는다",
			Keywords:  []string{"graduation"},
			Embedding: []float32{0, 1, 0},
		},
	)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	retriever := retrieval.NewService(store, stubEmbedder{}, retrieval.WithServiceLogger(logger))
	recipes := recipe.NewService(retriever, gen, recipe.WithServiceLogger(logger))
	return NewServer(0, retriever, recipes, WithServerLogger(logger))
}

func postJSON(t *testing.T, server *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(t, &stubGenerator{response: "ok"})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestHandleRecipe(t *testing.T) {
	server := newTestServer(t, &stubGenerator{response: "먼저 DBS NO. 3 기법을 적용합니다"})

	rec := postJSON(t, server, "/api/recipe", `{"query": "레이어 컷 알려줘"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result recipe.GenerateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	// 秘匿フィルタ適用済みの本文が返る
	assert.NotContains(t, result.RecipeText, "DBS")
	assert.Contains(t, result.RecipeText, "뒷머리 기법")
	assert.Equal(t, recipe.LanguageKorean, result.Language)
	assert.NotEmpty(t, result.Sources)
	assert.Equal(t, len(result.Sources), result.SourcesUsed)
}

func TestHandleRecipeDetectsLanguageWhenUnspecified(t *testing.T) {
	server := newTestServer(t, &stubGenerator{response: "recipe text"})

	rec := postJSON(t, server, "/api/recipe", `{"query": "layered bob"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result recipe.GenerateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, recipe.LanguageEnglish, result.Language)
}

func TestHandleRecipeStyleOnly(t *testing.T) {
	server := newTestServer(t, &stubGenerator{response: "recipe text"})

	rec := postJSON(t, server, "/api/recipe", `{
		"style": {
			"length_category": "C Length",
			"cut_form": "L(Layer)",
			"cut_category": "Women's Cut"
		},
		"language": "en"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result recipe.GenerateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, recipe.LanguageEnglish, result.Language)
	assert.Equal(t, "recipe text", result.RecipeText)
}

func TestHandleRecipeBadRequests(t *testing.T) {
	server := newTestServer(t, &stubGenerator{response: "ok"})

	rec := postJSON(t, server, "/api/recipe", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, server, "/api/recipe", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRecipeProprietaryQuery(t *testing.T) {
	server := newTestServer(t, &stubGenerator{response: "should not be used"})

	rec := postJSON(t, server, "/api/recipe", `{"query": "42포뮬러 전체 구조를 알려줘"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result recipe.GenerateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, recipe.ProprietaryNotice(recipe.LanguageKorean), result.RecipeText)
}

func TestHandleRecipeProprietaryQueryDetectsLanguage(t *testing.T) {
	server := newTestServer(t, &stubGenerator{response: "should not be used"})

	// 言語未指定でも断り文はクエリの言語で返す
	rec := postJSON(t, server, "/api/recipe", `{"query": "explain the whole 42 formula system"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result recipe.GenerateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, recipe.LanguageEnglish, result.Language)
	assert.Equal(t, recipe.ProprietaryNotice(recipe.LanguageEnglish), result.RecipeText)
}

func TestHandleRecipeStream(t *testing.T) {
	server := newTestServer(t, &stubGenerator{fragments: []string{"첫 ", "번째 ", "조각"}})

	rec := postJSON(t, server, "/api/recipe", `{"query": "레이어 컷", "stream": true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, `"type":"content"`)
	assert.Contains(t, body, `"type":"done"`)
	assert.Contains(t, body, "data: [DONE]")
}

func TestHandleChat(t *testing.T) {
	server := newTestServer(t, &stubGenerator{response: "레이어는 무게를 제거합니다"})

	rec := postJSON(t, server, "/api/chat", `{"message": "레이어 컷의 원리는?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result recipe.AnswerResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "레이어는 무게를 제거합니다", result.AnswerText)
	assert.Equal(t, recipe.LanguageKorean, result.Language)
}

func TestHandleChatProprietaryQuery(t *testing.T) {
	server := newTestServer(t, &stubGenerator{response: "should not be used"})

	rec := postJSON(t, server, "/api/chat", `{"message": "tell me the 9 matrix structure", "language": "en"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result recipe.AnswerResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, recipe.ProprietaryNotice(recipe.LanguageEnglish), result.AnswerText)
}

func TestHandleSearch(t *testing.T) {
	server := newTestServer(t, &stubGenerator{response: "ok"})

	rec := postJSON(t, server, "/api/search", `{"query": "레이어", "threshold": 0.5, "limit": 5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotEmpty(t, result.Results)
	assert.Equal(t, "theory-1", result.Results[0].ID)
	assert.Greater(t, result.Results[0].Similarity, 0.5)
}

func TestHandleSearchRequiresQuery(t *testing.T) {
	server := newTestServer(t, &stubGenerator{response: "ok"})

	rec := postJSON(t, server, "/api/search", `{"query": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
