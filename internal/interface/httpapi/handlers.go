package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/samber/mo"

	"github.com/hairgator/recipe-rag/internal/core/recipe"
	"github.com/hairgator/recipe-rag/internal/core/retrieval"
)

type recipeRequest struct {
	Query    string                  `json:"query"`
	Style    *recipe.StyleParameters `json:"style"`
	Language string                  `json:"language"`
	TopK     int                     `json:"top_k"`
	Stream   bool                    `json:"stream"`
}

type chatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

type searchRequest struct {
	Query     string  `json:"query"`
	Threshold float64 `json:"threshold"`
	Limit     int     `json:"limit"`
}

type searchResponse struct {
	Results      []searchHit `json:"results"`
	UsedFallback bool        `json:"used_fallback"`
}

type searchHit struct {
	ID           string  `json:"id"`
	Title        string  `json:"title,omitempty"`
	SampleCode   string  `json:"sample_code,omitempty"`
	Method       string  `json:"method"`
	Similarity   float64 `json:"similarity,omitempty"`
	KeywordScore int     `json:"keyword_score,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleRecipe はレシピ生成リクエストを処理する。
// stream 指定時は Server-Sent Events で生成断片を配信し、
// 最後に秘匿フィルタ適用済みの全文を送る。
func (s *Server) handleRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	params := recipe.GenerateParams{
		Query: req.Query,
		TopK:  req.TopK,
	}
	if req.Language != "" {
		params.Language = recipe.ParseLanguage(req.Language)
	}
	if req.Style != nil {
		params.Style = mo.Some(*req.Style)
	}

	if req.Stream {
		s.streamRecipe(w, r, params)
		return
	}

	result, err := s.recipes.Generate(r.Context(), params)
	if err != nil {
		s.writeRecipeError(w, err, noticeLanguage(params))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// noticeLanguage はエラー応答の定型文に使う言語を確定する。
// 言語指定がない場合はクエリの文字種から判定する。
func noticeLanguage(params recipe.GenerateParams) recipe.Language {
	if params.Language != "" {
		return params.Language
	}
	if params.Query != "" {
		return recipe.DetectLanguage(params.Query)
	}
	return recipe.DefaultLanguage
}

func (s *Server) streamRecipe(w http.ResponseWriter, r *http.Request, params recipe.GenerateParams) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	params.OnFragment = func(fragment string) {
		payload, _ := json.Marshal(map[string]string{"type": "content", "content": fragment})
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}

	result, err := s.recipes.Generate(r.Context(), params)
	if err != nil {
		payload, _ := json.Marshal(map[string]string{"type": "error", "error": publicErrorMessage(err, noticeLanguage(params))})
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
		return
	}

	final, _ := json.Marshal(map[string]any{"type": "done", "recipe": result})
	fmt.Fprintf(w, "data: %s\n\n", final)
	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

// handleChat は理論Q&Aリクエストを処理する。
// 内部構造を尋ねる質問には定型の断り文を通常応答として返す。
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	var lang recipe.Language
	if req.Language != "" {
		lang = recipe.ParseLanguage(req.Language)
	}
	result, err := s.recipes.Answer(r.Context(), req.Message, lang)
	if err != nil {
		if errors.Is(err, recipe.ErrProprietaryQuery) {
			if lang == "" {
				lang = recipe.DetectLanguage(req.Message)
			}
			writeJSON(w, http.StatusOK, recipe.AnswerResult{
				AnswerText: recipe.ProprietaryNotice(lang),
				Language:   lang,
			})
			return
		}
		s.writeRecipeError(w, err, lang)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleSearch はハイブリッド検索を直接実行する
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := s.retriever.Search(r.Context(), retrieval.Params{
		Query:      recipe.NormalizeQuery(req.Query),
		Threshold:  req.Threshold,
		FinalLimit: req.Limit,
	})
	if err != nil {
		if errors.Is(err, retrieval.ErrQueryRequired) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
			return
		}
		s.logger.Error("search failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "search failed"})
		return
	}

	hits := make([]searchHit, 0, len(result.Results))
	for _, r := range result.Results {
		hit := searchHit{
			ID:         r.Chunk.ID,
			Title:      r.Chunk.Title,
			SampleCode: r.Chunk.SampleCode,
			Method:     string(r.Method),
		}
		if sim, ok := r.VectorScore.Get(); ok {
			hit.Similarity = sim
		}
		if score, ok := r.KeywordScore.Get(); ok {
			hit.KeywordScore = score
		}
		hits = append(hits, hit)
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Results:      hits,
		UsedFallback: result.UsedFallback,
	})
}

func (s *Server) writeRecipeError(w http.ResponseWriter, err error, lang recipe.Language) {
	switch {
	case errors.Is(err, recipe.ErrNoInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query or style parameters required"})
	case errors.Is(err, recipe.ErrProprietaryQuery):
		writeJSON(w, http.StatusOK, recipe.GenerateResult{
			RecipeText: recipe.ProprietaryNotice(lang),
			Language:   lang,
		})
	case errors.Is(err, retrieval.ErrDimensionMismatch):
		s.logger.Error("embedding dimension mismatch", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "embedding configuration error"})
	default:
		s.logger.Error("recipe generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "recipe generation failed"})
	}
}

func publicErrorMessage(err error, lang recipe.Language) string {
	if errors.Is(err, recipe.ErrProprietaryQuery) {
		return recipe.ProprietaryNotice(lang)
	}
	return "recipe generation failed"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
