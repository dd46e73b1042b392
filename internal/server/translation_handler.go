package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/at-ishikawa/mizodict/internal/translation"
)

type batchTranslateRequest struct {
	Words     []string `json:"words"`
	Direction string   `json:"direction"`
}

type batchTranslateResponse struct {
	Translations []translation.BatchItem `json:"translations"`
	Count        int                     `json:"count"`
	Model        string                  `json:"model"`
	Success      bool                    `json:"success"`
}

type clearCacheResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.translation.Status())
}

func (s *Server) handleTranslate(direction translation.Direction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req translation.Request
		// A missing or unreadable body is handled like an empty word.
		_ = json.NewDecoder(r.Body).Decode(&req)

		result, err := s.translation.Translate(r.Context(), direction, req.Word)
		switch {
		case errors.Is(err, translation.ErrEmptyText):
			writeError(w, http.StatusBadRequest, "No word provided")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "Translation failed")
			return
		}

		response := translation.Response{
			Success:   true,
			Direction: direction,
			Model:     result.Model,
			Cached:    result.Cached,
		}
		if direction == translation.EnglishToMizo {
			response.English, response.Mizo = result.Input, result.Output
		} else {
			response.Mizo, response.English = result.Input, result.Output
		}
		writeJSON(w, http.StatusOK, response)
	}
}

func (s *Server) handleBatchTranslate(w http.ResponseWriter, r *http.Request) {
	var req batchTranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Words) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid words list")
		return
	}

	direction := translation.MizoToEnglish
	if req.Direction != "" {
		parsed, err := translation.ParseDirection(req.Direction)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		direction = parsed
	}

	items := s.translation.BatchTranslate(r.Context(), direction, req.Words)
	writeJSON(w, http.StatusOK, batchTranslateResponse{
		Translations: items,
		Count:        len(items),
		Model:        s.translation.ModelName(),
		Success:      true,
	})
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	s.translation.ClearCache()
	writeJSON(w, http.StatusOK, clearCacheResponse{Message: "Cache cleared", Success: true})
}
