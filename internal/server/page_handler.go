package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/at-ishikawa/mizodict/internal/app"
	"github.com/at-ishikawa/mizodict/internal/assets"
	"github.com/at-ishikawa/mizodict/internal/search"
	"github.com/at-ishikawa/mizodict/internal/translation"
	"github.com/at-ishikawa/mizodict/internal/view"
	"github.com/at-ishikawa/mizodict/internal/wotd"
)

type toggleFavoriteRequest struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

type toggleFavoriteResponse struct {
	Favorite  bool         `json:"favorite"`
	Favorites []view.Entry `json:"favorites"`
}

type recentResponse struct {
	Recent []string `json:"recent"`
}

type connectivityResponse struct {
	Connected bool `json:"connected"`
}

// parseQuery reads q, mode and direction. Unknown modes and directions are errors.
func parseQuery(values url.Values) (search.Query, error) {
	mode, err := search.ParseMode(values.Get("mode"))
	if err != nil {
		return search.Query{}, err
	}
	direction := translation.MizoToEnglish
	if raw := values.Get("direction"); raw != "" {
		direction, err = translation.ParseDirection(raw)
		if err != nil {
			return search.Query{}, err
		}
	}
	return search.Query{Text: values.Get("q"), Mode: mode, Direction: direction}, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q, err := parseQuery(values)
	if err != nil {
		// The page stays usable with defaults for a hand-edited URL.
		s.logger.Info("invalid page query", "error", err)
		q = search.Query{Text: values.Get("q"), Mode: search.ModeOffline, Direction: translation.MizoToEnglish}
	}

	page := s.app.Page(r.Context(), app.PageRequest{
		Tab:       view.ParseTab(values.Get("tab")),
		Query:     q.Text,
		Mode:      q.Mode,
		Direction: q.Direction,
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := assets.WritePage(w, s.app.Config.Templates.PageTemplate, page); err != nil {
		s.logger.Error("failed to render the page", "error", err)
		http.Error(w, "failed to render the page", http.StatusInternalServerError)
	}
}

// handleSearch returns the result card, or the placeholder with a status describing why there is none.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.app.Engine.Search(r.Context(), q)
	var translationErr *search.TranslationError
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, search.ErrServerOffline):
		writeJSON(w, http.StatusServiceUnavailable, view.ErrorResults(err))
	case errors.As(err, &translationErr):
		writeJSON(w, http.StatusBadGateway, view.ErrorResults(err))
	case err != nil:
		s.logger.Error("search failed", "query", q.Text, "error", err)
		writeJSON(w, http.StatusInternalServerError, view.ErrorResults(err))
	default:
		writeJSON(w, http.StatusOK, view.ResultCard(result, s.app.Favorites.IsFavorite))
	}
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, view.FavoriteEntries(s.app.Favorites.List()))
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req toggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Word) == "" {
		writeError(w, http.StatusBadRequest, "No word provided")
		return
	}

	favorite := s.app.Favorites.Toggle(r.Context(), req.Word, req.Definition)
	writeJSON(w, http.StatusOK, toggleFavoriteResponse{
		Favorite:  favorite,
		Favorites: view.FavoriteEntries(s.app.Favorites.List()),
	})
}

// handleToggleFavoriteForm serves the page's star buttons and goes back to the page.
func (s *Server) handleToggleFavoriteForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	word := r.PostForm.Get("word")
	if strings.TrimSpace(word) == "" {
		http.Error(w, "no word provided", http.StatusBadRequest)
		return
	}
	s.app.Favorites.Toggle(r.Context(), word, r.PostForm.Get("definition"))
	redirectBack(w, r)
}

func (s *Server) handleListRecent(w http.ResponseWriter, r *http.Request) {
	recent := s.app.Favorites.Recent()
	if recent == nil {
		recent = []string{}
	}
	writeJSON(w, http.StatusOK, recentResponse{Recent: recent})
}

func (s *Server) handleClearRecent(w http.ResponseWriter, r *http.Request) {
	s.app.Favorites.ClearRecent(r.Context())
	writeJSON(w, http.StatusOK, recentResponse{Recent: []string{}})
}

func (s *Server) handleClearRecentForm(w http.ResponseWriter, r *http.Request) {
	s.app.Favorites.ClearRecent(r.Context())
	redirectBack(w, r)
}

func (s *Server) handleWordOfDay(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.WordOfDayView(r.Context()))
}

func (s *Server) handleWordOfDayHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.app.WordOfDay.History(r.Context())
	if err != nil {
		s.logger.Warn("failed to read the word of the day history", "error", err)
	}
	if history == nil {
		history = []wotd.Record{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleConnectivity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, connectivityResponse{Connected: s.app.Checker.Connected()})
}

// handleDictionary serves the loaded word list in its original order.
func (s *Server) handleDictionary(w http.ResponseWriter, r *http.Request) {
	body, err := json.Marshal(s.app.Dictionary.Index())
	if err != nil {
		s.logger.Error("failed to encode the dictionary", "error", err)
		http.Error(w, "failed to encode the dictionary", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/manifest+json")
	_, _ = w.Write(assets.Manifest())
}

// redirectBack returns to the page the form was posted from, or to the dictionary tab.
// The query is dropped so that following the redirect does not run and record the search again.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if referer, err := url.Parse(r.Referer()); err == nil && referer.Path == "/" {
		values := referer.Query()
		values.Del("q")
		if encoded := values.Encode(); encoded != "" {
			target = "/?" + encoded
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleCurrentWordOfDay(w http.ResponseWriter, r *http.Request) {
	record, ok := s.app.WordOfDay.Current(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "No word of the day yet")
		return
	}
	writeJSON(w, http.StatusOK, record)
}
