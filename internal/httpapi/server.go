package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/bountx/animal-ranking/internal/app/animals"
	"github.com/bountx/animal-ranking/internal/app/rankings"
	"github.com/bountx/animal-ranking/internal/app/ratings"
	"github.com/bountx/animal-ranking/internal/i18n"
	"github.com/bountx/animal-ranking/internal/score"
	"github.com/bountx/animal-ranking/internal/store"
)

// UserService captures the account operations needed by the HTTP handlers.
type UserService interface {
	Signup(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
}

// AnimalService exposes the localized animal catalogue.
type AnimalService interface {
	List(ctx context.Context, locale string) ([]animals.Animal, error)
	Get(ctx context.Context, id int64, locale string) (animals.Animal, error)
}

// RatingService describes rating submission and lookup workflows.
type RatingService interface {
	Submit(ctx context.Context, userID, animalID int64, scores score.CategoryScores) (store.Rating, error)
	Get(ctx context.Context, userID, animalID int64) (store.Rating, error)
}

// RankingService provides the leaderboard views.
type RankingService interface {
	Load(ctx context.Context, locale string) (rankings.Snapshot, error)
	UserStandings(ctx context.Context, userID int64, locale string) ([]rankings.Standing, error)
}

// Identity resolves bearer tokens to user ids.
type Identity interface {
	UserID(token string) (int64, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users    UserService
	animals  AnimalService
	ratings  RatingService
	rankings RankingService
	identity Identity
}

// New configures a Server with the given service implementations.
func New(users UserService, animals AnimalService, ratings RatingService, rankings RankingService, identity Identity) *Server {
	return &Server{
		users:    users,
		animals:  animals,
		ratings:  ratings,
		rankings: rankings,
		identity: identity,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /api/v1/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/v1/animals", s.handleListAnimals)
	mux.HandleFunc("GET /api/v1/animals/{id}", s.handleGetAnimal)
	mux.HandleFunc("GET /api/v1/animals/{id}/rating", s.handleGetRating)
	mux.HandleFunc("PUT /api/v1/animals/{id}/rating", s.handleSubmitRating)

	mux.HandleFunc("GET /api/v1/rankings", s.handleRankings)
	mux.HandleFunc("GET /api/v1/me/rankings", s.handleMyRankings)
	mux.HandleFunc("GET /api/v1/categories", s.handleCategories)

	return mux
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	if err := s.users.Signup(r.Context(), req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, store.ErrUserExists):
			writeJSON(w, http.StatusConflict, errorResponse{Error: "username already taken"})
		default:
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if !errors.Is(err, store.ErrInvalidCredentials) {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) handleListAnimals(w http.ResponseWriter, r *http.Request) {
	locale := requestLocale(r)

	list, err := s.animals.List(r.Context(), locale)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load animals"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Animals []animals.Animal `json:"animals"`
	}{Animals: list})
}

func (s *Server) handleGetAnimal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	animal, err := s.animals.Get(r.Context(), id, requestLocale(r))
	if err != nil {
		if errors.Is(err, store.ErrAnimalNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "animal not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load animal"})
		return
	}

	writeJSON(w, http.StatusOK, animal)
}

type ratingResponse struct {
	Rating *store.Rating `json:"rating"`
}

func (s *Server) handleGetRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	animalID, ok := pathID(w, r)
	if !ok {
		return
	}

	rating, err := s.ratings.Get(r.Context(), userID, animalID)
	if err != nil {
		// A missing rating is a normal branch: the form simply starts empty.
		if errors.Is(err, store.ErrRatingNotFound) {
			writeJSON(w, http.StatusOK, ratingResponse{Rating: nil})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load rating"})
		return
	}

	writeJSON(w, http.StatusOK, ratingResponse{Rating: &rating})
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	animalID, ok := pathID(w, r)
	if !ok {
		return
	}

	var scores score.CategoryScores
	if err := json.NewDecoder(r.Body).Decode(&scores); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	rating, err := s.ratings.Submit(r.Context(), userID, animalID, scores)
	if err != nil {
		var verr *score.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error()})
		case errors.Is(err, ratings.ErrUnauthenticated):
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not save rating"})
		}
		return
	}

	writeJSON(w, http.StatusOK, ratingResponse{Rating: &rating})
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	locale := requestLocale(r)
	key, ok := sortKey(w, r)
	if !ok {
		return
	}

	snap, err := s.rankings.Load(r.Context(), locale)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load rankings"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		SortKey   score.SortKey       `json:"sort_key"`
		Standings []rankings.Standing `json:"standings"`
	}{SortKey: key, Standings: snap.SortBy(key)})
}

func (s *Server) handleMyRankings(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	locale := requestLocale(r)
	key, ok := sortKey(w, r)
	if !ok {
		return
	}

	standings, err := s.rankings.UserStandings(r.Context(), userID, locale)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load rankings"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		SortKey   score.SortKey       `json:"sort_key"`
		Standings []rankings.Standing `json:"standings"`
	}{SortKey: key, Standings: rankings.Sort(standings, key)})
}

type categoryInfo struct {
	Key   score.Category `json:"key"`
	Label string         `json:"label"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	locale := requestLocale(r)

	categories := make([]categoryInfo, 0, 10)
	for _, c := range score.Categories() {
		categories = append(categories, categoryInfo{Key: c, Label: i18n.CategoryLabel(c, locale)})
	}

	writeJSON(w, http.StatusOK, struct {
		Categories []categoryInfo `json:"categories"`
	}{Categories: categories})
}

// currentUser resolves the bearer token. A missing or invalid token ends the
// request with 401.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return 0, false
	}

	userID, err := s.identity.UserID(token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
		return 0, false
	}
	return userID, true
}

func requestLocale(r *http.Request) string {
	return i18n.NormalizeLocale(r.URL.Query().Get("locale"))
}

func sortKey(w http.ResponseWriter, r *http.Request) (score.SortKey, bool) {
	key, err := score.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return "", false
	}
	return key, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid animal id"})
		return 0, false
	}
	return id, true
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
