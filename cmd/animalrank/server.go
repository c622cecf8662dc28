package main

import (
	"net/http"
	"strings"

	"github.com/bountx/animal-ranking/internal/app/animals"
	"github.com/bountx/animal-ranking/internal/app/rankings"
	"github.com/bountx/animal-ranking/internal/app/ratings"
	"github.com/bountx/animal-ranking/internal/app/users"
	"github.com/bountx/animal-ranking/internal/auth"
	"github.com/bountx/animal-ranking/internal/httpapi"
	"github.com/bountx/animal-ranking/internal/store"
)

// rankingAPI combines the snapshot loader with the per-user view, which live
// on separate types.
type rankingAPI struct {
	*rankings.Loader
	*rankings.Service
}

func newHTTPHandler(cfg Config, dataStore *store.Store) http.Handler {
	tokens := auth.TokenService{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   "animal-ranking",
		Duration: cfg.TokenTTL,
	}

	userSvc := users.New(dataStore, tokens)
	animalSvc := animals.New(dataStore)
	ratingSvc := ratings.New(dataStore)

	rankingSvc := rankings.New(dataStore)
	loader := rankings.NewLoader(rankingSvc)

	api := httpapi.New(userSvc, animalSvc, ratingSvc, rankingAPI{loader, rankingSvc}, tokens)

	handler := httpapi.RequestLogging(httpapi.Recovery(api.Routes()))
	return withCORS(cfg.AllowedOrigins, handler)
}

func withCORS(allowedOrigins []string, next http.Handler) http.Handler {
	originAllowed := func(origin string) bool {
		if len(allowedOrigins) == 0 || origin == "" {
			return false
		}
		for _, o := range allowedOrigins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
