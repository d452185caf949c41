package rest

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dgravitate/quantum-examples/internal/entropy"
	"github.com/dgravitate/quantum-examples/internal/repository"
	"github.com/dgravitate/quantum-examples/internal/walk"
)

const (
	maxRandomBytes = 1024
	maxKeyBits     = 4096
	maxWalkSteps   = 1000
	maxPositions   = 1024
	maxResults     = 100
)

type entropySource interface {
	RandomBytes(ctx context.Context, n int) ([]byte, error)
	GenerateKey(ctx context.Context, bits int) ([]byte, error)
}

type archive interface {
	RecentResults(ctx context.Context, limit int) ([]repository.GameResult, error)
}

type Handlers struct {
	logger  *slog.Logger
	entropy entropySource
	archive archive
}

func NewHandlers(logger *slog.Logger, entropy entropySource, archive archive) *Handlers {
	return &Handlers{
		logger:  logger.With("component", "rest"),
		entropy: entropy,
		archive: archive,
	}
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// RandomBytes serves GET /api/random?bytes=N.
func (that *Handlers) RandomBytes(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "RandomBytes")

	n, err := queryInt(r, "bytes", 32)
	if err != nil || n < 1 || n > maxRandomBytes {
		writeError(w, http.StatusBadRequest, "bytes must be an integer between 1 and 1024")
		return
	}

	randomBytes, err := that.entropy.RandomBytes(r.Context(), n)
	if err != nil {
		log.Error("failed to generate random bytes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate random bytes")
		return
	}

	writeJSON(w, map[string]string{"bytes": hex.EncodeToString(randomBytes)})
}

// GenerateKey serves GET /api/key?bits=N.
func (that *Handlers) GenerateKey(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GenerateKey")

	bits, err := queryInt(r, "bits", entropy.KeyBits)
	if err != nil || bits < 1 || bits > maxKeyBits {
		writeError(w, http.StatusBadRequest, "bits must be an integer between 1 and 4096")
		return
	}

	key, err := that.entropy.GenerateKey(r.Context(), bits)
	if err != nil {
		log.Error("failed to generate key", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate key")
		return
	}

	writeJSON(w, map[string]string{"key": hex.EncodeToString(key)})
}

// Walk serves GET /api/walk?steps=S&positions=P&start=I.
func (that *Handlers) Walk(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Walk")

	steps, err := queryInt(r, "steps", 10)
	if err != nil || steps < 0 || steps > maxWalkSteps {
		writeError(w, http.StatusBadRequest, "steps must be an integer between 0 and 1000")
		return
	}

	positions, err := queryInt(r, "positions", 11)
	if err != nil || positions < 1 || positions > maxPositions {
		writeError(w, http.StatusBadRequest, "positions must be an integer between 1 and 1024")
		return
	}

	start, err := queryInt(r, "start", walk.CenterStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be an integer")
		return
	}

	dist, err := walk.Simulate(walk.Config{Steps: steps, Positions: positions, StartPos: start})
	if err != nil {
		log.Error("failed to simulate walk", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, map[string]any{"probabilities": dist})
}

// RecentResults serves GET /api/results?limit=N from the game archive.
func (that *Handlers) RecentResults(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "RecentResults")

	limit, err := queryInt(r, "limit", 20)
	if err != nil || limit < 1 || limit > maxResults {
		writeError(w, http.StatusBadRequest, "limit must be an integer between 1 and 100")
		return
	}

	results, err := that.archive.RecentResults(r.Context(), limit)
	if err != nil {
		log.Error("failed to list results", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list results")
		return
	}

	type resultJSON struct {
		ID         string `json:"id"`
		Winner     string `json:"winner"`
		Moves      int    `json:"moves"`
		FinishedAt string `json:"finished_at"`
	}

	payload := make([]resultJSON, 0, len(results))
	for _, result := range results {
		payload = append(payload, resultJSON{
			ID:         result.ID,
			Winner:     result.Winner,
			Moves:      result.Moves,
			FinishedAt: result.FinishedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, map[string]any{"results": payload})
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
