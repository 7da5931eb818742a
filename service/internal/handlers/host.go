// internal/handlers/host.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/truco/service/internal/auth"
	"github.com/jason-s-yu/truco/service/internal/game"
	"github.com/jason-s-yu/truco/service/internal/models"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 10

// HostHandler serves the host control endpoints.
type HostHandler struct {
	game         *game.TrucoGame
	passwordHash string
	tokens       *auth.TokenIssuer
	log          *logrus.Entry
}

// NewHostHandler creates the host endpoints. passwordHash is a bcrypt hash.
func NewHostHandler(g *game.TrucoGame, passwordHash string, tokens *auth.TokenIssuer, logger logrus.FieldLogger) *HostHandler {
	return &HostHandler{
		game:         g,
		passwordHash: passwordHash,
		tokens:       tokens,
		log:          logger.WithField("component", "host"),
	}
}

type tokenRequest struct {
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IssueToken exchanges the host password for a bearer token.
func (hh *HostHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	if err := auth.CheckPassword(hh.passwordHash, req.Password); err != nil {
		hh.log.WithField("remote", r.RemoteAddr).Warn("host login failed")
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	token, exp, err := hh.tokens.Issue(auth.RoleHost)
	if err != nil {
		hh.log.WithError(err).Error("token issue failed")
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	hh.log.WithField("remote", r.RemoteAddr).Info("host token issued")
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: exp})
}

// Start force-starts the game with the current roster.
func (hh *HostHandler) Start(w http.ResponseWriter, r *http.Request) {
	if err := hh.game.ForceStart(); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	hh.log.Info("game force-started over http")
	writeJSON(w, http.StatusOK, hh.game.Status())
}

// Reset returns the table to waiting.
func (hh *HostHandler) Reset(w http.ResponseWriter, r *http.Request) {
	hh.game.Reset()
	hh.log.Info("game reset over http")
	writeJSON(w, http.StatusOK, hh.game.Status())
}

type statusResponse struct {
	game.Status
	Presence map[uuid.UUID]models.Role `json:"presence,omitempty"`
}

// Status reports the table summary plus the live connections the presence
// store knows about, when one is configured.
func (hh *HostHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{Status: hh.game.Status()}
	live, err := hh.game.LivePresence(r.Context())
	if err != nil {
		hh.log.WithError(err).Warn("presence list failed")
	}
	resp.Presence = live
	writeJSON(w, http.StatusOK, resp)
}

// RequireHost rejects requests without a valid host bearer token.
func (hh *HostHandler) RequireHost(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err == nil {
			_, err = hh.tokens.Verify(token)
		}
		if err != nil {
			hh.log.WithError(err).WithField("path", r.URL.Path).Debug("host auth rejected")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

var errNoBearer = errors.New("missing bearer token")

func bearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", errNoBearer
	}
	return strings.TrimSpace(token), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
