package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wineguy-maker/lcbo-app/pkg/kit"
)

const maxBodyBytes = 4 << 10

// Server exposes the PIN gate over HTTP. A correct PIN buys a session
// token; the token is what favorites mutation routes check. Handlers
// are exposed individually so the router can rate-limit PIN attempts.
type Server struct {
	Log  *zap.Logger
	Gate *Gate
	JWT  *TokenMaker
	TTL  time.Duration
}

func (s *Server) CreateHandler() http.HandlerFunc { return s.create }
func (s *Server) ShowHandler() http.HandlerFunc   { return s.show }
func (s *Server) DeleteHandler() http.HandlerFunc { return s.delete }

type createReq struct {
	PIN string `json:"pin"`
}

type createResp struct {
	SessionToken string `json:"session_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req createReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	if !s.Gate.Verify(strings.TrimSpace(req.PIN)) {
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid pin", nil)
		return
	}

	tok, claims, err := s.JWT.New(s.TTL)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("session token issue", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if s.Log != nil {
		s.Log.Info("session unlocked", zap.String("session_id", claims.SessionID))
	}
	kit.WriteJSON(w, http.StatusCreated, createResp{
		SessionToken: tok,
		ExpiresIn:    int64(s.TTL.Seconds()),
	})
}

func (s *Server) show(w http.ResponseWriter, r *http.Request) {
	claims, ok := bearerClaims(r, s.JWT)
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"session_id": claims.SessionID,
		"expires_at": claims.ExpiresAt.Time,
	})
}

// delete is the logout transition back to Locked. Tokens are
// stateless, so there is nothing to revoke server-side; the short TTL
// bounds a token the client failed to discard.
func (s *Server) delete(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func bearerClaims(r *http.Request, jwt *TokenMaker) (Claims, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return Claims{}, false
	}
	claims, err := jwt.Parse(strings.TrimPrefix(authz, "Bearer "))
	if err != nil {
		return Claims{}, false
	}
	return claims, true
}
