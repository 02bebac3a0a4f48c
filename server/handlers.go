package server

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-session-service/auth"
)

// RegisterHandler creates the user and, on success, replays the request
// against the login route so registration logs the user straight in.
// Validation failures keep the 200 status; the envelope carries the reason.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds auth.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			writeJSON(w, http.StatusOK, response{Success: false, Message: auth.ErrInvalidInput.Error()})
			return
		}

		identity, err := s.auth.Register(r.Context(), creds)
		if err != nil {
			if errors.Is(err, auth.ErrInternal) {
				w.WriteHeader(http.StatusNotImplemented)
				return
			}
			writeJSON(w, http.StatusOK, response{Success: false, Message: err.Error()})
			return
		}

		log.Info().Str("userId", identity.ID).Str("email", identity.Email).Msg("user registered")

		// 307 preserves the POST method and body
		http.Redirect(w, r, RouteLogin, http.StatusTemporaryRedirect)
	}
}

// LoginHandler verifies credentials and responds with a fresh token pair.
// On success the message field carries the identity object.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds auth.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			writeJSON(w, http.StatusOK, response{Success: false, Message: auth.ErrInvalidInput.Error()})
			return
		}

		identity, err := s.auth.Login(r.Context(), creds)
		if err != nil {
			if errors.Is(err, auth.ErrInternal) {
				w.WriteHeader(http.StatusNotImplemented)
				return
			}
			writeJSON(w, http.StatusOK, response{Success: false, Message: err.Error()})
			return
		}

		pair, err := s.auth.IssueSession(r.Context(), identity)
		if err != nil {
			w.WriteHeader(http.StatusNotImplemented)
			return
		}

		log.Info().Str("email", identity.Email).Msg("user logged in")
		writeJSON(w, http.StatusOK, response{
			Success:      true,
			Message:      identity,
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		})
	}
}

// RefreshTokenHandler rotates the caller's session. Every rejection is a 403
// with the msg envelope; a superseded token is logged distinctly because it
// can indicate token theft.
func (s *Server) RefreshTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		// A missing or unreadable body is handled below as a missing token
		_ = json.NewDecoder(r.Body).Decode(&body)

		pair, err := s.auth.Refresh(r.Context(), body.RefreshToken)
		if err != nil {
			if errors.Is(err, auth.ErrInternal) {
				w.WriteHeader(http.StatusNotImplemented)
				return
			}
			writeJSON(w, http.StatusForbidden, refreshFailure{Msg: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, response{
			Success:      true,
			Message:      "",
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		})
	}
}

// LogoutHandler deletes the caller's refresh session.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, response{Success: false, Message: auth.ErrUnauthorized.Error()})
			return
		}

		if err := s.auth.Logout(r.Context(), identity.ID); err != nil {
			w.WriteHeader(http.StatusNotImplemented)
			return
		}

		log.Info().Str("email", identity.Email).Msg("user logged out")
		writeJSON(w, http.StatusOK, response{Success: true, Message: "Logged out successfully!"})
	}
}

// AuthTestHandler is a probe route for clients to check their access token.
func (s *Server) AuthTestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, response{Success: false, Message: auth.ErrUnauthorized.Error()})
			return
		}

		writeJSON(w, http.StatusOK, response{Success: true, Message: identity})
	}
}
