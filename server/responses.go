package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// response is the common API envelope. Message carries a user-facing string,
// except on login and auth-test where it carries the identity object.
type response struct {
	Success      bool   `json:"success"`
	Message      any    `json:"message"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// refreshFailure is the envelope for refresh-token rejections. It differs
// from the common envelope; clients depend on the bare msg field.
type refreshFailure struct {
	Msg string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("response encoding failed")
	}
}
