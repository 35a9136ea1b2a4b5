package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"message": msg})
}

// respondInternal logs the real error server-side and hands the client a
// generic message.
func respondInternal(w http.ResponseWriter, lg *zap.SugaredLogger, op string, err error) {
	lg.Errorw(op, "error", err)
	respondError(w, http.StatusInternalServerError, "server error")
}
