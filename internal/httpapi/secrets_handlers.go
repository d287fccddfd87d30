package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/zalando/go-keyring"

	"jobinsight-engine/internal/secrets"
)

type SecretsHandler struct{}

type setSecretReq struct {
	Value string `json:"value"`
}

func secretFromPath(w http.ResponseWriter, r *http.Request) (secrets.Secret, bool) {
	name := strings.TrimPrefix(r.URL.Path, "/api/secrets/")
	s, ok := secrets.ByName(name)
	if !ok {
		WriteError(w, r, http.StatusNotFound, "unknown_secret", "unknown secret: "+name)
	}
	return s, ok
}

// SetByPath stores /api/secrets/{name} in the OS keychain.
func (h SecretsHandler) SetByPath(w http.ResponseWriter, r *http.Request) {
	s, ok := secretFromPath(w, r)
	if !ok {
		return
	}
	var req setSecretReq
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if err := secrets.Set(s, req.Value); err != nil {
		WriteError(w, r, http.StatusBadRequest, "store_failed", "failed to store secret: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	s, ok := secretFromPath(w, r)
	if !ok {
		return
	}
	if err := secrets.Delete(s); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		WriteError(w, r, http.StatusInternalServerError, "delete_failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
