package httpapi

import (
	"crypto/subtle"
	"net"
	"net/http"
)

// shutdownHandler accepts POST /shutdown from loopback callers that present
// the token printed at startup.
func shutdownHandler(token string, shutdown func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if ip := net.ParseIP(host); ip == nil || !ip.IsLoopback() {
			WriteError(w, r, http.StatusForbidden, "forbidden", "shutdown is only allowed from localhost")
			return
		}

		got := r.Header.Get("X-Shutdown-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			WriteError(w, r, http.StatusUnauthorized, "unauthorized", "bad shutdown token")
			return
		}

		WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "msg": "shutting down"})
		go shutdown()
	}
}
