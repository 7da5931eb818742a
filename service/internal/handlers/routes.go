// internal/handlers/routes.go
package handlers

import "net/http"

// NewRouter mounts the WebSocket endpoint, the health check and, when host is
// non-nil, the host control endpoints.
func NewRouter(hub *Hub, host *HostHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/ws", hub)

	if host != nil {
		mux.HandleFunc("POST /host/token", host.IssueToken)
		mux.HandleFunc("POST /host/start", host.RequireHost(host.Start))
		mux.HandleFunc("POST /host/reset", host.RequireHost(host.Reset))
		mux.HandleFunc("GET /host/status", host.RequireHost(host.Status))
	}
	return mux
}
