package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/schedule", handler.ListSchedule)
	mux.HandleFunc("GET /api/leaderboard", handler.ListLeaderboard)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /api/rankings", RequireAuth(verifier, http.HandlerFunc(handler.ListRankings)))
	mux.Handle("GET /api/field", RequireAuth(verifier, http.HandlerFunc(handler.GetCurrentField)))
	mux.Handle("POST /api/selections", RequireAuth(verifier, http.HandlerFunc(handler.SubmitSelection)))
	mux.Handle("POST /api/selections/lock", RequireAuth(verifier, http.HandlerFunc(handler.LockSelection)))
	mux.Handle("GET /api/selections", RequireAuth(verifier, http.HandlerFunc(handler.ListSelections)))
	mux.Handle("GET /api/ledger", RequireAuth(verifier, http.HandlerFunc(handler.ListLedger)))
	mux.Handle("GET /api/snapshot", RequireAuth(verifier, http.HandlerFunc(handler.GetSnapshot)))
	mux.Handle("GET /api/profile", RequireAuth(verifier, http.HandlerFunc(handler.GetProfile)))
	mux.Handle("PUT /api/profile/display-name", RequireAuth(verifier, http.HandlerFunc(handler.UpdateDisplayName)))
	mux.Handle("PUT /api/profile/avatar", RequireAuth(verifier, http.HandlerFunc(handler.UpdateAvatar)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /internal/jobs/reconcile", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReconcileJob)))
	mux.Handle("POST /internal/jobs/autolock", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunAutoLockJob)))
	mux.Handle("POST /internal/jobs/clear-season", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunClearSeasonJob)))
}
