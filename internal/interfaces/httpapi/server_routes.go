package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedRosterRoutes(mux, handler, verifier)
	registerAuthorizedScoringRoutes(mux, handler, verifier)
	registerAuthorizedAdminRoutes(mux, handler, verifier)
}

func registerAuthorizedRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams/{teamID}/players", RequireAuth(verifier, http.HandlerFunc(handler.AddPlayer)))
	mux.Handle("DELETE /v1/teams/{teamID}/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.DropPlayer)))
	mux.Handle("PUT /v1/teams/{teamID}/starters", RequireAuth(verifier, http.HandlerFunc(handler.SetStarters)))
	mux.Handle("GET /v1/teams/{teamID}/move-summary", RequireAuth(verifier, http.HandlerFunc(handler.GetMoveSummary)))
}

func registerAuthorizedScoringRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/weeks/{weekID}/scores", RequireAuth(verifier, http.HandlerFunc(handler.GetWeekScores)))
	mux.Handle("GET /v1/weeks/{weekID}/bonuses", RequireAuth(verifier, http.HandlerFunc(handler.GetWeekBonuses)))
}

func registerAuthorizedAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/admin/teams/{teamID}/starters", RequireAuth(verifier, http.HandlerFunc(handler.AdminSetStarters)))
	mux.Handle("POST /v1/admin/teams/{teamID}/move-grants", RequireAuth(verifier, http.HandlerFunc(handler.AdminGrantMoves)))
	mux.Handle("PUT /v1/admin/teams/{teamID}/lineup-history/{weekID}", RequireAuth(verifier, http.HandlerFunc(handler.AdminEditLineupHistory)))
	mux.Handle("POST /v1/admin/recalculate", RequireAuth(verifier, http.HandlerFunc(handler.AdminRecalculate)))
	mux.Handle("GET /v1/admin/audit-log", RequireAuth(verifier, http.HandlerFunc(handler.AdminGetAuditLog)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/weekly-scores", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunWeeklyScoresJob)))
	mux.Handle("POST /v1/internal/jobs/weekly-bonuses", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunWeeklyBonusesJob)))
	mux.Handle("POST /v1/internal/jobs/weekly-reset", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunWeeklyResetJob)))
	mux.Handle("POST /v1/internal/jobs/lineup-snapshot", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunLineupSnapshotJob)))
}
