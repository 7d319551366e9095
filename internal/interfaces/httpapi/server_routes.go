package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /{$}", handler.Home)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler, gate *Gate) {
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
	mux.HandleFunc("POST /v1/auth/logout", handler.Logout)
	mux.Handle("GET /v1/auth/me", gate.RequireUser(http.HandlerFunc(handler.Me)))
	mux.Handle("GET /v1/dashboard", gate.RequireUser(http.HandlerFunc(handler.GetDashboard)))
}

func registerAthleteRoutes(mux *http.ServeMux, handler *Handler, gate *Gate) {
	mux.Handle("GET /v1/athletes", gate.RequireUser(http.HandlerFunc(handler.ListAthletes)))
	mux.Handle("POST /v1/athletes/actions", gate.RequireAdmin(http.HandlerFunc(handler.AthleteActions)))
}

// Match creation and edits are admin-only inside the service; presence is open to athletes.
func registerMatchRoutes(mux *http.ServeMux, handler *Handler, gate *Gate) {
	mux.Handle("GET /v1/places", gate.RequireUser(http.HandlerFunc(handler.ListPlaces)))
	mux.Handle("GET /v1/matches", gate.RequireUser(http.HandlerFunc(handler.ListMatches)))
	mux.Handle("POST /v1/matches/actions", gate.RequireUser(http.HandlerFunc(handler.MatchActions)))
}

func registerFinanceRoutes(mux *http.ServeMux, handler *Handler, gate *Gate) {
	mux.Handle("GET /v1/finance", gate.RequireAdmin(http.HandlerFunc(handler.GetFinance)))
	mux.Handle("POST /v1/finance/actions", gate.RequireAdmin(http.HandlerFunc(handler.FinanceActions)))
	mux.Handle("GET /v1/me/pendencies", gate.RequireUser(http.HandlerFunc(handler.MyPendencies)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, gate *Gate) {
	mux.Handle("GET /v1/admin/users", gate.RequireAdmin(http.HandlerFunc(handler.ListUsers)))
	mux.Handle("POST /v1/admin/users/actions", gate.RequireAdmin(http.HandlerFunc(handler.UserActions)))
}
