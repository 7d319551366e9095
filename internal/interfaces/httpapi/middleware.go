package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	"github.com/nilosmferreira/damasios-ai/internal/platform/logging"
	"github.com/nilosmferreira/damasios-ai/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const loginPath = "/login"

// SessionResolver reads the user id carried by a request's session cookie.
type SessionResolver interface {
	Resolve(r *http.Request) (string, bool)
}

// PrincipalResolver re-reads the user behind a session id.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID string) (user.Principal, error)
}

// Gate authenticates requests from the session cookie and enforces roles.
type Gate struct {
	sessions   SessionResolver
	principals PrincipalResolver
	logger     *logging.Logger
}

func NewGate(sessions SessionResolver, principals PrincipalResolver, logger *logging.Logger) *Gate {
	if logger == nil {
		logger = logging.Default()
	}
	return &Gate{sessions: sessions, principals: principals, logger: logger}
}

// Principal resolves the caller without writing a response. Store failures are returned;
// anonymous callers get ErrUnauthenticated.
func (g *Gate) Principal(r *http.Request) (user.Principal, error) {
	userID, ok := g.sessions.Resolve(r)
	if !ok {
		return user.Principal{}, usecase.ErrUnauthenticated
	}
	return g.principals.ResolvePrincipal(r.Context(), userID)
}

func (g *Gate) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.Gate.RequireUser")
		defer span.End()

		principal, ok := g.authenticate(ctx, w, r.WithContext(ctx))
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(ctx, principal)))
	})
}

func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.Gate.RequireAdmin")
		defer span.End()

		principal, ok := g.authenticate(ctx, w, r.WithContext(ctx))
		if !ok {
			return
		}
		if err := usecase.RequireAdmin(principal); err != nil {
			g.logger.WarnContext(ctx, "admin route denied", "user_id", principal.UserID, "role", string(principal.Role), "path", r.URL.Path)
			writeError(ctx, w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(ctx, principal)))
	})
}

func (g *Gate) authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request) (user.Principal, bool) {
	principal, err := g.Principal(r)
	if err == nil {
		return principal, true
	}
	if errors.Is(err, usecase.ErrUnauthenticated) {
		writeUnauthenticated(ctx, w, r, err)
		return user.Principal{}, false
	}
	g.logger.ErrorContext(ctx, "resolve session principal failed", "error", err)
	writeError(ctx, w, err)
	return user.Principal{}, false
}

// writeUnauthenticated sends browsers to the login page and API clients a 401 that still
// says where to log in.
func writeUnauthenticated(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
	if acceptsHTML(r) {
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
		return
	}
	w.Header().Set("Location", loginPath)
	writeError(ctx, w, err)
}

func acceptsHTML(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Accept")), "text/html")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func RequestLogging(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.RequestLogging")
		defer span.End()

		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r.WithContext(ctx))

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		logger.InfoContext(ctx, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}

func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "damasios-ai-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

func shouldTraceRequest(path string) bool {
	normalized := strings.ToLower(strings.TrimSpace(path))
	switch normalized {
	case "/healthz", "/health", "/livez", "/readyz":
		return false
	default:
		return true
	}
}

// CORS echoes configured origins. Session cookies need credentials, which browsers refuse
// with a wildcard origin, so "*" only applies to credential-less requests.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := false
	allowMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		candidate := strings.TrimSpace(origin)
		if candidate == "" {
			continue
		}
		if candidate == "*" {
			allowAll = true
			continue
		}
		allowMap[candidate] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.CORS")
		defer span.End()

		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		_, listed := allowMap[origin]
		if listed || allowAll {
			if listed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Accept")
			w.Header().Set("Access-Control-Max-Age", "600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
