package httpapi

import (
	"net/http"

	"github.com/nilosmferreira/damasios-ai/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	gate *Gate,
	logger *logging.Logger,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerAuthRoutes(mux, handler, gate)
	registerAthleteRoutes(mux, handler, gate)
	registerMatchRoutes(mux, handler, gate)
	registerFinanceRoutes(mux, handler, gate)
	registerAdminRoutes(mux, handler, gate)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
