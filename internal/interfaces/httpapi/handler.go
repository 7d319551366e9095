package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/nilosmferreira/damasios-ai/internal/domain/validation"
	"github.com/nilosmferreira/damasios-ai/internal/platform/logging"
	"github.com/nilosmferreira/damasios-ai/internal/platform/session"
	"github.com/nilosmferreira/damasios-ai/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	authService      *usecase.AuthService
	athleteService   *usecase.AthleteService
	matchService     *usecase.MatchService
	financeService   *usecase.FinanceService
	dashboardService *usecase.DashboardService
	sessions         *session.Manager
	gate             *Gate
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	athleteService *usecase.AthleteService,
	matchService *usecase.MatchService,
	financeService *usecase.FinanceService,
	dashboardService *usecase.DashboardService,
	sessions *session.Manager,
	gate *Gate,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		authService:      authService,
		athleteService:   athleteService,
		matchService:     matchService,
		financeService:   financeService,
		dashboardService: dashboardService,
		sessions:         sessions,
		gate:             gate,
		logger:           logger.Named("httpapi"),
		validator:        newValidator(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	err := h.validator.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	errs := validation.Errors{}
	for _, fe := range fieldErrs {
		errs.Add(fe.Field(), validationMessage(fe))
	}
	return usecase.Invalid(errs)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "invalid email"
	case "min":
		return fmt.Sprintf("%s must have at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	return body, nil
}

func decodeStrict(body []byte, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	return decodeStrict(body, dst)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Home routes the bare root to the dashboard or to the login page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Home")
	defer span.End()

	target := loginPath
	if _, err := h.gate.Principal(r.WithContext(ctx)); err == nil {
		target = "/dashboard"
	} else if !errors.Is(err, usecase.ErrUnauthenticated) {
		h.logger.WarnContext(ctx, "resolve home principal failed", "error", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dashboard, err := h.dashboardService.Get(ctx, principal)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(dashboard))
}
