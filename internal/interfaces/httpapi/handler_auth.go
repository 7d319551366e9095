package httpapi

import (
	"net/http"

	"github.com/nilosmferreira/damasios-ai/internal/usecase"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	u, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	cookie, err := h.sessions.Create(u.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "create session failed", "user_id", u.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	http.SetCookie(w, cookie)

	writeSuccess(ctx, w, http.StatusOK, userToDTO(u))
}

// Logout always succeeds; clearing a cookie that was never set is harmless.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Logout")
	defer span.End()

	http.SetCookie(w, h.sessions.Destroy())
	writeMutation(ctx, w, http.StatusOK, "logged out", nil)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Me")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, principalToDTO(principal))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUsers")
	defer span.End()

	users, err := h.authService.ListUsers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list users failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sliceToDTO(users, userOverviewToDTO))
}

func (h *Handler) UserActions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UserActions")
	defer span.End()

	cmd, err := h.decodeCommand(ctx, w, r, userCommands)
	if err != nil {
		h.logger.WarnContext(ctx, "decode user action failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	switch c := cmd.(type) {
	case *createUserCommand:
		created, err := h.authService.CreateUser(ctx, usecase.CreateUserInput{
			Email:    c.Email,
			Password: c.Password,
			Role:     c.Role,
		})
		if err != nil {
			h.logger.WarnContext(ctx, "create user failed", "error", err)
			writeError(ctx, w, err)
			return
		}
		writeMutation(ctx, w, http.StatusCreated, "user created", userToDTO(created))
	default:
		writeError(ctx, w, usecase.InvalidField("intent", "unsupported intent "+cmd.intent()))
	}
}
