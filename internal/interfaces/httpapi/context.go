package httpapi

import (
	"context"
	"fmt"

	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	"github.com/nilosmferreira/damasios-ai/internal/usecase"
)

type contextKey string

const principalContextKey contextKey = "auth_principal"

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

// requirePrincipal is for handlers mounted behind the gate; a miss means a routing bug.
func requirePrincipal(ctx context.Context) (user.Principal, error) {
	p, ok := principalFromContext(ctx)
	if !ok || p.UserID == "" {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthenticated)
	}
	return p, nil
}
