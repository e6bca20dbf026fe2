package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/luisrojasb/doorline-backend/pkg/enums"
	"github.com/luisrojasb/doorline-backend/pkg/logger"
)

// Actor identity travels in headers; the API gateway in front of this service
// authenticates callers and stamps these before proxying.
const (
	actorRoleHeader = "X-Actor-Role"
	dealerIDHeader  = "X-Dealer-Id"
	sessionIDHeader = "X-Session-Id"
)

type contextKey string

const (
	ctxActorRole contextKey = "actor_role"
	ctxDealerID  contextKey = "dealer_id"
	ctxSessionID contextKey = "session_id"
)

// ActorContext lifts the identity headers into the request context and the
// request-scoped logger. Missing headers are left empty for the controllers
// to reject where the operation requires them.
func ActorContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			role := strings.TrimSpace(r.Header.Get(actorRoleHeader))
			if role != "" {
				ctx = context.WithValue(ctx, ctxActorRole, role)
				if logg != nil {
					ctx = logg.WithActorRole(ctx, role)
				}
			}
			if dealerID := strings.TrimSpace(r.Header.Get(dealerIDHeader)); dealerID != "" {
				ctx = context.WithValue(ctx, ctxDealerID, dealerID)
				if logg != nil {
					ctx = logg.WithDealerID(ctx, dealerID)
				}
			}
			if sessionID := strings.TrimSpace(r.Header.Get(sessionIDHeader)); sessionID != "" {
				ctx = context.WithValue(ctx, ctxSessionID, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorRoleFromContext returns the parsed role, defaulting to dealer.
func ActorRoleFromContext(ctx context.Context) enums.ActorRole {
	if ctx == nil {
		return enums.ActorRoleDealer
	}
	raw, _ := ctx.Value(ctxActorRole).(string)
	role, err := enums.ParseActorRole(raw)
	if err != nil {
		return enums.ActorRoleDealer
	}
	return role
}

func DealerIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(ctxDealerID).(string)
	return v
}

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(ctxSessionID).(string)
	return v
}
