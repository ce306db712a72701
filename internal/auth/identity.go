package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hcmteam/personnel-management/internal"
	"github.com/hcmteam/personnel-management/internal/rbac"
)

type ctxKey string

const contextActorKey ctxKey = "actor"

// ActorFromContext returns the actor the identity middleware resolved for
// this request.
func ActorFromContext(ctx context.Context) (rbac.Actor, bool) {
	a, ok := ctx.Value(contextActorKey).(rbac.Actor)
	return a, ok
}

func ContextWithActor(ctx context.Context, actor rbac.Actor) context.Context {
	return context.WithValue(ctx, contextActorKey, actor)
}

// Claims is the token payload the upstream identity provider signs for us.
type Claims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IdentityResolver turns bearer tokens into actors. It only validates tokens
// issued elsewhere; there is no login or refresh endpoint in this service.
type IdentityResolver struct {
	secret []byte
	logger *slog.Logger
}

func NewIdentityResolver(secret string, logger *slog.Logger) *IdentityResolver {
	return &IdentityResolver{
		secret: []byte(secret),
		logger: logger,
	}
}

// ResolveActor validates the token signature and maps its claims onto an
// Actor. Tokens carrying a role outside the closed set are rejected.
func (ir *IdentityResolver) ResolveActor(tokenString string) (rbac.Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return ir.secret, nil
	})
	if err != nil || !token.Valid {
		return rbac.Actor{}, internal.ErrInvalidToken
	}

	role, ok := rbac.ParseRole(claims.Role)
	if !ok {
		ir.logger.Warn("token carries unrecognized role", "role", claims.Role, "user_id", claims.UserID)
		return rbac.Actor{}, internal.ErrInvalidToken
	}

	return rbac.Actor{ID: claims.UserID, Role: role}, nil
}

// Middleware extracts the bearer token, resolves the actor and stores it in
// the request context. Requests without a valid token get 401.
func (ir *IdentityResolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractBearerToken(r)
		if tokenString == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		actor, err := ir.ResolveActor(tokenString)
		if err != nil {
			ir.logger.Warn("identity resolution failed", "error", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
	})
}

func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
