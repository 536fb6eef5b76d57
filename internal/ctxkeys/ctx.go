package ctxkeys

import (
	"context"

	"github.com/templui/vidshare/internal/config"
	"github.com/templui/vidshare/internal/service"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	ClaimsKey contextKey = "claims"
	AdminKey  contextKey = "admin"
	ConfigKey contextKey = "config"
)

// Claims returns the resolved session, or nil for anonymous requests.
func Claims(ctx context.Context) *service.Claims {
	claims, _ := ctx.Value(ClaimsKey).(*service.Claims)
	return claims
}

func WithClaims(ctx context.Context, claims *service.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// AccountID is a shortcut for Claims(ctx).AccountID().
func AccountID(ctx context.Context) string {
	claims := Claims(ctx)
	if claims == nil {
		return ""
	}
	return claims.AccountID()
}

func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(AdminKey).(bool)
	return admin
}

func WithAdmin(ctx context.Context, admin bool) context.Context {
	return context.WithValue(ctx, AdminKey, admin)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}
