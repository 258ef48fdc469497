package middleware

import (
	"context"
	"strings"

	"github.com/lorekeeper-lab/backend/internal/model"
	"github.com/lorekeeper-lab/backend/pkg/errorx"
	"github.com/lorekeeper-lab/backend/pkg/router"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
)

type AuthVerifier struct {
	useAccessToken bool
	optional       bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

// WithAccessToken accepts the access token from the Authorization header (Bearer scheme) or from
// the access token cookie.
func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.useAccessToken = true
	return a
}

// Optional lets unauthenticated requests through with an empty principal, the domains then decide.
func (a *AuthVerifier) Optional() *AuthVerifier {
	a.optional = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if a.useAccessToken {
			if userID := verifyAccessToken(ctx); userID != "" {
				return xcontext.WithRequestUserID(ctx, userID), nil
			}
		}

		if a.optional {
			return ctx, nil
		}

		return ctx, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
}

func verifyAccessToken(ctx context.Context) string {
	token := getAccessToken(ctx)
	if token == "" {
		return ""
	}

	engine := xcontext.TokenEngine(ctx)
	if engine == nil {
		return ""
	}

	var info model.AccessToken
	if err := engine.Verify(token, &info); err != nil {
		xcontext.Logger(ctx).Debugf("Invalid access token: %v", err)
		return ""
	}

	return info.ID
}

func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	authorization := req.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found {
		if auth == "Bearer" {
			return token
		}
		return ""
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
