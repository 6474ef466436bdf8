package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nanami9426/officerchat/internal/response"
	"github.com/nanami9426/officerchat/internal/utils"
)

const (
	UserIDKey    = "user_id"
	ClaimsKey    = "claims"
	BearerPrefix = "Bearer "
)

type authConfig struct {
	queryToken bool
}

type AuthOption func(*authConfig)

// WithQueryToken also accepts a token query parameter. Only for websocket
// upgrades, where browsers cannot set headers.
func WithQueryToken() AuthOption {
	return func(cfg *authConfig) {
		cfg.queryToken = true
	}
}

// AuthMiddleware accepts a bearer token, then the token query parameter when
// enabled, then the session cookie.
func AuthMiddleware(secret []byte, cookieName string, opts ...AuthOption) gin.HandlerFunc {
	var cfg authConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(c *gin.Context) {
		token := requestToken(c, cookieName, cfg.queryToken)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, utils.StatUnauthorized, "notAuthenticated", nil)
			return
		}
		claims, err := utils.ParseToken(secret, token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, utils.StatUnauthorized, "notAuthenticated", err)
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(ClaimsKey, claims)
		l := utils.LogCtx(c.Request.Context()).With().Str("user_id", claims.UserID).Logger()
		c.Request = c.Request.WithContext(utils.WithLogger(c.Request.Context(), l))
		c.Next()
	}
}

func requestToken(c *gin.Context, cookieName string, queryToken bool) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, BearerPrefix))
	}
	if queryToken {
		if t := c.Query("token"); t != "" {
			return t
		}
	}
	if cookieName != "" {
		if t, err := c.Cookie(cookieName); err == nil {
			return t
		}
	}
	return ""
}

func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.Abort(c, http.StatusUnauthorized, utils.StatUnauthorized, "notAuthenticated", nil)
			return
		}
		if !claims.HasPermission(permission) {
			response.Abort(c, http.StatusForbidden, utils.StatForbidden, "insufficientPermissions", nil)
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func GetClaims(c *gin.Context) *utils.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*utils.Claims); ok {
			return claims
		}
	}
	return nil
}
