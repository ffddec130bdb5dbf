package middleware

import (
	"context"
	"net/http"
	"strings"

	"healthguard/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Context keys set by JWTAuthMiddleware.
const (
	CtxAccountID   = "accountID"
	CtxAccountKind = "accountKind"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
		"code":  "unauthorized",
	})
}

// JWTAuthMiddleware validates the bearer token and stores the subject's ID
// and account kind on the request context. A cache hit on the token hash
// admits the request without re-verifying the signature.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}

		if accountID, kind, ok := cachedIdentity(c, tokenString); ok {
			c.Set(CtxAccountID, accountID)
			c.Set(CtxAccountKind, kind)
			c.Next()
			return
		}

		accountID, kind, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || accountID == "" {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}
		storeIdentity(c, tokenString, accountID, kind)

		c.Set(CtxAccountID, accountID)
		c.Set(CtxAccountKind, kind)
		c.Next()
	}
}

// cachedIdentity checks the auth cache for a previously validated token.
func cachedIdentity(c *gin.Context, tokenString string) (string, string, bool) {
	client := utils.AuthCacheClient
	if client == nil {
		return "", "", false
	}
	ctx := context.Background()
	key := utils.AuthCachePrefix + utils.HashToken(tokenString)
	value, err := client.Get(ctx, key).Result()
	if err == redis.Nil || err != nil {
		return "", "", false
	}
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", false
	}
	return parts[1], parts[0], true
}

func storeIdentity(c *gin.Context, tokenString, accountID, kind string) {
	client := utils.AuthCacheClient
	if client == nil {
		return
	}
	ctx := context.Background()
	key := utils.AuthCachePrefix + utils.HashToken(tokenString)
	client.Set(ctx, key, kind+":"+accountID, utils.AuthCacheTTL)
}

// RequireKind restricts a route to one account kind, e.g. doctors only.
func RequireKind(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, _ := c.Get(CtxAccountKind)
		if got != kind {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "This action is not available for your account type",
				"code":  "forbidden",
			})
			return
		}
		c.Next()
	}
}
