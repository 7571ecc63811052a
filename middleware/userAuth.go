package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	userRepo "ehealth/database/repository/user"
	"ehealth/models"
	"ehealth/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const ReasonAuthRequired = "Authentication required"

// cachedAuth is what the auth cache keeps per user.
type cachedAuth struct {
	TokenHash string `json:"tokenHash"`
	Role      string `json:"role"`
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ReasonAuthRequired})
}

// JWTAuthUserMiddleware accepts a bearer token only while it is the user's
// current token and the account is active. Sets "userID" and "role".
func JWTAuthUserMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthenticated(c)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortUnauthenticated(c)
			return
		}

		claims, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil {
			abortUnauthenticated(c)
			return
		}
		computedHash := utils.HashToken(tokenString)
		ctx := c.Request.Context()
		cacheKey := utils.AuthCachePrefix + claims.UserID

		if entry, ok := readAuthCache(ctx, cacheKey); ok {
			if entry.TokenHash != computedHash {
				abortUnauthenticated(c)
				return
			}
			setCaller(c, claims.UserID, entry.Role)
			c.Next()
			return
		}

		// Cache miss: query the database.
		usr, err := repo.GetByID(ctx, claims.UserID)
		if err != nil {
			utils.GetLogger().Error("Failed to load user for authentication", zap.String("userID", claims.UserID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if usr == nil || usr.TokenHash == "" || usr.TokenHash != computedHash {
			abortUnauthenticated(c)
			return
		}
		if usr.Status == models.StatusInactive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is inactive. Please contact administrator."})
			return
		}

		writeAuthCache(ctx, cacheKey, cachedAuth{TokenHash: computedHash, Role: usr.Role})
		setCaller(c, usr.ID, usr.Role)
		c.Next()
	}
}

func setCaller(c *gin.Context, userID, role string) {
	c.Set("userID", userID)
	c.Set("role", role)
}

// CurrentCaller returns the identity set by JWTAuthUserMiddleware.
func CurrentCaller(c *gin.Context) models.Caller {
	return models.Caller{ID: c.GetString("userID"), Role: c.GetString("role")}
}

func readAuthCache(ctx context.Context, key string) (cachedAuth, bool) {
	var entry cachedAuth
	authCache := utils.GetAuthCacheClient()
	if authCache == nil {
		return entry, false
	}
	raw, err := authCache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("Error retrieving auth cache key, falling back to DB lookup", zap.Error(err))
		}
		return entry, false
	}
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return entry, false
	}
	_ = authCache.Expire(ctx, key, utils.AuthCacheTTL).Err()
	return entry, true
}

func writeAuthCache(ctx context.Context, key string, entry cachedAuth) {
	authCache := utils.GetAuthCacheClient()
	if authCache == nil {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := authCache.Set(ctx, key, data, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to write auth cache", zap.Error(err))
	}
}
