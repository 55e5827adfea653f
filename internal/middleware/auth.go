package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"galerie-server/internal/consts"
	"galerie-server/internal/repository"
	"galerie-server/internal/service"
	"galerie-server/internal/utils"

	"github.com/gin-gonic/gin"
)

var (
	// banCache caches the black-list flag per user to spare a database
	// read on every authenticated request.
	banCache sync.Map
)

const banCacheTTL = 1 * time.Minute

type cachedBan struct {
	BlackListed bool
	ExpiresAt   time.Time
}

// ClearUserBanCache drops the cached black-list flag for a user, in
// memory and in Redis when available.
func ClearUserBanCache(userID uint) {
	banCache.Delete(userID)

	if redisClient := service.GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		key := service.RedisKey("auth", "ban", strconv.FormatUint(uint64(userID), 10))
		_ = redisClient.Del(ctx, key).Err()
	}
}

func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "malformed token"})
			c.Abort()
			return
		}

		claims, err := utils.ParseLoginToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("id", claims.ID)
		c.Set("user_name", claims.UserName)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// BanCheck rejects requests from black-listed accounts. The flag is read
// from Redis when available, then a local TTL cache, then the database.
func BanCheck(users repository.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
			c.Abort()
			return
		}
		uid, ok := userID.(uint)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity"})
			c.Abort()
			return
		}

		var (
			blackListed bool
			found       bool
		)

		if redisClient := service.GetRedisClient(); redisClient != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			key := service.RedisKey("auth", "ban", strconv.FormatUint(uint64(uid), 10))
			if cached, err := redisClient.Get(ctx, key).Result(); err == nil {
				blackListed = cached == "1"
				found = true
				banCache.Store(uid, cachedBan{
					BlackListed: blackListed,
					ExpiresAt:   time.Now().Add(banCacheTTL),
				})
			}
		}

		if !found {
			if val, ok := banCache.Load(uid); ok {
				if cached, typeOk := val.(cachedBan); typeOk {
					if time.Now().Before(cached.ExpiresAt) {
						blackListed = cached.BlackListed
						found = true
					} else {
						banCache.Delete(uid)
					}
				}
			}
		}

		if !found {
			user, err := users.FindByID(uid)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
				c.Abort()
				return
			}
			blackListed = user.IsBlackListed

			banCache.Store(uid, cachedBan{
				BlackListed: blackListed,
				ExpiresAt:   time.Now().Add(banCacheTTL),
			})
			if redisClient := service.GetRedisClient(); redisClient != nil {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()

				key := service.RedisKey("auth", "ban", strconv.FormatUint(uint64(uid), 10))
				value := "0"
				if blackListed {
					value = "1"
				}
				_ = redisClient.Set(ctx, key, value, banCacheTTL).Err()
			}
		}

		if blackListed {
			c.JSON(http.StatusForbidden, gin.H{"error": "this account is black-listed"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func AdminCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("role")
		role, ok := value.(consts.Role)
		if !exists || !ok || (role != consts.RoleAdmin && role != consts.RoleSuperAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
