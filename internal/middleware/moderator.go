package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushare/campushare-backend/internal/pkg/logger"
	"github.com/campushare/campushare-backend/internal/requestdata"
)

type ModeratorMiddleware struct {
	log     *logger.Logger
	keyHash string
}

// NewModeratorMiddleware gates the moderation surface. keyHash is a bcrypt
// hash of the shared moderator key; an empty hash disables the header path and
// leaves only token-claimed moderators.
func NewModeratorMiddleware(log *logger.Logger, keyHash string) *ModeratorMiddleware {
	middlewareLogger := log.With("middleware", "ModeratorMiddleware")
	return &ModeratorMiddleware{log: middlewareLogger, keyHash: keyHash}
}

func (mm *ModeratorMiddleware) RequireModerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		if !rd.Moderator {
			key := c.GetHeader("X-Moderator-Key")
			if key == "" || mm.keyHash == "" ||
				bcrypt.CompareHashAndPassword([]byte(mm.keyHash), []byte(key)) != nil {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "moderator access required"})
				return
			}
			rd.Moderator = true
		}
		c.Next()
	}
}
