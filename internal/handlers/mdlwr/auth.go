package mdlwr

import (
	"net/http"
	"time"

	"github.com/Asjdnnc/hackzilla/internal/handlers/apierr"
	jwt "github.com/appleboy/gin-jwt/v2"
	"github.com/gin-gonic/gin"
)

// GetAuthMiddleware gates a route group on the JWT role claim. Tokens are
// issued by the separate auth service with the shared secret; this side only
// verifies and authorizes, which is why the Authenticator always fails.
func GetAuthMiddleware(secret string, roles ...string) (*jwt.GinJWTMiddleware, error) {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return jwt.New(&jwt.GinJWTMiddleware{
		Realm:         "hackzilla",
		Key:           []byte(secret),
		Timeout:       time.Hour,
		MaxRefresh:    time.Hour,
		Unauthorized:  unauthorizedHandler,
		TokenLookup:   "header: Authorization",
		TokenHeadName: "Bearer",
		Authenticator: func(c *gin.Context) (interface{}, error) {
			return nil, jwt.ErrFailedAuthentication
		},
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			return jwt.MapClaims{}
		},
		Authorizator: func(data interface{}, c *gin.Context) bool {
			claims := jwt.ExtractClaims(c)
			role, _ := claims["role"].(string)
			_, ok := allowed[role]
			return ok
		},
	})
}

func unauthorizedHandler(c *gin.Context, _ int, _ string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apierr.ErrResponse{
		Success: false,
		Error:   apierr.Unauthorized,
	})
}
