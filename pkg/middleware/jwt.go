package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Drwalbin/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContextUser is the key the authenticated user is stored under
const ContextUser = "user"

// NewJWTMiddleware verifies the Authorization bearer token and loads
// the account it refers to. Every failure mode ends in a 401, the
// middleware fails closed.
//
// Besides signature and expiry the presented token must also match the
// session token stored on the user record. Without that check a token
// would stay usable after logout until it expires
func NewJWTMiddleware(d *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Not authorized",
				"requestID": requestID,
			})
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
			}

			return []byte(viper.GetString("jwt.secret")), nil
		}, jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Not authorized",
				"requestID": requestID,
			})

			zap.L().Debug("Failed to parse token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Not authorized",
				"requestID": requestID,
			})
			return
		}

		userID, ok := claims["id"].(string)
		if !ok || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Not authorized",
				"requestID": requestID,
			})
			return
		}

		var user model.User
		err = d.Where("id = ?", userID).First(&user).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"message":   "Not authorized",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message":   "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to load user for auth", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if user.Token == nil || *user.Token != tokenStr {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Not authorized",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", userID)
		c.Set(ContextUser, &user)
		c.Next()
	}
}
