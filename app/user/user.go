// Package user implements the account lifecycle endpoints: signup,
// verification, login/logout, profile reads and profile mutations
package user

import (
	"time"

	"github.com/Drwalbin/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

const sessionTokenTTL = time.Hour * 3

// profile is the public shape of a user record. Everything else on the
// model stays server-side
func profile(u *model.User) gin.H {
	return gin.H{
		"email":        u.Email,
		"subscription": u.Subscription,
		"avatarURL":    u.AvatarURL,
	}
}

func makeSessionToken(u *model.User) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    u.ID,
		"email": u.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(sessionTokenTTL).Unix(),
	})

	return t.SignedString([]byte(viper.GetString("jwt.secret")))
}
