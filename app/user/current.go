package user

import (
	"net/http"

	"github.com/Drwalbin/contacts-api/internal/model"
	"github.com/Drwalbin/contacts-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// UserCurrent returns the profile of the caller. Identity was already
// resolved by the auth middleware so this is just a read-back
func UserCurrent(c *gin.Context) {
	u := c.MustGet(middleware.ContextUser).(*model.User)

	c.JSON(http.StatusOK, gin.H{
		"user": profile(u),
	})
}
