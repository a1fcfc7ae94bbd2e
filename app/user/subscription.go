package user

import (
	"net/http"

	"github.com/Drwalbin/contacts-api/internal"
	"github.com/Drwalbin/contacts-api/internal/model"
	"github.com/Drwalbin/contacts-api/pkg/middleware"
	"github.com/Drwalbin/contacts-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type subscriptionBody struct {
	Subscription string `json:"subscription"`
}

func UserUpdateSubscription(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	u := c.MustGet(middleware.ContextUser).(*model.User)

	var data subscriptionBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.SubscriptionValidator(data.Subscription); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	// The column carries a check constraint for the same enum, so a
	// value slipping past the validator still can't be persisted
	err := d.DB.Model(model.User{}).
		Where("id = ?", u.ID).
		Update("subscription", data.Subscription).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update subscription", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	u.Subscription = data.Subscription

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscription has been changed",
		"user":    profile(u),
	})
}
