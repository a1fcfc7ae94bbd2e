package user

import (
	"net/http"

	"github.com/Drwalbin/contacts-api/internal"
	"github.com/Drwalbin/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func UserVerify(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token := c.Param("verificationToken")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "No verification token provided",
			"requestID": requestID,
		})
		return
	}

	var user model.User

	err := d.DB.
		Where("verification_token = ?", token).
		First(&user).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Covers unknown tokens and tokens already consumed, the
			// column is cleared on verification
			c.JSON(http.StatusNotFound, gin.H{
				"message":   "User not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user.Verified {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Verification has already been passed",
			"requestID": requestID,
		})
		return
	}

	err = d.DB.Model(model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"verified":           true,
			"verification_token": nil,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to mark user verified", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Verification successful",
		"requestID": requestID,
	})
}
