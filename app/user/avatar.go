package user

import (
	"net/http"
	"strings"

	"github.com/Drwalbin/contacts-api/internal"
	"github.com/Drwalbin/contacts-api/internal/model"
	"github.com/Drwalbin/contacts-api/pkg/middleware"
	"github.com/Drwalbin/contacts-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func UserUpdateAvatar(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	u := c.MustGet(middleware.ContextUser).(*model.User)

	fh, err := c.FormFile("avatar")
	if err != nil || fh == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "No file provided",
			"requestID": requestID,
		})
		return
	}

	code, f, err := validators.AvatarValidator(fh)
	if err != nil {
		c.JSON(code, gin.H{
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	avatarURL, err := d.Avatars.Do(c.Request.Context(), f, fh.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to process avatar", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = d.DB.Model(model.User{}).
		Where("id = ?", u.ID).
		Update("avatar_url", avatarURL).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to persist avatar URL", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Drop the previous custom avatar so replaced files don't pile up.
	// Gravatar defaults live elsewhere and are skipped by the store
	if old := u.AvatarURL; old != "" && !strings.Contains(old, "gravatar.com") {
		if err := d.Avatars.Store.Remove(c.Request.Context(), old); err != nil {
			zap.L().Warn("Failed to remove old avatar", zap.Error(err), zap.String("requestID", requestID))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"avatarURL": avatarURL,
	})
}
