package contact

import (
	"net/http"

	"github.com/Drwalbin/contacts-api/internal"
	"github.com/Drwalbin/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type favoriteBody struct {
	// Pointer so a missing field is distinguishable from false
	Favorite *bool `json:"favorite"`
}

func ContactUpdateFavorite(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	contactID := c.Param("contactId")

	var data favoriteBody
	if err := c.ShouldBind(&data); err != nil || data.Favorite == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "missing field favorite",
			"requestID": requestID,
		})
		return
	}

	var contact model.Contact

	err := d.DB.Where("id = ?", contactID).First(&contact).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message":   "Not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch contact", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = d.DB.Model(&contact).Update("favorite", *data.Favorite).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update favorite", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, contact)
}
