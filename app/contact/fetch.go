package contact

import (
	"net/http"

	"github.com/Drwalbin/contacts-api/internal"
	"github.com/Drwalbin/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func ContactFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	contactID := c.Param("contactId")

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

	c.JSON(http.StatusOK, contact)
}
