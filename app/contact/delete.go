package contact

import (
	"net/http"

	"github.com/Drwalbin/contacts-api/internal"
	"github.com/Drwalbin/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ContactDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	contactID := c.Param("contactId")

	res := d.DB.Where("id = ?", contactID).Delete(&model.Contact{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete contact", zap.Error(res.Error), zap.String("requestID", requestID))
		return
	}

	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"message":   "Not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "contact deleted",
		"requestID": requestID,
	})
}
