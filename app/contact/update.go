package contact

import (
	"net/http"

	"github.com/Drwalbin/contacts-api/internal"
	"github.com/Drwalbin/contacts-api/internal/model"
	"github.com/Drwalbin/contacts-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func ContactUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	contactID := c.Param("contactId")

	var data contactBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Name == "" && data.Email == "" && data.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "missing fields",
			"requestID": requestID,
		})
		return
	}

	if data.Email != "" {
		if err := validators.EmailValidator(data.Email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":   err.Error(),
				"requestID": requestID,
			})
			return
		}
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

	if data.Name != "" {
		contact.Name = data.Name
	}
	if data.Email != "" {
		contact.Email = data.Email
	}
	if data.Phone != "" {
		contact.Phone = data.Phone
	}

	if err := d.DB.Save(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update contact", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, contact)
}
