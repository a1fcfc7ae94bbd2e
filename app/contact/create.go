package contact

import (
	"net/http"

	"github.com/Drwalbin/contacts-api/internal"
	"github.com/Drwalbin/contacts-api/internal/model"
	"github.com/Drwalbin/contacts-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type contactBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Favorite bool   `json:"favorite"`
}

func ContactCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data contactBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   "missing required name field",
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

	contact := model.Contact{
		Name:     data.Name,
		Email:    data.Email,
		Phone:    data.Phone,
		Favorite: data.Favorite,
	}

	if err := d.DB.Create(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create contact", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, contact)
}
