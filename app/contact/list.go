// Package contact implements CRUD over the contacts collection. The
// collection is standalone, records carry no ownership link to a user
package contact

import (
	"net/http"
	"strconv"

	"github.com/Drwalbin/contacts-api/internal"
	"github.com/Drwalbin/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

func ContactList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	var total int64
	if err := d.DB.Model(model.Contact{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count contacts", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var contacts []model.Contact

	err = d.DB.
		Order("id").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&contacts).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch contacts", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contacts": contacts,
		"page":     page,
		"limit":    limit,
		"total":    total,
	})
}
