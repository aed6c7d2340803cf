package users

import (
	"net/http"

	"predictive-hub-backend/db"
	"predictive-hub-backend/models"
	"predictive-hub-backend/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Get the connected user's profile
// @Description Return the profile of the connected user, including role, subscription status and next billing date
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/me [get]
func GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in GetMe")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in GetMe")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary List the connected user's payments
// @Description Return all payment attempts of the connected user, most recent first
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Payment
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /users/me/payments [get]
func GetMyPayments(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in GetMyPayments")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var payments []models.Payment
	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&payments).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error fetching payments in GetMyPayments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
