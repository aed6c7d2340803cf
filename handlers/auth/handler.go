package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"predictive-hub-backend/db"
	"predictive-hub-backend/models"
	"predictive-hub-backend/ratelimit"
	"predictive-hub-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	loginMaxAttempts = 5
	loginWindow      = 15 * time.Minute
)

// @Summary Create a new user
// @Description Create a new user with the provided credentials. New accounts start on the guest tier.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.UserCreate true "User credentials"
// @Success 200 {object} map[string]interface{} "message: User created successfully, email: user email"
// @Failure 400 {object} map[string]interface{} "error: Invalid input"
// @Failure 409 {object} map[string]interface{} "error: Email already exists"
// @Failure 500 {object} map[string]interface{} "error: Error message"
// @Router /register [post]
func Register(c *gin.Context) {
	var input models.UserCreate

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input: " + err.Error(),
		})
		return
	}

	if !utils.ValidateEmail(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid email format",
		})
		return
	}

	if len(input.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "The password must contain at least 6 characters",
		})
		return
	}

	hasLower := strings.ContainsAny(input.Password, "abcdefghijklmnopqrstuvwxyz")
	hasUpper := strings.ContainsAny(input.Password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	hasDigit := strings.ContainsAny(input.Password, "0123456789")

	if !hasLower || !hasUpper || !hasDigit {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "The password must contain at least one lowercase, one uppercase and one digit",
		})
		return
	}

	var existingUser models.User
	if err := db.DB.Where("email = ?", input.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "This email is already used",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error when checking the email existence",
		})
		return
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error hashing the password"})
		return
	}

	user := models.User{
		Email:              input.Email,
		Password:           passwordHash,
		Role:               models.GuestRole,
		SubscriptionStatus: models.SubscriptionInactive,
	}

	result := db.DB.Create(&user)
	if result.Error != nil {
		utils.LogError(result.Error, "Error creating user in Register")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error creating the user",
		})
		return
	}

	utils.LogSuccessWithUser(user.ID, "User created successfully in Register")
	c.JSON(http.StatusOK, gin.H{
		"message": "User created successfully",
		"email":   user.Email,
	})
}

// Login authenticates a user and returns a signed JWT.
// @Summary User login
// @Description User login with credentials. Attempts are rate limited per email.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.UserCreate true "User credentials"
// @Success 200 {object} map[string]interface{} "token: signed JWT"
// @Failure 400 {object} map[string]interface{} "error: Invalid input"
// @Failure 401 {object} map[string]interface{} "error: Wrong credentials"
// @Failure 429 {object} map[string]interface{} "error: Too many login attempts"
// @Router /login [post]
func Login(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var inputLogin models.UserCreate

		if err := c.ShouldBindJSON(&inputLogin); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid input: " + err.Error(),
			})
			return
		}

		if !utils.ValidateEmail(inputLogin.Email) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid email format",
			})
			return
		}

		if !limiter.Allow(inputLogin.Email, "login", loginMaxAttempts, loginWindow) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many login attempts, try again later",
			})
			return
		}

		var user models.User
		result := db.DB.Where("email = ?", inputLogin.Email).First(&user)

		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": "Wrong credentials",
				})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Database error",
				})
			}
			return
		}

		if !samePassword(inputLogin.Password, user.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Wrong credentials",
			})
			return
		}

		token, err := utils.GenerateJWT(user, 72)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error generating the token"})
			return
		}

		utils.LogSuccessWithUser(user.ID, "User logged in successfully in Login")
		c.JSON(http.StatusOK, gin.H{
			"token": token,
		})
	}
}

func hashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func samePassword(formPassword string, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(formPassword))
	return err == nil
}
