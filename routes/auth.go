package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"teamevents/models"
	"teamevents/utils"
)

// POST /signup
func (d *deps) signup(c *gin.Context) {
	var req struct {
		Email     string      `json:"email" binding:"required"`
		Password  string      `json:"password" binding:"required"`
		Name      string      `json:"name" binding:"required"`
		Role      models.Role `json:"role"`
		Position  string      `json:"position"`
		BirthDate *time.Time  `json:"birthDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	if req.Role == "" {
		req.Role = models.RolePlayer
	}

	u := models.User{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		Role:      req.Role,
		Position:  req.Position,
		BirthDate: req.BirthDate,
	}
	if err := d.users.Create(&u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save user."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "user created successfully", "user": u})
}

// POST /login
func (d *deps) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	user, err := d.users.ValidateCredentials(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Could not authenticate user."})
		return
	}

	token, err := utils.GenerateToken(user.Email, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not authenticate user."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful!", "token": token})
}
