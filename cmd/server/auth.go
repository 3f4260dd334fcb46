package main

import (
	"errors"
	"log"
	"net/http"

	"carrental/pkg/auth"
	"carrental/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func register(c *gin.Context) {
	var request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	var existing models.User
	err := db.Where("email = ?", request.Email).First(&existing).Error
	if err == nil {
		respondError(c, http.StatusBadRequest, "User already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check existing user: %v", err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	hash, err := auth.HashPassword(request.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	user := models.User{
		UserUid:      uuid.New().String(),
		Email:        request.Email,
		PasswordHash: hash,
		Name:         request.Name,
		Role:         models.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("Failed to create user: %v", err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondOK(c, http.StatusCreated, "User created successfully", gin.H{
		"userUid": user.UserUid,
	})
}

func login(c *gin.Context) {
	var request struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	var user models.User
	if err := db.Where("email = ?", request.Email).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, request.Password) {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.IssueToken(jwtSecret, &user, tokenTTL)
	if err != nil {
		log.Printf("Failed to issue token: %v", err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondOK(c, http.StatusOK, "Signed in", gin.H{
		"token":   token,
		"userUid": user.UserUid,
		"name":    user.Name,
		"role":    user.Role,
	})
}
