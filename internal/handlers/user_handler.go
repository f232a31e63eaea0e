package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"farmhub/internal/auth"
	"farmhub/internal/gateway"
	"farmhub/internal/models"
	"farmhub/internal/repository"
)

type UserHandler struct {
	Users *repository.UserRepository
	Auth  *auth.Service
	SMS   gateway.SMSSender
}

// --- Authentication ---

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// POST /v1/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	user, session, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{User: user, Token: session.Token})
}

// POST /v1/logout
func (h *UserHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.Auth.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "User logged out"})
}

// GET /v1/me
func (h *UserHandler) CurrentUserDetails(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: "User not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// --- Manage and view users ---

// POST /v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var user models.User
	user.Name = c.PostForm("name")
	user.Email = c.PostForm("email")
	user.PhoneNumber = c.PostForm("phone_number")

	password := c.PostForm("password")
	if user.Name == "" || user.Email == "" || user.PhoneNumber == "" || password == "" {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "name, email, phone_number and password are required"})
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		respondError(c, err)
		return
	}
	user.Password = hash

	if header, err := c.FormFile("avatar"); err == nil {
		avatar, err := readImage(header)
		if err != nil {
			c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
			return
		}
		user.Avatar = avatar
	}

	if err := h.Users.Create(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// PUT /v1/users/:userId
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := parseObjectID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid user ID"})
		return
	}

	update := bson.M{}
	for _, field := range []string{"name", "email", "phone_number"} {
		if v, ok := c.GetPostForm(field); ok {
			update[field] = v
		}
	}
	if password, ok := c.GetPostForm("password"); ok {
		hash, err := auth.HashPassword(password)
		if err != nil {
			respondError(c, err)
			return
		}
		update["password"] = hash
	}
	if header, err := c.FormFile("avatar"); err == nil {
		avatar, err := readImage(header)
		if err != nil {
			c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
			return
		}
		update["avatar"] = avatar
	}

	user, err := h.Users.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /v1/users/:userId
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parseObjectID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid user ID"})
		return
	}

	if err := h.Users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted successfully"})
}

// GET /v1/users/:userId
func (h *UserHandler) DisplayUser(c *gin.Context) {
	id, err := parseObjectID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid user ID"})
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GET /v1/users
func (h *UserHandler) UserList(c *gin.Context) {
	users, err := h.Users.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /v1/users/:userId/avatar
func (h *UserHandler) GetAvatar(c *gin.Context) {
	id, err := parseObjectID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid user ID"})
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if user.Avatar == nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "avatar not found"})
		return
	}
	c.Data(http.StatusOK, user.Avatar.ContentType, user.Avatar.Data)
}

// --- Addresses ---

// POST /v1/users/:userId/addresses
func (h *UserHandler) AddAddress(c *gin.Context) {
	id, err := parseObjectID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid user ID"})
		return
	}

	var address models.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	user, err := h.Users.AddAddress(c.Request.Context(), id, address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /v1/users/:userId/addresses/:addressId
func (h *UserHandler) UpdateAddress(c *gin.Context) {
	id, err := parseObjectID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid user ID"})
		return
	}
	addressID, err := parseObjectID(c.Param("addressId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid address ID"})
		return
	}

	var address models.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	user, err := h.Users.UpdateAddress(c.Request.Context(), id, addressID, address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /v1/users/:userId/addresses/:addressId
func (h *UserHandler) DeleteAddress(c *gin.Context) {
	id, err := parseObjectID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid user ID"})
		return
	}
	addressID, err := parseObjectID(c.Param("addressId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid address ID"})
		return
	}

	user, err := h.Users.DeleteAddress(c.Request.Context(), id, addressID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// --- Password management ---

type resetPasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// PUT /v1/users/:userId/password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, err := parseObjectID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid user ID"})
		return
	}

	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !auth.CheckPassword(user.Password, req.OldPassword) {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Old password is incorrect"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	updated, err := h.Users.SetPassword(c.Request.Context(), user.PhoneNumber, hash)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type forgotPasswordRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// POST /v1/password/forgot
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.Users.SetResetOtp(c.Request.Context(), req.PhoneNumber, otp)
	if err != nil {
		respondError(c, err)
		return
	}

	body := otp + " is your OTP for Farmhub password reset"
	if err := h.SMS.Send(user.PhoneNumber, body); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "OTP sent"})
}

type checkOtpRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Otp         string `json:"otp" binding:"required"`
}

// POST /v1/password/verify
func (h *UserHandler) CheckOtp(c *gin.Context) {
	var req checkOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	user, err := h.Users.FindByPhone(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	if user.ResetPasswordOtp == "" || req.Otp != user.ResetPasswordOtp {
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Invalid OTP"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Valid OTP"})
}

type changePasswordRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Otp         string `json:"otp" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
}

// PUT /v1/password
//
// Completes the forgot-password flow: the OTP issued by ForgotPassword
// must accompany the new password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	user, err := h.Users.FindByPhone(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	if user.ResetPasswordOtp == "" || req.Otp != user.ResetPasswordOtp {
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Invalid OTP"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	updated, err := h.Users.SetPassword(c.Request.Context(), req.PhoneNumber, hash)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
