package handlers

import (
	"net/http"

	"ehealth/middleware"
	"ehealth/models"
	"ehealth/services/user"

	"github.com/gin-gonic/gin"
)

// UserHandler serves authentication and user directory endpoints.
type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(us user.UserService) *UserHandler {
	return &UserHandler{UserService: us}
}

// RegisterHandler handles POST /api/auth/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, "Registration failed", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/auth/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, "Login failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler handles POST /api/auth/logout.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	caller := middleware.CurrentCaller(c)
	if err := h.UserService.Logout(c.Request.Context(), caller.ID); err != nil {
		fail(c, "Logout failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *UserHandler) GetDoctorsHandler(c *gin.Context) {
	doctors, err := h.UserService.GetDoctors(c.Request.Context())
	if err != nil {
		fail(c, "Failed to fetch doctors", err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *UserHandler) GetMyDoctorsHandler(c *gin.Context) {
	caller := middleware.CurrentCaller(c)
	doctors, err := h.UserService.GetMyDoctors(c.Request.Context(), caller.ID)
	if err != nil {
		fail(c, "Failed to fetch doctors", err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	usr, err := h.UserService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "Failed to fetch user", err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateUserHandler handles PUT /api/users/:id.
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	var req models.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	usr, err := h.UserService.UpdateUser(c.Request.Context(), middleware.CurrentCaller(c), c.Param("id"), req)
	if err != nil {
		fail(c, "Failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": usr})
}

// GetAllUsersHandler returns all users (admin only).
func (h *UserHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := h.UserService.GetAllUsers(c.Request.Context())
	if err != nil {
		fail(c, "Failed to fetch users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUserHandler handles the admin POST /api/users.
func (h *UserHandler) CreateUserHandler(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	usr, err := h.UserService.CreateUser(c.Request.Context(), req)
	if err != nil {
		fail(c, "Failed to create user", err)
		return
	}
	c.JSON(http.StatusCreated, usr)
}

func (h *UserHandler) UpdateUserStatusHandler(c *gin.Context) {
	var req models.UpdateUserStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.UserService.UpdateUserStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		fail(c, "Failed to update user status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User status updated successfully"})
}
