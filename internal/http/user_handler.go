package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"minhas-financas/internal/domain"
)

type authenticateRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the wire form of a user. Password is echoed back as stored.
type UserResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Password: user.Password,
	}
}

func (h *Handler) authenticate(c *gin.Context) {
	var req authenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	if h.tokens != nil {
		token, _, err := h.tokens.Issue(user.ID, user.Email)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Header("Authorization", "Bearer "+token)
	}

	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) registerUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	user, err := h.users.RegisterUser(c.Request.Context(), &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(*user))
}

func (h *Handler) balance(c *gin.Context) {
	id, ok := parseID(c, "user")
	if !ok {
		return
	}

	if _, found, err := h.users.FindByID(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	} else if !found {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	balance, err := h.ledger.BalanceForUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(balance.String()))
}
