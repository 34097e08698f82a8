package handler

import (
	"net/http"
	"strings"

	"marketgo/services/market/helpers"
	"marketgo/utils"

	"github.com/gin-gonic/gin"
)

// SignUpHandler handles POST /auth/signup
func (h *MarketHandler) SignUpHandler(c *gin.Context) {
	var req helpers.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SignUpHandler", err)
		return
	}

	profile, token, err := h.auth.SignUp(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		helpers.RespondError(c, "SignUpHandler", err)
		return
	}

	resp := helpers.AuthResponse{UserID: profile.UserID, Username: profile.Username, Token: token}
	utils.JSONResponse(c, http.StatusCreated, resp, "account created")
	helpers.LogSuccess("SignUpHandler", "account created", map[string]any{
		"user_id":  profile.UserID,
		"username": profile.Username,
	})
}

// SignInHandler handles POST /auth/signin
func (h *MarketHandler) SignInHandler(c *gin.Context) {
	var req helpers.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SignInHandler", err)
		return
	}

	profile, token, err := h.auth.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		helpers.RespondError(c, "SignInHandler", err)
		return
	}

	resp := helpers.AuthResponse{UserID: profile.UserID, Username: profile.Username, Token: token}
	utils.JSONResponse(c, http.StatusOK, resp, "signed in")
	helpers.LogSuccess("SignInHandler", "signed in", map[string]any{"user_id": profile.UserID})
}

// SignOutHandler handles POST /auth/signout
func (h *MarketHandler) SignOutHandler(c *gin.Context) {
	h.auth.SignOut(BearerToken(c))
	utils.JSONResponse(c, http.StatusOK, nil, "signed out")
}

// BearerToken extracts the session token from the Authorization header
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}
