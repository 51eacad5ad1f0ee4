package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"image-gallery-api/internal/application/ports"
	"image-gallery-api/internal/application/services"
	"image-gallery-api/internal/interface/api/rest/dto/auth"
	userDTO "image-gallery-api/internal/interface/api/rest/dto/user"
	"image-gallery-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.Auth
	baseURL     string
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.Auth,
	baseURL string,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
		baseURL:     baseURL,
	}

	r.POST(RouteToken, ac.TokenHandler)

	return ac
}

// TokenHandler trades an externally verified identity for a service
// token. The caller proves it is a trusted client via client_secret;
// per-user credentials never pass through here.
func (ac *AuthController) TokenHandler(c *gin.Context) {
	var req auth.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateTokenRequest(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	token, u, err := ac.authService.ExchangeToken(c.Request.Context(), req.OauthKey, req.DisplayName, req.ClientSecret)
	if err != nil {
		if errors.Is(err, services.ErrInvalidClientSecret) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to exchange token"},
		)
		ac.logger.Error("ExchangeToken() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"user":         userDTO.ToResponseUser(ac.baseURL, *u),
	})
}
