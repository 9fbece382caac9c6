package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Victordtesla24/ride-with-vic-app-sub001/internal/auth"
)

// TokenCredentials holds the configured credentials the token handler
// authenticates with. The private key is the PEM-encoded RS256 signing key
// used for the signed-assertion grant.
type TokenCredentials struct {
	ClientID      string
	ClientSecret  string
	KeyID         string
	ApplicationID string
	PrivateKeyPEM string
}

// TokenHandler handles HTTP requests for OAuth token issuance.
type TokenHandler struct {
	issuer      *auth.Issuer
	credentials TokenCredentials
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(issuer *auth.Issuer, credentials TokenCredentials) *TokenHandler {
	return &TokenHandler{issuer: issuer, credentials: credentials}
}

// TokenRequest is the request body for issuing a token.
type TokenRequest struct {
	Method string `json:"method"`
	Scope  string `json:"scope"`
}

// TokenResponse is the HTTP response for a successful token grant.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
}

// Issue handles POST /v1/auth/token
func (h *TokenHandler) Issue(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	var (
		token *auth.Token
		err   error
	)
	switch req.Method {
	case "client_credentials":
		token, err = h.issuer.ClientCredentials(c.Request.Context(),
			h.credentials.ClientID, h.credentials.ClientSecret, req.Scope)
	case "signed_assertion":
		token, err = h.issuer.SignedAssertion(c.Request.Context(),
			h.credentials.KeyID, h.credentials.ApplicationID, h.credentials.PrivateKeyPEM, req.Scope)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "method must be client_credentials or signed_assertion"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, TokenResponse{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		ExpiresIn:    token.ExpiresIn,
		RefreshToken: token.RefreshToken,
		IDToken:      token.IDToken,
	})
}
