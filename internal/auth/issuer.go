// Package auth acquires OAuth access tokens from an external authorization
// server, via either the client-credentials grant or an RS256-signed JWT
// client assertion.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

const assertionType = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"

var (
	// ErrTokenRequest is returned when the authorization server rejects the request.
	ErrTokenRequest = errors.New("token request failed")

	// ErrInvalidPrivateKey is returned when the signing key cannot be parsed.
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrMissingCredentials is returned when required credentials are empty.
	ErrMissingCredentials = errors.New("missing credentials")
)

// Token is the authorization server's response to a successful grant.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
}

// Issuer exchanges credentials for access tokens at a fixed token endpoint.
// It keeps no token state; callers persist tokens themselves.
type Issuer struct {
	tokenURL   string
	httpClient *http.Client
}

// NewIssuer creates an Issuer for the given OAuth token endpoint.
func NewIssuer(tokenURL string) *Issuer {
	return &Issuer{
		tokenURL:   tokenURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ClientCredentials performs the client-credentials grant.
func (i *Issuer) ClientCredentials(ctx context.Context, clientID, clientSecret, scope string) (*Token, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingCredentials
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"scope":         {scope},
	}

	return i.exchange(ctx, form)
}

// SignedAssertion performs the client-credentials grant authenticated by an
// RS256-signed JWT. The assertion carries iss=keyID, sub=applicationID,
// iat=now and exp=now+1h, with the requested scope.
func (i *Issuer) SignedAssertion(ctx context.Context, keyID, applicationID, privateKeyPEM, scope string) (*Token, error) {
	if keyID == "" || applicationID == "" {
		return nil, ErrMissingCredentials
	}

	assertion, err := signAssertion(keyID, applicationID, privateKeyPEM, scope, time.Now())
	if err != nil {
		return nil, err
	}

	form := url.Values{
		"grant_type":            {"client_credentials"},
		"client_assertion_type": {assertionType},
		"client_assertion":      {assertion},
		"scope":                 {scope},
	}

	return i.exchange(ctx, form)
}

// signAssertion builds and signs the JWT client assertion.
func signAssertion(keyID, applicationID, privateKeyPEM, scope string, now time.Time) (string, error) {
	key, err := gojwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	claims := gojwt.MapClaims{
		"iss":   keyID,
		"sub":   applicationID,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
		"scope": scope,
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	return signed, nil
}

// exchange POSTs the form to the token endpoint and decodes the response.
func (i *Issuer) exchange(ctx context.Context, form url.Values) (*Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var oauthErr struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&oauthErr)
		if oauthErr.Description != "" {
			return nil, fmt.Errorf("%w: %s", ErrTokenRequest, oauthErr.Description)
		}
		if oauthErr.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrTokenRequest, oauthErr.Error)
		}
		return nil, fmt.Errorf("%w: server returned %d", ErrTokenRequest, resp.StatusCode)
	}

	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenRequest, err)
	}

	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: response missing access token", ErrTokenRequest)
	}

	return &token, nil
}
