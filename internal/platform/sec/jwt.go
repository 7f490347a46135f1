// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec verifies the access tokens presented to the API.
//
// # Architecture
//
// Tokens are minted by the account service and signed with RS256. This
// process only holds the public half of the key pair, so it can check a
// token but never issue one.
package sec

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// The handlers only need the user identifier; reading it from the token
// avoids a round trip to the account service on every request.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   string `json:"uid"`
	Username string `json:"unm"`
	Role     string `json:"rol"`
}

// TokenService verifies RS256 access tokens.
type TokenService struct {
	publicKey *rsa.PublicKey
	issuer    string
}

/*
NewTokenService reads a PEM encoded RSA public key from disk.

Parameters:
  - publicKeyPath: string (path to the PEM file)
  - issuer: string (expected 'iss' claim; empty disables the check)

Returns:
  - *TokenService: The verifier
  - error: When the key cannot be read or parsed
*/
func NewTokenService(publicKeyPath, issuer string) (*TokenService, error) {
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to parse public key: %w", err)
	}

	return NewTokenServiceFromKey(publicKey, issuer), nil
}

// NewTokenServiceFromKey builds a verifier around an already parsed key.
func NewTokenServiceFromKey(publicKey *rsa.PublicKey, issuer string) *TokenService {
	return &TokenService{publicKey: publicKey, issuer: issuer}
}

// VerifyToken checks the signature and validity of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if service.issuer != "" {
		options = append(options, jwt.WithIssuer(service.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (any, error) {
		return service.publicKey, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: invalid token claims")
	}

	// Older tokens carry the identity in 'sub' only
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("auth: token has no subject")
	}

	return claims, nil
}
