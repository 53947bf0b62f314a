package auth

import (
	"context"
	"fmt"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Verifier checks bearer tokens presented in an authorization header against
// the identity provider's published signing keys.
type Verifier struct {
	certs *CertCache
}

// NewVerifier builds a verifier over the given certificate cache.
func NewVerifier(certs *CertCache) *Verifier {
	return &Verifier{certs: certs}
}

// extractToken pulls the raw token out of a header value of the form
// "Bearer <token>". The prefix check is case-insensitive; the token is the
// second whitespace-separated field.
func extractToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingHeader
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", ErrMalformedHeader
	}
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return "", ErrMalformedHeader
	}
	return fields[1], nil
}

// VerifyToken extracts the bearer token from the header value, resolves the
// certificate for the token's kid and verifies the RS256 signature. It
// returns the decoded claims on success. Every failure is terminal; nothing
// in this path retries.
func (v *Verifier) VerifyToken(ctx context.Context, header string) (jwt.MapClaims, error) {
	raw, err := extractToken(header)
	if err != nil {
		return nil, err
	}

	// Decode without verification to read the kid from the token header.
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	kid, ok := parsed.Header["kid"].(string)
	if !ok || kid == "" {
		return nil, fmt.Errorf("%w: no kid in token header", ErrMalformedToken)
	}

	pemCert, err := v.certs.Certificate(ctx, kid)
	if err != nil {
		return nil, err
	}
	pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemCert))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return pub, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return claims, nil
}

// Subject returns the sub claim from verified claims, empty if absent.
func Subject(claims jwt.MapClaims) string {
	sub, _ := claims["sub"].(string)
	return sub
}
