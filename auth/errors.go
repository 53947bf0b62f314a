package auth

import "errors"

var (
	// ErrMissingHeader fires when no authorization header was presented.
	ErrMissingHeader = errors.New("auth: no authorization header")
	// ErrMalformedHeader fires when the header does not carry a bearer token.
	ErrMalformedHeader = errors.New("auth: authorization header is not a bearer token")
	// ErrMalformedToken fires when the token cannot be decoded or carries no kid.
	ErrMalformedToken = errors.New("auth: malformed token")
	// ErrNoSigningKeys fires when the fetched key set contains no usable RS256 signing keys.
	ErrNoSigningKeys = errors.New("auth: no signing keys found")
	// ErrSigningKeyNotFound fires when no usable key matches the token's kid.
	ErrSigningKeyNotFound = errors.New("auth: signing key not found")
	// ErrKeySetFetch fires on any transport or decode failure fetching the key set.
	ErrKeySetFetch = errors.New("auth: key set fetch failed")
	// ErrNoKeysFound fires when the identity provider returned an empty key set.
	ErrNoKeysFound = errors.New("auth: no keys found")
	// ErrInvalidCertificateBody fires when a certificate body cannot be framed as PEM.
	ErrInvalidCertificateBody = errors.New("auth: invalid certificate body")
	// ErrInvalidSignature fires when signature verification fails for any reason.
	ErrInvalidSignature = errors.New("auth: invalid signature")
)
