package auth

import (
	"context"
	"strings"
	"sync"
)

// CertToPEM wraps a raw base64 certificate body in the standard PEM envelope:
// 64-character lines between BEGIN/END CERTIFICATE markers, trailing newline.
func CertToPEM(raw string) (string, error) {
	if raw == "" {
		return "", ErrInvalidCertificateBody
	}
	var b strings.Builder
	b.WriteString("-----BEGIN CERTIFICATE-----\n")
	for i := 0; i < len(raw); i += 64 {
		end := i + 64
		if end > len(raw) {
			end = len(raw)
		}
		b.WriteString(raw[i:end])
		b.WriteByte('\n')
	}
	b.WriteString("-----END CERTIFICATE-----\n")
	return b.String(), nil
}

// CertCache resolves PEM certificates for key identifiers and memoizes them
// for the life of the process. Entries are never invalidated or refreshed;
// picking up a provider-side key rotation requires a restart.
//
// The cache is keyed by kid. The system this replaces kept a single slot and
// returned it for every kid once populated; keying by kid keeps the same
// fetch-once behavior per key without serving the wrong certificate when a
// second kid shows up in the same process.
type CertCache struct {
	fetcher KeyFetcher

	mu    sync.Mutex
	certs map[string]string
}

// NewCertCache builds an empty cache over the given fetcher.
func NewCertCache(fetcher KeyFetcher) *CertCache {
	return &CertCache{fetcher: fetcher, certs: make(map[string]string)}
}

// Certificate returns the PEM certificate for kid, fetching the key set on
// first use. A race on first population is benign: both callers compute the
// same value for the same kid.
func (c *CertCache) Certificate(ctx context.Context, kid string) (string, error) {
	c.mu.Lock()
	cert, ok := c.certs[kid]
	c.mu.Unlock()
	if ok {
		return cert, nil
	}

	set, err := c.fetcher.FetchKeySet(ctx)
	if err != nil {
		return "", err
	}
	key, err := SelectSigningKey(set, kid)
	if err != nil {
		return "", err
	}
	if len(key.X5c) == 0 {
		return "", ErrInvalidCertificateBody
	}
	cert, err = CertToPEM(key.X5c[0])
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.certs[kid] = cert
	c.mu.Unlock()
	return cert, nil
}

// Reset clears all cached certificates. Intended for tests.
func (c *CertCache) Reset() {
	c.mu.Lock()
	c.certs = make(map[string]string)
	c.mu.Unlock()
}
