package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Jwk is a single public signing key as published by the identity provider.
// Only RSA signature keys are usable for verification; everything else is
// filtered out by SelectSigningKey.
type Jwk struct {
	Alg string   `json:"alg"`
	Kty string   `json:"kty"`
	Use string   `json:"use"`
	Kid string   `json:"kid"`
	X5c []string `json:"x5c"` // certificate chain, leaf first
	N   string   `json:"n"`   // base64url modulus
	E   string   `json:"e"`   // base64url exponent
	X5t string   `json:"x5t"`
}

// KeySet is the JWKS document fetched as a whole from the provider.
type KeySet struct {
	Keys []Jwk `json:"keys"`
}

// KeyFetcher retrieves the provider's current key set.
type KeyFetcher interface {
	FetchKeySet(ctx context.Context) (KeySet, error)
}

// HTTPKeyFetcher fetches the key set with a single unauthenticated GET.
// No retries or backoff; the client's transport timeout is the only bound.
type HTTPKeyFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPKeyFetcher builds a fetcher for the given JWKS URL.
// If client is nil, http.DefaultClient is used.
func NewHTTPKeyFetcher(url string, client *http.Client) *HTTPKeyFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPKeyFetcher{url: url, client: client}
}

func (f *HTTPKeyFetcher) FetchKeySet(ctx context.Context) (KeySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return KeySet{}, fmt.Errorf("%w: %v", ErrKeySetFetch, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return KeySet{}, fmt.Errorf("%w: %v", ErrKeySetFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return KeySet{}, fmt.Errorf("%w: unexpected status %d", ErrKeySetFetch, resp.StatusCode)
	}
	var ks KeySet
	if err := json.NewDecoder(resp.Body).Decode(&ks); err != nil {
		return KeySet{}, fmt.Errorf("%w: %v", ErrKeySetFetch, err)
	}
	if len(ks.Keys) == 0 {
		return KeySet{}, ErrNoKeysFound
	}
	return ks, nil
}

// usable reports whether a key can verify RS256 signatures: it must be an
// RSA signature key with a kid and carry either an x5c chain or both n and e.
func (k Jwk) usable() bool {
	return k.Use == "sig" &&
		k.Kty == "RSA" &&
		k.Alg == "RS256" &&
		k.Kid != "" &&
		(len(k.X5c) > 0 || (k.N != "" && k.E != ""))
}

// SelectSigningKey returns the first usable key in the set matching kid.
// Duplicate kids are not validated; key set order decides.
func SelectSigningKey(set KeySet, kid string) (Jwk, error) {
	var signing []Jwk
	for _, k := range set.Keys {
		if k.usable() {
			signing = append(signing, k)
		}
	}
	if len(signing) == 0 {
		return Jwk{}, ErrNoSigningKeys
	}
	for _, k := range signing {
		if k.Kid == kid {
			return k, nil
		}
	}
	return Jwk{}, ErrSigningKeyNotFound
}
