// Package testing provides a mock identity provider for tests. It serves a
// JWKS document whose keys carry an x5c certificate chain and signs RS256
// tokens that verify against that chain, so authorizer tests can run without
// a real provider.
//
// Example usage:
//
//	issuer := authtest.NewIssuer(t)
//	defer issuer.Close()
//
//	verifier := auth.NewVerifier(auth.NewCertCache(
//		auth.NewHTTPKeyFetcher(issuer.JWKSURL(), nil)))
//	token := issuer.SignToken("user-123")
package testing

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/alfredasare/cloud-dev-final-project/auth"
)

// Issuer is a fake identity provider backed by an httptest server.
type Issuer struct {
	server *httptest.Server
	key    *rsa.PrivateKey
	kid    string
	certB  string // base64 DER leaf certificate, no PEM framing

	fetches atomic.Int64
	keys    func() auth.KeySet
}

// NewIssuer generates an RSA key with a self-signed certificate and starts
// the JWKS server. The default key set contains one usable key with kid
// "test-key-1".
func NewIssuer(t *testing.T) *Issuer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate RSA key: %v", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "test-issuer"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}

	iss := &Issuer{
		key:   key,
		kid:   "test-key-1",
		certB: base64.StdEncoding.EncodeToString(der),
	}
	iss.keys = iss.defaultKeySet

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/jwks.json", iss.handleJWKS)
	iss.server = httptest.NewServer(mux)
	return iss
}

// JWKSURL returns the URL of the served key set document.
func (i *Issuer) JWKSURL() string {
	return i.server.URL + "/.well-known/jwks.json"
}

// Close shuts down the JWKS server.
func (i *Issuer) Close() {
	i.server.Close()
}

// FetchCount reports how many times the JWKS document was requested.
func (i *Issuer) FetchCount() int {
	return int(i.fetches.Load())
}

// SetKeySet overrides the served key set, e.g. to test unusable keys.
func (i *Issuer) SetKeySet(ks auth.KeySet) {
	i.keys = func() auth.KeySet { return ks }
}

// SigningJwk returns the issuer's default key record for assembling custom
// key sets.
func (i *Issuer) SigningJwk() auth.Jwk {
	return auth.Jwk{
		Alg: "RS256",
		Kty: "RSA",
		Use: "sig",
		Kid: i.kid,
		X5c: []string{i.certB},
	}
}

func (i *Issuer) defaultKeySet() auth.KeySet {
	return auth.KeySet{Keys: []auth.Jwk{i.SigningJwk()}}
}

func (i *Issuer) handleJWKS(w http.ResponseWriter, r *http.Request) {
	i.fetches.Add(1)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(i.keys())
}

// SignToken signs an RS256 token for the given subject with the issuer's kid.
func (i *Issuer) SignToken(sub string) string {
	return i.SignTokenWithKid(sub, i.kid)
}

// SignTokenWithKid signs an RS256 token carrying an arbitrary kid, e.g. one
// absent from the served key set.
func (i *Issuer) SignTokenWithKid(sub, kid string) string {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": sub,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})
	token.Header["kid"] = kid
	signed, err := token.SignedString(i.key)
	if err != nil {
		panic("sign token: " + err.Error())
	}
	return signed
}

// SignHS256Token signs a token with a symmetric algorithm but the issuer's
// kid, for exercising algorithm rejection.
func (i *Issuer) SignHS256Token(sub string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token.Header["kid"] = i.kid
	signed, err := token.SignedString([]byte("not-an-rsa-key"))
	if err != nil {
		panic("sign token: " + err.Error())
	}
	return signed
}

// SignNoKidToken signs an RS256 token without a kid header.
func (i *Issuer) SignNoKidToken(sub string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(i.key)
	if err != nil {
		panic("sign token: " + err.Error())
	}
	return signed
}
