package auth

import (
	"errors"
	"testing"
)

func usableKey(kid string) Jwk {
	return Jwk{
		Alg: "RS256",
		Kty: "RSA",
		Use: "sig",
		Kid: kid,
		X5c: []string{"MIIC...stub"},
	}
}

func TestSelectSigningKey_Match(t *testing.T) {
	set := KeySet{Keys: []Jwk{usableKey("k1"), usableKey("k2")}}

	key, err := SelectSigningKey(set, "k2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key.Kid != "k2" {
		t.Errorf("expected k2, got %q", key.Kid)
	}
}

func TestSelectSigningKey_FirstWinsOnDuplicateKid(t *testing.T) {
	first := usableKey("k1")
	first.X5c = []string{"first"}
	second := usableKey("k1")
	second.X5c = []string{"second"}
	set := KeySet{Keys: []Jwk{first, second}}

	key, err := SelectSigningKey(set, "k1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key.X5c[0] != "first" {
		t.Error("expected first key in set order to win")
	}
}

func TestSelectSigningKey_NoUsableKeys(t *testing.T) {
	cases := []struct {
		name string
		key  Jwk
	}{
		{"wrong use", Jwk{Alg: "RS256", Kty: "RSA", Use: "enc", Kid: "k1", X5c: []string{"c"}}},
		{"wrong kty", Jwk{Alg: "RS256", Kty: "EC", Use: "sig", Kid: "k1", X5c: []string{"c"}}},
		{"wrong alg", Jwk{Alg: "ES256", Kty: "RSA", Use: "sig", Kid: "k1", X5c: []string{"c"}}},
		{"missing kid", Jwk{Alg: "RS256", Kty: "RSA", Use: "sig", X5c: []string{"c"}}},
		{"no x5c and no modulus", Jwk{Alg: "RS256", Kty: "RSA", Use: "sig", Kid: "k1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SelectSigningKey(KeySet{Keys: []Jwk{tc.key}}, "k1")
			if !errors.Is(err, ErrNoSigningKeys) {
				t.Fatalf("expected ErrNoSigningKeys, got %v", err)
			}
		})
	}
}

func TestSelectSigningKey_UsableViaModulusExponent(t *testing.T) {
	key := Jwk{Alg: "RS256", Kty: "RSA", Use: "sig", Kid: "k1", N: "abc", E: "AQAB"}

	got, err := SelectSigningKey(KeySet{Keys: []Jwk{key}}, "k1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kid != "k1" {
		t.Errorf("expected k1, got %q", got.Kid)
	}
}

func TestSelectSigningKey_KidNotFound(t *testing.T) {
	set := KeySet{Keys: []Jwk{usableKey("k1")}}

	_, err := SelectSigningKey(set, "other")
	if !errors.Is(err, ErrSigningKeyNotFound) {
		t.Fatalf("expected ErrSigningKeyNotFound, got %v", err)
	}
}

func TestExtractToken(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		token   string
		wantErr error
	}{
		{"absent", "", "", ErrMissingHeader},
		{"not bearer", "Basic dXNlcjpwYXNz", "", ErrMalformedHeader},
		{"prefix only", "Bearer", "", ErrMalformedHeader},
		{"lowercase bearer", "bearer abc.def.ghi", "abc.def.ghi", nil},
		{"mixed case bearer", "BeArEr abc.def.ghi", "abc.def.ghi", nil},
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := extractToken(tc.header)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if token != tc.token {
				t.Errorf("expected token %q, got %q", tc.token, token)
			}
		})
	}
}
