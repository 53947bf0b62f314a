// Package auth verifies RS256 bearer tokens against a remote JWKS document
// and turns the result into gateway access-control decisions.
package auth

import (
	"context"

	"github.com/sirupsen/logrus"
)

// DenyPrincipal is the placeholder identity attached to denied decisions.
const DenyPrincipal = "user"

// Statement is a single access-control statement in a policy document.
type Statement struct {
	Action   string `json:"Action"`
	Effect   string `json:"Effect"`
	Resource string `json:"Resource"`
}

// PolicyDocument is the gateway-facing policy wrapper.
type PolicyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Decision is the outcome of an authorization check.
type Decision struct {
	PrincipalID    string         `json:"principalId"`
	PolicyDocument PolicyDocument `json:"policyDocument"`
}

// Authorizer is the gateway entry point: it collapses every verification
// failure into a Deny decision, logging the specific error internally.
type Authorizer struct {
	verifier *Verifier
	log      *logrus.Logger
}

// NewAuthorizer builds an authorizer over the given verifier.
// If log is nil, the logrus standard logger is used.
func NewAuthorizer(verifier *Verifier, log *logrus.Logger) *Authorizer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Authorizer{verifier: verifier, log: log}
}

func policy(effect string) PolicyDocument {
	return PolicyDocument{
		Version: "2012-10-17",
		Statement: []Statement{{
			Action:   "execute-api:Invoke",
			Effect:   effect,
			Resource: "*",
		}},
	}
}

// Authorize verifies the header's bearer token and returns an Allow decision
// for the token's subject, or a Deny decision for the placeholder principal.
// The caller only ever sees the binary outcome; the error kind is logged.
func (a *Authorizer) Authorize(ctx context.Context, header string) Decision {
	claims, err := a.verifier.VerifyToken(ctx, header)
	if err != nil {
		a.log.WithError(err).Warn("user not authorized")
		return Decision{
			PrincipalID:    DenyPrincipal,
			PolicyDocument: policy("Deny"),
		}
	}

	sub := Subject(claims)
	a.log.WithField("sub", sub).Info("user authorized")
	return Decision{
		PrincipalID:    sub,
		PolicyDocument: policy("Allow"),
	}
}
