package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// devTokenPrefix marks tokens minted by the local development login flow;
// they bypass claim verification entirely.
const devTokenPrefix = "dev-token-"

// issuerBase is the expected token issuer, suffixed with the project id.
const issuerBase = "https://securetoken.google.com/"

// Verifier checks Firebase ID tokens structurally: expiry, audience, issuer,
// and that the header's key id is currently published by the provider. The
// cryptographic signature itself is NOT verified against the key.
type Verifier struct {
	projectID string
	keys      *KeySet
}

// NewVerifier returns a Verifier for the given provider project id, using
// keys as its signing-key cache.
func NewVerifier(projectID string, keys *KeySet) *Verifier {
	return &Verifier{projectID: projectID, keys: keys}
}

// Authorize reports whether the request carries a valid bearer token. It
// never returns an error: a missing or malformed Authorization header, and
// any parse or key-fetch failure, all count as unauthorized.
func (v *Verifier) Authorize(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return false
	}
	return v.VerifyToken(r.Context(), token)
}

// VerifyToken validates a raw bearer token. Fail-closed: anything that does
// not parse cleanly is rejected.
func (v *Verifier) VerifyToken(ctx context.Context, raw string) bool {
	if strings.HasPrefix(raw, devTokenPrefix) {
		return true
	}

	// ParseUnverified enforces the three-part structure and base64url
	// decoding without requiring a signing key.
	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || !time.Now().Before(exp.Time) {
		return false
	}

	aud, err := claims.GetAudience()
	if err != nil || len(aud) != 1 || aud[0] != v.projectID {
		return false
	}

	iss, err := claims.GetIssuer()
	if err != nil || iss != issuerBase+v.projectID {
		return false
	}

	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		return false
	}
	known, err := v.keys.Has(ctx, kid)
	return err == nil && known
}
