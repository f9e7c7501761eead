package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// googleJWKSURL serves the public keys Firebase signs ID tokens with.
const googleJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

// skewSteps are the clock-skew tolerances tried in order when a token fails
// verification for a time-relative reason. Clients and the server are never
// perfectly clock-synchronized; a single rigid tolerance produces spurious
// 401s for tokens minted a few seconds "in the future". The steps are capped
// and monotonically increasing so genuinely invalid tokens are not masked.
var skewSteps = []time.Duration{0, 5 * time.Second, 30 * time.Second, 120 * time.Second}

// Claims is the decoded identity assertion extracted from a verified
// Firebase ID token. It asserts identity only; authorization is always
// resolved from the profile store afterwards.
type Claims struct {
	UID   string
	Email string
	Name  string
}

// idTokenClaims is the JWT payload shape of a Firebase ID token.
type idTokenClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier validates Firebase ID tokens against Google's secure-token JWKS,
// tolerating bounded client/server clock skew.
type Verifier struct {
	keyfunc   jwt.Keyfunc
	projectID string
	now       func() time.Time
}

// NewVerifier creates a Verifier for the given Firebase project. It fetches
// Google's JWKS once up front and refreshes it in the background for the
// lifetime of ctx.
func NewVerifier(ctx context.Context, projectID string) (*Verifier, error) {
	if projectID == "" {
		return nil, errors.New("projectID cannot be empty for NewVerifier")
	}
	jwks, err := keyfunc.Get(googleJWKSURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google secure-token JWKS: %w", err)
	}
	return &Verifier{
		keyfunc:   jwks.Keyfunc,
		projectID: projectID,
		now:       time.Now,
	}, nil
}

// Verify validates an ID token and returns its claims. Verification is
// attempted with each tolerance in skewSteps: a time-relative failure
// ("used before issued", "not valid yet") moves on to the next tolerance,
// while any other failure class (signature, audience, issuer, expiry,
// malformed token) fails immediately. When all tolerances are exhausted the
// last error is returned.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*Claims, error) {
	var lastErr error
	for _, skew := range skewSteps {
		claims, err := v.verifyOnce(idToken, skew)
		if err == nil {
			return claims, nil
		}
		if !isClockSkewError(err) {
			return nil, fmt.Errorf("token verification failed: %w", err)
		}
		lastErr = err
	}
	return nil, fmt.Errorf("token verification failed after clock-skew retries: %w", lastErr)
}

func (v *Verifier) verifyOnce(idToken string, skew time.Duration) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(skew),
		jwt.WithTimeFunc(v.now),
	)

	var claims idTokenClaims
	if _, err := parser.ParseWithClaims(idToken, &claims, v.keyfunc); err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject (uid)")
	}
	return &Claims{
		UID:   claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}

// isClockSkewError reports whether err belongs to the time-relative failure
// class worth retrying with a larger tolerance. Expiry is deliberately
// excluded: an expired token stays expired no matter how lenient the clock.
func isClockSkewError(err error) bool {
	return errors.Is(err, jwt.ErrTokenUsedBeforeIssued) ||
		errors.Is(err, jwt.ErrTokenNotValidYet)
}
