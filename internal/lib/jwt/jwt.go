package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"careerpath/internal/config"
	"careerpath/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Rejection reasons returned by Verifier.Verify. HTTP callers collapse all of
// them into a single unauthorized outcome.
var (
	ErrMalformed        = errors.New("token malformed")
	ErrBadSignature     = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
	ErrIssuerMismatch   = errors.New("token issuer mismatch")
	ErrAudienceMismatch = errors.New("token audience mismatch")
)

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

type Issuer struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewIssuer(cfg *config.Tokens) *Issuer {
	return &Issuer{
		key:      []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TTL,
		now:      time.Now,
	}
}

// Issue signs an HS256 token for acc that expires ttl after issuance.
func (i *Issuer) Issue(acc models.Account) (string, error) {
	const op = "jwt.Issue"

	now := i.now()

	claims := Claims{
		Email: acc.Email,
		Name:  acc.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(acc.ID, 10),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

type Verifier struct {
	key      []byte
	issuer   string
	audience string
	now      func() time.Time
}

func NewVerifier(cfg *config.Tokens) *Verifier {
	return &Verifier{
		key:      []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}
}

// Verify checks signature, issuer, audience and expiry (valid while now < exp,
// no leeway) and returns the asserted identity.
func (v *Verifier) Verify(tokenStr string) (models.Identity, error) {
	const op = "jwt.Verify"

	var claims Claims

	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return v.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%s: %w", op, rejection(err))
	}

	uid, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || uid <= 0 {
		return models.Identity{}, fmt.Errorf("%s: %w: bad subject", op, ErrMalformed)
	}

	identity := models.Identity{
		UserID:    uid,
		Email:     claims.Email,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}

	return identity, nil
}

// * rejection maps a golang-jwt error onto one of the package's rejection reasons.
func rejection(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuerMismatch
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrAudienceMismatch
	default:
		return ErrMalformed
	}
}
