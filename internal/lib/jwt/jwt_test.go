package jwt

import (
	"strings"
	"testing"
	"time"

	"careerpath/internal/config"
	"careerpath/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2025, 2, 21, 12, 0, 0, 0, time.UTC)

func testTokens() *config.Tokens {
	return &config.Tokens{
		Secret:   "0123456789abcdef0123456789abcdef",
		Issuer:   "careerpath",
		Audience: "careerpath-dashboard",
		TTL:      7 * 24 * time.Hour,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newPair(cfg *config.Tokens, at time.Time) (*Issuer, *Verifier) {
	iss := NewIssuer(cfg)
	iss.now = fixedClock(at)
	ver := NewVerifier(cfg)
	ver.now = fixedClock(at)

	return iss, ver
}

var ana = models.Account{ID: 42, Name: "Ana", Email: "ana@x.com"}

func TestIssueVerify_RoundTrip(t *testing.T) {
	iss, ver := newPair(testTokens(), issuedAt)

	tok, err := iss.Issue(ana)
	require.NoError(t, err)

	id, err := ver.Verify(tok)
	require.NoError(t, err)

	assert.Equal(t, int64(42), id.UserID)
	assert.Equal(t, "ana@x.com", id.Email)
	assert.Equal(t, "Ana", id.Name)
	assert.True(t, id.IssuedAt.Equal(issuedAt))
	assert.True(t, id.ExpiresAt.Equal(issuedAt.Add(7*24*time.Hour)))
}

func TestIssue_EmbedsRegisteredClaims(t *testing.T) {
	cfg := testTokens()
	iss, _ := newPair(cfg, issuedAt)

	tok, err := iss.Issue(ana)
	require.NoError(t, err)

	var claims Claims
	_, _, err = jwt.NewParser().ParseUnverified(tok, &claims)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "careerpath", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"careerpath-dashboard"}, claims.Audience)
	assert.Equal(t, issuedAt.Unix(), claims.IssuedAt.Unix())
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	cfg := testTokens()
	iss, ver := newPair(cfg, issuedAt)

	tok, err := iss.Issue(ana)
	require.NoError(t, err)

	exp := issuedAt.Add(cfg.TTL)

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{name: "at issuance", at: issuedAt},
		{name: "one second before expiry", at: exp.Add(-time.Second)},
		{name: "at expiry", at: exp, wantErr: ErrExpired},
		{name: "after expiry", at: exp.Add(time.Second), wantErr: ErrExpired},
		{name: "long after expiry", at: exp.Add(24 * time.Hour), wantErr: ErrExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ver.now = fixedClock(tt.at)

			_, err := ver.Verify(tok)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerify_Rejections(t *testing.T) {
	cfg := testTokens()
	iss, ver := newPair(cfg, issuedAt)

	good, err := iss.Issue(ana)
	require.NoError(t, err)

	otherKey := *cfg
	otherKey.Secret = "ffffffffffffffffffffffffffffffff"
	wrongKeyIss, _ := newPair(&otherKey, issuedAt)
	wrongKey, err := wrongKeyIss.Issue(ana)
	require.NoError(t, err)

	otherIssuer := *cfg
	otherIssuer.Issuer = "someone-else"
	wrongIssIss, _ := newPair(&otherIssuer, issuedAt)
	wrongIss, err := wrongIssIss.Issue(ana)
	require.NoError(t, err)

	otherAud := *cfg
	otherAud.Audience = "mobile"
	wrongAudIss, _ := newPair(&otherAud, issuedAt)
	wrongAud, err := wrongAudIss.Issue(ana)
	require.NoError(t, err)

	// payload of another token under good's signature
	parts := strings.Split(good, ".")
	foreign := strings.Split(wrongIss, ".")
	tampered := parts[0] + "." + foreign[1] + "." + parts[2]

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	})
	wrongAlg, err := hs512.SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "empty", token: "", wantErr: ErrMalformed},
		{name: "garbage", token: "not.a.jwt", wantErr: ErrMalformed},
		{name: "wrong key", token: wrongKey, wantErr: ErrBadSignature},
		{name: "tampered payload", token: tampered, wantErr: ErrBadSignature},
		{name: "wrong algorithm", token: wrongAlg, wantErr: ErrBadSignature},
		{name: "wrong issuer", token: wrongIss, wantErr: ErrIssuerMismatch},
		{name: "wrong audience", token: wrongAud, wantErr: ErrAudienceMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ver.Verify(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerify_BadSubject(t *testing.T) {
	cfg := testTokens()
	_, ver := newPair(cfg, issuedAt)

	for _, sub := range []string{"", "abc", "0", "-3"} {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   sub,
				Issuer:    cfg.Issuer,
				Audience:  jwt.ClaimStrings{cfg.Audience},
				ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
			},
		}).SignedString([]byte(cfg.Secret))
		require.NoError(t, err)

		_, err = ver.Verify(tok)
		assert.ErrorIs(t, err, ErrMalformed, "subject %q", sub)
	}
}

func TestVerify_MissingExpiry(t *testing.T) {
	cfg := testTokens()
	_, ver := newPair(cfg, issuedAt)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "42",
			Issuer:   cfg.Issuer,
			Audience: jwt.ClaimStrings{cfg.Audience},
		},
	}).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = ver.Verify(tok)
	assert.ErrorIs(t, err, ErrMalformed)
}
