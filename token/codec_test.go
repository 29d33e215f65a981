package token_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-catalog-server/token"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "access-secret-1"
	otherSecret = "refresh-secret-1"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	codec := token.NewCodec(testSecret, 15*time.Minute)

	in := token.AccessClaims{
		UserID: 42,
		Email:  "john.doe@example.com",
		Name:   "John Doe",
		Role:   "admin",
	}

	raw, err := codec.EncodeAccess(in)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	out, err := codec.DecodeAccess(raw)
	require.NoError(t, err)
	require.Equal(t, in.UserID, out.UserID)
	require.Equal(t, in.Email, out.Email)
	require.Equal(t, in.Name, out.Name)
	require.Equal(t, in.Role, out.Role)
	require.NotNil(t, out.IssuedAt)
	require.NotNil(t, out.ExpiresAt)
	require.NotEmpty(t, out.ID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	codec := token.NewCodec(otherSecret, 7*24*time.Hour)

	in := token.RefreshClaims{
		UserID: 7,
		Email:  "jane@example.com",
		Role:   "user",
	}

	raw, err := codec.EncodeRefresh(in)
	require.NoError(t, err)

	out, err := codec.DecodeRefresh(raw)
	require.NoError(t, err)
	require.Equal(t, in.UserID, out.UserID)
	require.Equal(t, in.Email, out.Email)
	require.Equal(t, in.Role, out.Role)
}

func TestDecodeFailsAfterExpiry(t *testing.T) {
	now := time.Now()
	codec := token.NewCodec(testSecret, 15*time.Minute, token.WithNowFunc(func() time.Time { return now }))

	raw, err := codec.EncodeAccess(token.AccessClaims{UserID: 1, Email: "a@b.com", Role: "user"})
	require.NoError(t, err)

	// Jump the clock to exactly the expiry instant.
	now = now.Add(15 * time.Minute)

	_, err = codec.DecodeAccess(raw)
	require.ErrorIs(t, err, token.TokenExpiredErr)
	require.True(t, token.IsInvalidOrExpired(err))
}

func TestCrossSecretRejection(t *testing.T) {
	accessCodec := token.NewCodec(testSecret, 15*time.Minute)
	refreshCodec := token.NewCodec(otherSecret, 7*24*time.Hour)

	raw, err := accessCodec.EncodeAccess(token.AccessClaims{UserID: 1, Email: "a@b.com", Role: "user"})
	require.NoError(t, err)

	_, err = refreshCodec.DecodeAccess(raw)
	require.ErrorIs(t, err, token.InvalidSignatureErr)
	require.True(t, token.IsInvalidOrExpired(err))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec := token.NewCodec(testSecret, 15*time.Minute)

	_, err := codec.DecodeAccess("not-a-jwt")
	require.ErrorIs(t, err, token.MalformedTokenErr)
	require.True(t, token.IsInvalidOrExpired(err))
}
