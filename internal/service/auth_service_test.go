package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/internal/service"
)

func signUpCommand() *service.SignUpCommand {
	return &service.SignUpCommand{
		Email:            "dr.mehta@clinic.io",
		Password:         "a-strong-password",
		ClinicName:       "Harmony Ayurveda",
		PractitionerName: "Dr. Mehta",
	}
}

func TestSignUpCreatesUserProfileAndTokens(t *testing.T) {
	e := newEnv(t)

	pair, err := e.auth.SignUp(context.Background(), signUpCommand())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "Bearer", pair.TokenType)

	user, err := e.store.Users().GetByEmail(context.Background(), "dr.mehta@clinic.io")
	require.NoError(t, err)

	p, err := e.store.Profiles().GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "Harmony Ayurveda", p.ClinicName)
	require.Equal(t, "Dr. Mehta", p.PractitionerName)
}

func TestSignUpValidatesCommand(t *testing.T) {
	e := newEnv(t)

	_, err := e.auth.SignUp(context.Background(), &service.SignUpCommand{
		Email:            "nope",
		Password:         "short",
		ClinicName:       "",
		PractitionerName: "D",
	})

	var validErr *service.ValidationError
	require.ErrorAs(t, err, &validErr)
	require.Len(t, validErr.Fields, 4)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	e := newEnv(t)

	_, err := e.auth.SignUp(context.Background(), signUpCommand())
	require.NoError(t, err)

	_, err = e.auth.SignUp(context.Background(), signUpCommand())
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestSignInVerifiesPassword(t *testing.T) {
	e := newEnv(t)

	_, err := e.auth.SignUp(context.Background(), signUpCommand())
	require.NoError(t, err)

	_, err = e.auth.SignIn(context.Background(), "dr.mehta@clinic.io", "wrong-password")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = e.auth.SignIn(context.Background(), "unknown@clinic.io", "a-strong-password")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	pair, err := e.auth.SignIn(context.Background(), "DR.MEHTA@clinic.io", "a-strong-password")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	e := newEnv(t)

	pair, err := e.auth.SignUp(context.Background(), signUpCommand())
	require.NoError(t, err)

	renewed, err := e.auth.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, renewed.AccessToken)

	// An access token is not a refresh token.
	_, err = e.auth.RefreshToken(context.Background(), pair.AccessToken)
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}
