package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_SignupAndLogin(t *testing.T) {
	store, _ := newTestStore(t)
	auth := NewAuthService(store.Users())

	user, err := auth.Signup(SignupInput{Email: " Person@Example.com", Name: "Person", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "person@example.com", user.Email)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	_, err = auth.Signup(SignupInput{Email: "person@example.com", Name: "Again", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = auth.Signup(SignupInput{Email: "short@example.com", Name: "Short", Password: "123"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	loggedIn, err := auth.Login(LoginInput{Email: "PERSON@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = auth.Login(LoginInput{Email: "person@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(LoginInput{Email: "ghost@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
