package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/inamrestro/restaurant-app/models"
	"github.com/inamrestro/restaurant-app/services"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupInput(username string) services.SignupInput {
	return services.SignupInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  username,
		Email:     username + "@example.com",
		Password:  "s3cret!",
		Password2: "s3cret!",
	}
}

func TestAuthService_SignupAndAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	m := newMetrics()
	svc := services.NewAuthService(db, m)
	ctx := context.Background()

	user, err := svc.Signup(ctx, signupInput("ada"))
	require.NoError(t, err)
	assert.False(t, user.IsStaff)
	assert.NotEqual(t, "s3cret!", user.Password)

	got, err := svc.Authenticate(ctx, "ada", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "ada", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody", "s3cret!")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Signups))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginFailures))
}

func TestAuthService_PasswordMismatch(t *testing.T) {
	db := setupTestDB(t)
	in := signupInput("ada")
	in.Password2 = "different"

	_, err := services.NewAuthService(db, nil).Signup(context.Background(), in)
	assert.ErrorIs(t, err, services.ErrPasswordMismatch)

	var n int64
	db.Model(&models.User{}).Count(&n)
	assert.Zero(t, n)
}

func TestAuthService_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAuthService(db, nil)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput("ada"))
	require.NoError(t, err)
	_, err = svc.Signup(ctx, signupInput("ada"))
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
}

func TestAuthService_Profile(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAuthService(db, nil)
	ctx := context.Background()

	user, err := svc.Signup(ctx, signupInput("ada"))
	require.NoError(t, err)

	got, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)

	_, err = svc.Profile(ctx, 999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAuthService_PasswordTooLong(t *testing.T) {
	db := setupTestDB(t)
	in := signupInput("ada")
	in.Password = strings.Repeat("p", 80)
	in.Password2 = in.Password

	_, err := services.NewAuthService(db, nil).Signup(context.Background(), in)
	assert.ErrorIs(t, err, services.ErrPasswordTooLong)

	in.Password = strings.Repeat("p", 72)
	in.Password2 = in.Password
	_, err = services.NewAuthService(db, nil).Signup(context.Background(), in)
	assert.NoError(t, err)
}
