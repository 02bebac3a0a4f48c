package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-session-service/auth"
	"github.com/jrsteele09/go-session-service/token"
	refreshrepofake "github.com/jrsteele09/go-session-service/token/refresh/repofake"
	fakeuserrepo "github.com/jrsteele09/go-session-service/users/repofake"
)

const (
	secretStr        = "1234"
	testUserEmail    = "john.doe@example.com"
	testUserPassword = "password123"
)

type testTokenConfig struct {
	access  time.Duration
	refresh time.Duration
}

func (c testTokenConfig) GetSecret() string                  { return secretStr }
func (c testTokenConfig) GetAccessTokenLife() time.Duration  { return c.access }
func (c testTokenConfig) GetRefreshTokenLife() time.Duration { return c.refresh }

// testFixture holds all test dependencies
type testFixture struct {
	userRepo    *fakeuserrepo.FakeUserRepo
	sessionRepo *refreshrepofake.FakeSessionRepo
	codec       *token.Codec
	service     *auth.Service
	now         time.Time
}

// setupTestFixture creates a new test fixture with fake repositories and a
// controllable clock shared by the codec and the service.
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		userRepo:    fakeuserrepo.NewFakeUserRepo(),
		sessionRepo: refreshrepofake.NewFakeSessionRepo(),
		now:         time.Now(),
	}

	nowFunc := func() time.Time { return f.now }
	f.codec = token.NewCodec(token.NewHMACSigner(secretStr), token.WithNowFunc(nowFunc))

	service, err := auth.NewService(
		auth.Repos{Users: f.userRepo, Sessions: f.sessionRepo},
		f.codec,
		testTokenConfig{access: 15 * time.Minute, refresh: 7 * 24 * time.Hour},
		auth.WithNowTime(nowFunc),
	)
	require.NoError(t, err)
	f.service = service

	return f
}

func (f *testFixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *testFixture) register(t *testing.T, email, password string) token.Identity {
	t.Helper()

	identity, err := f.service.Register(context.Background(), auth.Credentials{
		Email:                email,
		Password:             password,
		PasswordConfirmation: password,
	})
	require.NoError(t, err)
	return identity
}

func TestRegisterValidationOrder(t *testing.T) {
	tests := []struct {
		name  string
		creds auth.Credentials
		want  error
	}{
		{
			name:  "all fields missing",
			creds: auth.Credentials{},
			want:  auth.ErrInvalidInput,
		},
		{
			name:  "missing confirmation",
			creds: auth.Credentials{Email: testUserEmail, Password: testUserPassword},
			want:  auth.ErrInvalidInput,
		},
		{
			name: "invalid email",
			creds: auth.Credentials{
				Email: "not-an-email", Password: testUserPassword, PasswordConfirmation: testUserPassword,
			},
			want: auth.ErrInvalidEmail,
		},
		{
			// The email check runs before the password checks.
			name: "invalid email with short password",
			creds: auth.Credentials{
				Email: "bad@@example.com", Password: "short", PasswordConfirmation: "short",
			},
			want: auth.ErrInvalidEmail,
		},
		{
			name: "short password",
			creds: auth.Credentials{
				Email: testUserEmail, Password: "short", PasswordConfirmation: "short",
			},
			want: auth.ErrWeakPassword,
		},
		{
			name: "password mismatch",
			creds: auth.Credentials{
				Email: testUserEmail, Password: "password123", PasswordConfirmation: "password124",
			},
			want: auth.ErrPasswordMismatch,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := setupTestFixture(t)
			_, err := f.service.Register(context.Background(), tc.creds)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRegisterSuccess(t *testing.T) {
	f := setupTestFixture(t)

	identity := f.register(t, testUserEmail, testUserPassword)
	require.NotEmpty(t, identity.ID)
	require.Equal(t, testUserEmail, identity.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := setupTestFixture(t)

	f.register(t, testUserEmail, testUserPassword)

	_, err := f.service.Register(context.Background(), auth.Credentials{
		Email:                testUserEmail,
		Password:             "anotherpassword",
		PasswordConfirmation: "anotherpassword",
	})
	require.ErrorIs(t, err, auth.ErrDuplicateEmail)
}

func TestLoginAfterRegister(t *testing.T) {
	f := setupTestFixture(t)

	registered := f.register(t, testUserEmail, testUserPassword)

	identity, err := f.service.Login(context.Background(), auth.Credentials{
		Email:    testUserEmail,
		Password: testUserPassword,
	})
	require.NoError(t, err)
	require.Equal(t, registered, identity)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	f.register(t, testUserEmail, testUserPassword)

	_, wrongPassErr := f.service.Login(ctx, auth.Credentials{
		Email:    testUserEmail,
		Password: "passwrod123",
	})
	_, unknownEmailErr := f.service.Login(ctx, auth.Credentials{
		Email:    "nobody@example.com",
		Password: testUserPassword,
	})

	require.ErrorIs(t, wrongPassErr, auth.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmailErr, auth.ErrInvalidCredentials)
	require.Equal(t, wrongPassErr.Error(), unknownEmailErr.Error())
}

func TestLoginMissingFields(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Login(context.Background(), auth.Credentials{Email: testUserEmail})
	require.ErrorIs(t, err, auth.ErrInvalidInput)
}

func TestIssueSessionKeepsSingleSessionPerUser(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	identity := f.register(t, testUserEmail, testUserPassword)

	_, err := f.service.IssueSession(ctx, identity)
	require.NoError(t, err)

	f.advance(time.Second)
	second, err := f.service.IssueSession(ctx, identity)
	require.NoError(t, err)

	require.Equal(t, 1, f.sessionRepo.Len())
	stored, err := f.sessionRepo.GetByUserID(ctx, identity.ID)
	require.NoError(t, err)
	require.Equal(t, second.RefreshToken, stored.Token)
}

func TestRefreshRotatesTokenPair(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	identity := f.register(t, testUserEmail, testUserPassword)
	first, err := f.service.IssueSession(ctx, identity)
	require.NoError(t, err)

	f.advance(time.Second)
	second, err := f.service.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)

	require.NotEqual(t, first.AccessToken, second.AccessToken)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	stored, err := f.sessionRepo.GetByUserID(ctx, identity.ID)
	require.NoError(t, err)
	require.Equal(t, second.RefreshToken, stored.Token)
}

func TestRefreshRejectsSupersededToken(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	identity := f.register(t, testUserEmail, testUserPassword)
	first, err := f.service.IssueSession(ctx, identity)
	require.NoError(t, err)

	f.advance(time.Second)
	second, err := f.service.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)

	// The rotated-out token still has a valid signature and is unexpired,
	// but it no longer matches the stored session.
	_, err = f.service.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, auth.ErrTokenSuperseded)

	// The rejection must not invalidate the current session.
	f.advance(time.Second)
	_, err = f.service.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsExpiredStoredToken(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	identity := f.register(t, testUserEmail, testUserPassword)
	pair, err := f.service.IssueSession(ctx, identity)
	require.NoError(t, err)

	// Past the refresh lifetime the token is rejected even though it is
	// still the one stored for the user.
	f.advance(8 * 24 * time.Hour)
	stored, err := f.sessionRepo.GetByUserID(ctx, identity.ID)
	require.NoError(t, err)
	require.Equal(t, pair.RefreshToken, stored.Token)

	_, err = f.service.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, auth.ErrForbidden)
}

func TestRefreshRejectsMissingAndGarbageTokens(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.service.Refresh(ctx, "")
	require.ErrorIs(t, err, auth.ErrForbidden)

	_, err = f.service.Refresh(ctx, "abc123")
	require.ErrorIs(t, err, auth.ErrForbidden)
}

func TestRefreshRejectsUnknownUser(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	identity := f.register(t, testUserEmail, testUserPassword)
	pair, err := f.service.IssueSession(ctx, identity)
	require.NoError(t, err)

	require.NoError(t, f.userRepo.Delete(ctx, identity.ID))

	_, err = f.service.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, auth.ErrForbidden)
}

func TestRefreshWithoutStoredSession(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	identity := f.register(t, testUserEmail, testUserPassword)
	pair, err := f.service.IssueSession(ctx, identity)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, identity.ID))

	_, err = f.service.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, auth.ErrForbidden)
}

func TestVerifyAccess(t *testing.T) {
	f := setupTestFixture(t)

	identity := f.register(t, testUserEmail, testUserPassword)
	pair, err := f.service.IssueSession(context.Background(), identity)
	require.NoError(t, err)

	got, err := f.service.VerifyAccess("Bearer " + pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, identity, got)

	_, err = f.service.VerifyAccess("")
	require.ErrorIs(t, err, auth.ErrUnauthorized)

	_, err = f.service.VerifyAccess(pair.AccessToken) // missing scheme prefix
	require.ErrorIs(t, err, auth.ErrUnauthorized)

	_, err = f.service.VerifyAccess("Bearer abc123")
	require.ErrorIs(t, err, auth.ErrUnauthorized)

	// Rejected once the access lifetime has elapsed.
	f.advance(15 * time.Minute)
	_, err = f.service.VerifyAccess("Bearer " + pair.AccessToken)
	require.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	identity := f.register(t, testUserEmail, testUserPassword)
	_, err := f.service.IssueSession(ctx, identity)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, identity.ID))
	require.NoError(t, f.service.Logout(ctx, identity.ID))
	require.Equal(t, 0, f.sessionRepo.Len())
}
