// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaksimov/kritika/internal/mail"
	"github.com/dmaksimov/kritika/internal/platform/apperr"
	"github.com/dmaksimov/kritika/internal/platform/sec"
	"github.com/dmaksimov/kritika/internal/users/auth"
	"github.com/dmaksimov/kritika/pkg/pagination"
)

// # Test Doubles

type fakeUserRepo struct {
	byUsername map[string]*auth.User
	createErr  error
	created    []*auth.User
}

func newFakeUserRepo(users ...*auth.User) *fakeUserRepo {
	repo := &fakeUserRepo{byUsername: map[string]*auth.User{}}
	for _, user := range users {
		repo.byUsername[user.Username] = user
	}
	return repo
}

func (repo *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range repo.byUsername {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if user, ok := repo.byUsername[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.byUsername {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) List(_ context.Context, _ pagination.Params, _ string) ([]*auth.User, int, error) {
	return nil, 0, nil
}

func (repo *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	if repo.createErr != nil {
		return repo.createErr
	}
	repo.byUsername[user.Username] = user
	repo.created = append(repo.created, user)
	return nil
}

func (repo *fakeUserRepo) Update(_ context.Context, user *auth.User) error {
	repo.byUsername[user.Username] = user
	return nil
}

func (repo *fakeUserRepo) Delete(_ context.Context, username string) error {
	delete(repo.byUsername, username)
	return nil
}

type fakeCodeRepo struct {
	digests map[string]string
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{digests: map[string]string{}}
}

func (repo *fakeCodeRepo) Set(_ context.Context, username, codeDigest string, _ time.Duration) error {
	repo.digests[username] = codeDigest
	return nil
}

func (repo *fakeCodeRepo) Get(_ context.Context, username string) (string, error) {
	digest, ok := repo.digests[username]
	if !ok {
		return "", apperr.NotFound("Confirmation code")
	}
	return digest, nil
}

func (repo *fakeCodeRepo) Delete(_ context.Context, username string) error {
	delete(repo.digests, username)
	return nil
}

type fakeTokenProvider struct {
	token string
	calls int
}

func (provider *fakeTokenProvider) GenerateAccessToken(_, _, _ string, _ bool, _ time.Duration) (string, error) {
	provider.calls++
	return provider.token, nil
}

type capturingMailer struct {
	messages []mail.Message
	err      error
}

func (mailer *capturingMailer) Send(_ context.Context, message mail.Message) error {
	mailer.messages = append(mailer.messages, message)
	return mailer.err
}

func newService(users *fakeUserRepo, codes *fakeCodeRepo, tokens *fakeTokenProvider, mailer *capturingMailer) *auth.Service {
	return auth.NewService(users, codes, tokens, mailer)
}

// # Signup

/*
TestService_Signup_NewUser verifies that a fresh signup creates the account,
stores a code digest, and emails the plain code.
*/
func TestService_Signup_NewUser(t *testing.T) {
	users := newFakeUserRepo()
	codes := newFakeCodeRepo()
	mailer := &capturingMailer{}
	service := newService(users, codes, &fakeTokenProvider{}, mailer)

	user, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "reviewer",
		Email:    "reviewer@example.com",
	})

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.Len(t, users.created, 1)

	digest, err := codes.Get(context.Background(), "reviewer")
	require.NoError(t, err)
	assert.NotEmpty(t, digest)

	require.Len(t, mailer.messages, 1)
	assert.Equal(t, "reviewer@example.com", mailer.messages[0].To)
	assert.Contains(t, mailer.messages[0].Body, "confirmation code")
}

/*
TestService_Signup_RepeatRotatesCode verifies that signing up with the same
identity reuses the account and replaces the stored code digest.
*/
func TestService_Signup_RepeatRotatesCode(t *testing.T) {
	users := newFakeUserRepo()
	codes := newFakeCodeRepo()
	mailer := &capturingMailer{}
	service := newService(users, codes, &fakeTokenProvider{}, mailer)

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "reviewer", Email: "reviewer@example.com",
	})
	require.NoError(t, err)
	firstDigest := codes.digests["reviewer"]

	_, err = service.Signup(context.Background(), auth.SignupInput{
		Username: "reviewer", Email: "reviewer@example.com",
	})
	require.NoError(t, err)

	assert.Len(t, users.created, 1, "repeat signup must not create a second account")
	assert.NotEqual(t, firstDigest, codes.digests["reviewer"])
	assert.Len(t, mailer.messages, 2)
}

/*
TestService_Signup_IdentityCollisions verifies that a username or email
bound to a different identity is rejected as a validation error.
*/
func TestService_Signup_IdentityCollisions(t *testing.T) {
	existing := &auth.User{
		ID: "01933-existing", Username: "reviewer", Email: "reviewer@example.com", Role: sec.RoleUser,
	}

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"taken_username_other_email", "reviewer", "other@example.com"},
		{"taken_email_other_username", "someone", "reviewer@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserRepo(existing)
			service := newService(users, newFakeCodeRepo(), &fakeTokenProvider{}, &capturingMailer{})

			_, err := service.Signup(context.Background(), auth.SignupInput{
				Username: tt.username, Email: tt.email,
			})

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Len(t, users.created, 0)
		})
	}
}

/*
TestService_Signup_MailFailureKeepsAccount verifies the delivery-failure
contract: the account and code survive a mailer outage.
*/
func TestService_Signup_MailFailureKeepsAccount(t *testing.T) {
	users := newFakeUserRepo()
	codes := newFakeCodeRepo()
	mailer := &capturingMailer{err: assert.AnError}
	service := newService(users, codes, &fakeTokenProvider{}, mailer)

	user, err := service.Signup(context.Background(), auth.SignupInput{
		Username: "reviewer", Email: "reviewer@example.com",
	})

	require.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotEmpty(t, codes.digests["reviewer"])
}

// # Token Issuance

// signupAndExtractCode runs a signup and recovers the emailed plain code.
func signupAndExtractCode(t *testing.T, service *auth.Service, mailer *capturingMailer, username, email string) string {
	t.Helper()

	_, err := service.Signup(context.Background(), auth.SignupInput{Username: username, Email: email})
	require.NoError(t, err)
	require.NotEmpty(t, mailer.messages)

	body := mailer.messages[len(mailer.messages)-1].Body
	const prefix = "Your confirmation code is "
	require.Contains(t, body, prefix)
	return body[len(prefix):]
}

/*
TestService_IssueToken_Success verifies the full exchange: a valid code
mints a token and is consumed so it cannot be redeemed twice.
*/
func TestService_IssueToken_Success(t *testing.T) {
	users := newFakeUserRepo()
	codes := newFakeCodeRepo()
	tokens := &fakeTokenProvider{token: "signed.jwt.value"}
	mailer := &capturingMailer{}
	service := newService(users, codes, tokens, mailer)

	code := signupAndExtractCode(t, service, mailer, "reviewer", "reviewer@example.com")

	output, err := service.IssueToken(context.Background(), "reviewer", code)
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.value", output.AccessToken)
	assert.Equal(t, 1, tokens.calls)

	// Single use: the same code must not work a second time.
	_, err = service.IssueToken(context.Background(), "reviewer", code)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestService_IssueToken_Failures checks the status split between an unknown
account and a bad code for a known account.
*/
func TestService_IssueToken_Failures(t *testing.T) {
	users := newFakeUserRepo()
	codes := newFakeCodeRepo()
	mailer := &capturingMailer{}
	service := newService(users, codes, &fakeTokenProvider{token: "t"}, mailer)

	signupAndExtractCode(t, service, mailer, "reviewer", "reviewer@example.com")

	t.Run("unknown_username_is_not_found", func(t *testing.T) {
		_, err := service.IssueToken(context.Background(), "ghost", "whatever")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 404, ae.HTTPStatus)
	})

	t.Run("wrong_code_is_validation_error", func(t *testing.T) {
		_, err := service.IssueToken(context.Background(), "reviewer", "not-the-code")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("real_code_still_valid_after_bad_attempt", func(t *testing.T) {
		assert.NotEmpty(t, codes.digests["reviewer"])
	})
}
