package service

import (
	"context"
	"testing"

	"github.com/abdalla1234567890/chatbot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(repo *fakeUserRepo, code, name string, admin int) *model.User {
	user := &model.User{Code: code, Name: name, Phone: "0501234567", IsAdmin: admin}
	_ = repo.Create(context.Background(), user)
	return user
}

func TestLoginSuccess(t *testing.T) {
	repo := &fakeUserRepo{}
	admin := seedUser(repo, "admin123", "Main Admin", 1)
	svc := NewUserService(repo, &fakeAuditRepo{})

	resp, err := svc.Login(context.Background(), LoginRequest{Code: "admin123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "admin123", resp.User.Code)
	assert.Equal(t, admin.IDHash, resp.User.IDHash)
	assert.Equal(t, 1, resp.User.IsAdmin)
}

func TestLoginUnknownCode(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, &fakeAuditRepo{})

	_, err := svc.Login(context.Background(), LoginRequest{Code: "nosuch12"})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 401, svcErr.Status)
	assert.Equal(t, "invalid_code", svcErr.Code)
}

func TestCreateUserValidation(t *testing.T) {
	repo := &fakeUserRepo{}
	actor := seedUser(repo, "admin123", "Main Admin", 1)
	svc := NewUserService(repo, &fakeAuditRepo{})

	cases := []struct {
		name string
		req  CreateUserRequest
		code string
	}{
		{"short code", CreateUserRequest{Code: "abc", Name: "X", Phone: "0501234567"}, "code_length"},
		{"bad phone", CreateUserRequest{Code: "abcd1234", Name: "X", Phone: "1234567890"}, "phone_invalid"},
		{"bad phone prefix", CreateUserRequest{Code: "abcd1234", Name: "X", Phone: "0612345678"}, "phone_invalid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateUser(context.Background(), actor, tc.req)
			var svcErr *Error
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, tc.code, svcErr.Code)
		})
	}
}

func TestCreateUserDuplicateCode(t *testing.T) {
	repo := &fakeUserRepo{}
	actor := seedUser(repo, "admin123", "Main Admin", 1)
	svc := NewUserService(repo, &fakeAuditRepo{})

	_, err := svc.CreateUser(context.Background(), actor, CreateUserRequest{Code: "admin123", Name: "Dup", Phone: "0501234567"})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 409, svcErr.Status)
	assert.Equal(t, "code_in_use", svcErr.Code)
}

func TestCreateUserRecordsAudit(t *testing.T) {
	repo := &fakeUserRepo{}
	audit := &fakeAuditRepo{}
	actor := seedUser(repo, "admin123", "Main Admin", 1)
	svc := NewUserService(repo, audit)

	created, err := svc.CreateUser(context.Background(), actor, CreateUserRequest{Code: "cust0001", Name: "عميل", Phone: "0555555555"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.IDHash)
	assert.Equal(t, 0, created.IsAdmin)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, model.ActionCreateUser, audit.entries[0].Action)
	assert.Equal(t, &actor.ID, audit.entries[0].ActorID)
	assert.Equal(t, created.IDHash, audit.entries[0].EntityID)
}

func TestUpdateUserFieldByIDHashAndByCode(t *testing.T) {
	repo := &fakeUserRepo{}
	actor := seedUser(repo, "admin123", "Main Admin", 1)
	user := seedUser(repo, "cust0001", "قديم", 0)
	svc := NewUserService(repo, &fakeAuditRepo{})

	updated, err := svc.UpdateUserField(context.Background(), actor, user.IDHash, UpdateUserFieldRequest{Field: "name", Value: "جديد"})
	require.NoError(t, err)
	assert.Equal(t, "جديد", updated.Name)

	updated, err = svc.UpdateUserField(context.Background(), actor, "cust0001", UpdateUserFieldRequest{Field: "phone", Value: "0599999999"})
	require.NoError(t, err)
	assert.Equal(t, "0599999999", updated.Phone)
}

func TestUpdateUserFieldRejectsUnknownField(t *testing.T) {
	repo := &fakeUserRepo{}
	actor := seedUser(repo, "admin123", "Main Admin", 1)
	user := seedUser(repo, "cust0001", "عميل", 0)
	svc := NewUserService(repo, &fakeAuditRepo{})

	_, err := svc.UpdateUserField(context.Background(), actor, user.IDHash, UpdateUserFieldRequest{Field: "is_admin", Value: "1"})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "field_not_allowed", svcErr.Code)
}

func TestUpdateUserCodeUniqueness(t *testing.T) {
	repo := &fakeUserRepo{}
	actor := seedUser(repo, "admin123", "Main Admin", 1)
	user := seedUser(repo, "cust0001", "عميل", 0)
	seedUser(repo, "cust0002", "آخر", 0)
	svc := NewUserService(repo, &fakeAuditRepo{})

	_, err := svc.UpdateUserField(context.Background(), actor, user.IDHash, UpdateUserFieldRequest{Field: "code", Value: "cust0002"})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "code_in_use", svcErr.Code)

	// Re-submitting the user's own code is not a conflict.
	updated, err := svc.UpdateUserField(context.Background(), actor, user.IDHash, UpdateUserFieldRequest{Field: "code", Value: "cust0001"})
	require.NoError(t, err)
	assert.Equal(t, "cust0001", updated.Code)
}

func TestDeleteUserKeepsLastAdmin(t *testing.T) {
	repo := &fakeUserRepo{}
	admin := seedUser(repo, "admin123", "Main Admin", 1)
	svc := NewUserService(repo, &fakeAuditRepo{})

	err := svc.DeleteUser(context.Background(), admin, admin.IDHash)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "last_admin", svcErr.Code)

	// With a second admin the deletion goes through.
	other := seedUser(repo, "admin456", "Second Admin", 1)
	require.NoError(t, svc.DeleteUser(context.Background(), other, admin.IDHash))

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "admin456", users[0].Code)
}

func TestDeleteUserNotFound(t *testing.T) {
	repo := &fakeUserRepo{}
	actor := seedUser(repo, "admin123", "Main Admin", 1)
	svc := NewUserService(repo, &fakeAuditRepo{})

	err := svc.DeleteUser(context.Background(), actor, "missing1")
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
	assert.Equal(t, "user_not_found", svcErr.Code)
}
