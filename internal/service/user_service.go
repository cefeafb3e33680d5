package service

import (
	"context"
	"fmt"

	"github.com/abdalla1234567890/chatbot/internal/middleware"
	"github.com/abdalla1234567890/chatbot/internal/model"
	"github.com/abdalla1234567890/chatbot/internal/repository"
	"github.com/abdalla1234567890/chatbot/internal/validate"
)

// DTOs for Request validation
type LoginRequest struct {
	Code string `json:"code" form:"code" binding:"required"`
}

type CreateUserRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	IsAdmin bool   `json:"is_admin"`
}

// UpdateUserFieldRequest changes exactly one field of a user. The console
// edits one attribute at a time, so the wire format names the field.
type UpdateUserFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// UserInfo is the external view of a user. The primary key never leaves the
// API; IDHash is the reference admins mutate by.
type UserInfo struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	IsAdmin int    `json:"is_admin"`
	IDHash  string `json:"id_hash"`
}

type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        UserInfo `json:"user"`
}

// UserService defines the interface for business logic related to User
type UserService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	ListUsers(ctx context.Context) ([]UserInfo, error)
	CreateUser(ctx context.Context, actor *model.User, req CreateUserRequest) (*UserInfo, error)
	// UpdateUserField edits one field of the user referenced by ref
	// (identity hash or plain code).
	UpdateUserField(ctx context.Context, actor *model.User, ref string, req UpdateUserFieldRequest) (*UserInfo, error)
	DeleteUser(ctx context.Context, actor *model.User, ref string) error
}

type userService struct {
	repo  repository.UserRepository
	audit repository.AuditRepository
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, audit repository.AuditRepository) UserService {
	return &userService{repo: repo, audit: audit}
}

func mapToUserInfo(user *model.User) *UserInfo {
	return &UserInfo{
		Code:    user.Code,
		Name:    user.Name,
		Phone:   user.Phone,
		IsAdmin: user.IsAdmin,
		IDHash:  user.IDHash,
	}
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, errUnauthorized("invalid_code")
	}

	tokenString, err := middleware.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &TokenResponse{
		AccessToken: tokenString,
		TokenType:   "bearer",
		User:        *mapToUserInfo(user),
	}, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]UserInfo, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]UserInfo, 0, len(users))
	for i := range users {
		responses = append(responses, *mapToUserInfo(&users[i]))
	}
	return responses, nil
}

func (s *userService) CreateUser(ctx context.Context, actor *model.User, req CreateUserRequest) (*UserInfo, error) {
	if !validate.Code(req.Code) {
		return nil, errBadRequest("code_length")
	}
	if !validate.Name(req.Name) {
		return nil, errBadRequest("name_too_long")
	}
	if !validate.Phone(req.Phone) {
		return nil, errBadRequest("phone_invalid")
	}

	if _, err := s.repo.GetByCode(ctx, req.Code); err == nil {
		return nil, errConflict("code_in_use")
	}

	user := &model.User{
		Code:  req.Code,
		Name:  req.Name,
		Phone: req.Phone,
	}
	if req.IsAdmin {
		user.IsAdmin = 1
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logAction(ctx, actor, model.ActionCreateUser, user.IDHash, user.Name, "code="+user.Code)
	return mapToUserInfo(user), nil
}

func (s *userService) UpdateUserField(ctx context.Context, actor *model.User, ref string, req UpdateUserFieldRequest) (*UserInfo, error) {
	if !validate.UserField(req.Field) {
		return nil, errBadRequest("field_not_allowed")
	}

	user, err := s.repo.GetByRef(ctx, ref)
	if err != nil {
		return nil, errNotFound("user_not_found")
	}

	switch req.Field {
	case validate.UserFieldName:
		if !validate.Name(req.Value) {
			return nil, errBadRequest("name_too_long")
		}
		user.Name = req.Value
	case validate.UserFieldPhone:
		if !validate.Phone(req.Value) {
			return nil, errBadRequest("phone_invalid")
		}
		user.Phone = req.Value
	case validate.UserFieldCode:
		if !validate.Code(req.Value) {
			return nil, errBadRequest("code_length")
		}
		if other, err := s.repo.GetByCode(ctx, req.Value); err == nil && other.ID != user.ID {
			return nil, errConflict("code_in_use")
		}
		user.Code = req.Value
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logAction(ctx, actor, model.ActionUpdateUser, user.IDHash, user.Name, fmt.Sprintf("%s=%s", req.Field, req.Value))
	return mapToUserInfo(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, actor *model.User, ref string) error {
	user, err := s.repo.GetByRef(ctx, ref)
	if err != nil {
		return errNotFound("user_not_found")
	}

	if user.IsAdmin == 1 {
		admins, err := s.repo.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return errBadRequest("last_admin")
		}
	}

	if err := s.repo.Delete(ctx, user); err != nil {
		return err
	}

	s.logAction(ctx, actor, model.ActionDeleteUser, user.IDHash, user.Name, "code="+user.Code)
	return nil
}

// logAction records an audit entry. Audit failures are swallowed: the
// mutation already happened and must not be reported as failed.
func (s *userService) logAction(ctx context.Context, actor *model.User, action, entityID, entityName, details string) {
	entry := &model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    details,
	}
	if actor != nil {
		entry.ActorID = &actor.ID
	}
	_ = s.audit.Log(ctx, entry)
}
