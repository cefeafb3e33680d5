package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/abdalla1234567890/chatbot/internal/model"
	"github.com/abdalla1234567890/chatbot/internal/repository"
	"github.com/abdalla1234567890/chatbot/internal/validate"
)

type CreateLocationRequest struct {
	Name string `json:"name" binding:"required"`
}

type SetUserLocationsRequest struct {
	UserRef     string `json:"user_ref" binding:"required"`
	LocationIDs []uint `json:"location_ids"`
}

type UserLocationRequest struct {
	UserRef    string `json:"user_ref" binding:"required"`
	LocationID uint   `json:"location_id" binding:"required"`
}

// LocationService covers the global catalog and per-user assignments.
type LocationService interface {
	ListLocations(ctx context.Context) ([]model.Location, error)
	// ListForUser returns the caller's allowed delivery sites. An empty
	// result means the user is unrestricted and sees the whole catalog.
	ListForUser(ctx context.Context, user *model.User) ([]model.Location, error)
	CreateLocation(ctx context.Context, actor *model.User, req CreateLocationRequest) (*model.Location, error)
	DeleteLocation(ctx context.Context, actor *model.User, id uint) error

	ListUserLocations(ctx context.Context, userRef string) ([]model.Location, error)
	SetUserLocations(ctx context.Context, actor *model.User, req SetUserLocationsRequest) error
	AddUserLocation(ctx context.Context, actor *model.User, req UserLocationRequest) error
	RemoveUserLocation(ctx context.Context, actor *model.User, req UserLocationRequest) error
}

type locationService struct {
	locations repository.LocationRepository
	users     repository.UserRepository
	audit     repository.AuditRepository
}

// NewLocationService returns a new instance of LocationService
func NewLocationService(locations repository.LocationRepository, users repository.UserRepository, audit repository.AuditRepository) LocationService {
	return &locationService{locations: locations, users: users, audit: audit}
}

func (s *locationService) ListLocations(ctx context.Context) ([]model.Location, error) {
	return s.locations.List(ctx)
}

func (s *locationService) ListForUser(ctx context.Context, user *model.User) ([]model.Location, error) {
	assigned, err := s.locations.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(assigned) > 0 {
		return assigned, nil
	}
	// No explicit assignment restricts nothing.
	return s.locations.List(ctx)
}

func (s *locationService) CreateLocation(ctx context.Context, actor *model.User, req CreateLocationRequest) (*model.Location, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errBadRequest("location_name_empty")
	}
	if !validate.Name(name) {
		return nil, errBadRequest("location_name_long")
	}

	existing, err := s.locations.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, loc := range existing {
		if loc.Name == name {
			return nil, errConflict("location_exists")
		}
	}

	location := &model.Location{Name: name}
	if err := s.locations.Create(ctx, location); err != nil {
		return nil, err
	}

	s.logAction(ctx, actor, model.ActionCreateLocation, fmt.Sprint(location.ID), location.Name, "")
	return location, nil
}

func (s *locationService) DeleteLocation(ctx context.Context, actor *model.User, id uint) error {
	location, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return errNotFound("location_not_found")
	}

	deleted, err := s.locations.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errNotFound("location_not_found")
	}

	s.logAction(ctx, actor, model.ActionDeleteLocation, fmt.Sprint(id), location.Name, "")
	return nil
}

func (s *locationService) ListUserLocations(ctx context.Context, userRef string) ([]model.Location, error) {
	user, err := s.users.GetByRef(ctx, userRef)
	if err != nil {
		return nil, errNotFound("user_not_found")
	}
	return s.locations.ListForUser(ctx, user.ID)
}

func (s *locationService) SetUserLocations(ctx context.Context, actor *model.User, req SetUserLocationsRequest) error {
	user, err := s.users.GetByRef(ctx, req.UserRef)
	if err != nil {
		return errNotFound("user_not_found")
	}

	for _, id := range req.LocationIDs {
		if _, err := s.locations.GetByID(ctx, id); err != nil {
			return errNotFound("location_not_found")
		}
	}

	if err := s.locations.ReplaceForUser(ctx, user.ID, req.LocationIDs); err != nil {
		return err
	}

	s.logAction(ctx, actor, model.ActionSetUserLocations, user.IDHash, user.Name, fmt.Sprintf("location_ids=%v", req.LocationIDs))
	return nil
}

func (s *locationService) AddUserLocation(ctx context.Context, actor *model.User, req UserLocationRequest) error {
	user, err := s.users.GetByRef(ctx, req.UserRef)
	if err != nil {
		return errNotFound("user_not_found")
	}
	location, err := s.locations.GetByID(ctx, req.LocationID)
	if err != nil {
		return errNotFound("location_not_found")
	}

	assigned, err := s.locations.ListForUser(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, loc := range assigned {
		if loc.ID == req.LocationID {
			return errConflict("user_location_exists")
		}
	}

	if err := s.locations.AddForUser(ctx, user.ID, req.LocationID); err != nil {
		return err
	}

	s.logAction(ctx, actor, model.ActionAddUserLocation, user.IDHash, user.Name, "location="+location.Name)
	return nil
}

func (s *locationService) RemoveUserLocation(ctx context.Context, actor *model.User, req UserLocationRequest) error {
	user, err := s.users.GetByRef(ctx, req.UserRef)
	if err != nil {
		return errNotFound("user_not_found")
	}

	removed, err := s.locations.RemoveForUser(ctx, user.ID, req.LocationID)
	if err != nil {
		return err
	}
	if !removed {
		return errNotFound("location_not_found")
	}

	s.logAction(ctx, actor, model.ActionRemoveUserLocation, user.IDHash, user.Name, fmt.Sprintf("location_id=%d", req.LocationID))
	return nil
}

func (s *locationService) logAction(ctx context.Context, actor *model.User, action, entityID, entityName, details string) {
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
