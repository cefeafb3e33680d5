package service

import (
	"context"
	"time"

	"github.com/abdalla1234567890/chatbot/internal/repository"
)

// AuditEntry is the external view of an audit row with the actor resolved to
// its display form.
type AuditEntry struct {
	Action     string    `json:"action"`
	ActorCode  string    `json:"actor_code,omitempty"`
	ActorName  string    `json:"actor_name,omitempty"`
	EntityID   string    `json:"entity_id"`
	EntityName string    `json:"entity_name,omitempty"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}

type AuditService interface {
	ListEntries(ctx context.Context, page, limit int) ([]AuditEntry, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

// NewAuditService returns a new instance of AuditService
func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) ListEntries(ctx context.Context, page, limit int) ([]AuditEntry, int64, error) {
	logs, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]AuditEntry, 0, len(logs))
	for _, entry := range logs {
		view := AuditEntry{
			Action:     entry.Action,
			EntityID:   entry.EntityID,
			EntityName: entry.EntityName,
			Details:    entry.Details,
			CreatedAt:  entry.CreatedAt,
		}
		if entry.Actor != nil {
			view.ActorCode = entry.Actor.Code
			view.ActorName = entry.Actor.Name
		}
		entries = append(entries, view)
	}

	return entries, total, nil
}
