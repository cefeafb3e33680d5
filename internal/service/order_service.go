package service

import (
	"context"

	"github.com/abdalla1234567890/chatbot/internal/model"
	"github.com/abdalla1234567890/chatbot/internal/repository"

	"github.com/google/uuid"
)

// OrderService exposes captured orders to the admin console.
type OrderService interface {
	ListOrders(ctx context.Context, page, limit int) ([]model.Order, int64, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

type orderService struct {
	repo repository.OrderRepository
}

// NewOrderService returns a new instance of OrderService
func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{repo: repo}
}

func (s *orderService) ListOrders(ctx context.Context, page, limit int) ([]model.Order, int64, error) {
	return s.repo.List(ctx, page, limit)
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errNotFound("order_not_found")
	}
	return order, nil
}
