package service

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/abdalla1234567890/chatbot/internal/agent"
	"github.com/abdalla1234567890/chatbot/internal/i18n"
	"github.com/abdalla1234567890/chatbot/internal/model"
	"github.com/abdalla1234567890/chatbot/internal/repository"

	"github.com/shopspring/decimal"
)

// CustomerPrefix and SellerPrefix label conversation lines in the flat
// history format the chat endpoint exchanges with clients.
const (
	CustomerPrefix = "العميل: "
	SellerPrefix   = "البائع: "
)

type ChatRequest struct {
	Message string   `json:"message" binding:"required"`
	History []string `json:"history"`
}

type ChatResponse struct {
	Reply       string `json:"reply"`
	OrderPlaced bool   `json:"order_placed"`
}

// OrderNotifier pushes captured-order events to listening admin consoles.
type OrderNotifier interface {
	NotifyOrderCaptured(order *model.Order)
}

// ChatService runs one conversation turn against the assistant and captures
// confirmed orders.
type ChatService interface {
	Chat(ctx context.Context, lang string, user *model.User, req ChatRequest) (*ChatResponse, error)
}

type chatService struct {
	responder agent.Responder
	locations LocationService
	orders    repository.OrderRepository
	audit     repository.AuditRepository
	txManager repository.TransactionManager
	notifier  OrderNotifier
}

// NewChatService returns a new instance of ChatService. responder may be nil
// when no API key is configured; the service then answers with a maintenance
// message instead of failing requests. notifier may be nil in tests.
func NewChatService(responder agent.Responder, locations LocationService, orders repository.OrderRepository, audit repository.AuditRepository, txManager repository.TransactionManager, notifier OrderNotifier) ChatService {
	return &chatService{
		responder: responder,
		locations: locations,
		orders:    orders,
		audit:     audit,
		txManager: txManager,
		notifier:  notifier,
	}
}

func (s *chatService) Chat(ctx context.Context, lang string, user *model.User, req ChatRequest) (*ChatResponse, error) {
	if s.responder == nil {
		return &ChatResponse{Reply: i18n.T(lang, "ai_unavailable")}, nil
	}

	allowed, err := s.locations.ListForUser(ctx, user)
	if err != nil {
		return nil, err
	}
	allowedNames := make([]string, 0, len(allowed))
	for _, loc := range allowed {
		allowedNames = append(allowedNames, loc.Name)
	}

	history := append(append([]string{}, req.History...), CustomerPrefix+strings.TrimSpace(req.Message))
	customer := agent.CustomerProfile{Name: user.Name, Phone: user.Phone}

	reply, err := s.responder.Reply(ctx, history, customer, allowedNames)
	if err != nil {
		log.Printf("assistant reply failed for user %s: %v", user.Code, err)
		return &ChatResponse{Reply: i18n.T(lang, "ai_error")}, nil
	}

	// The data block is machine payload; the customer only ever sees the
	// stripped reply, including when the capture is rejected.
	summary := agent.StripOrderBlock(reply)

	order := agent.ExtractOrder(reply, allowedNames)
	if order == nil {
		return &ChatResponse{Reply: summary}, nil
	}

	saved, err := s.captureOrder(ctx, user, order, summary)
	if err != nil {
		log.Printf("order capture failed for user %s: %v", user.Code, err)
		return &ChatResponse{Reply: summary + "\n\n" + i18n.T(lang, "order_failed")}, nil
	}

	if s.notifier != nil {
		s.notifier.NotifyOrderCaptured(saved)
	}

	return &ChatResponse{
		Reply:       summary + "\n\n" + i18n.T(lang, "order_saved"),
		OrderPlaced: true,
	}, nil
}

func (s *chatService) captureOrder(ctx context.Context, user *model.User, order *agent.Order, summary string) (*model.Order, error) {
	items := make([]model.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, model.OrderItem{
			Category: item.Category,
			Product:  item.Product,
			Spec1:    item.Spec1,
			Spec2:    item.Spec2,
			Spec3:    item.Spec3,
			Quantity: parseQuantity(item.Quantity),
			Unit:     item.Unit,
		})
	}

	saved := &model.Order{
		UserID:       user.ID,
		CustomerName: user.Name,
		Phone:        user.Phone,
		LocationName: order.Location,
		Summary:      summary,
		Items:        items,
	}

	// Order row and its audit entry commit together or not at all.
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.orders.Create(txCtx, saved); err != nil {
			return err
		}
		entry := &model.AuditLog{
			ActorID:    &user.ID,
			Action:     model.ActionCaptureOrder,
			EntityID:   saved.ID.String(),
			EntityName: user.Name,
			Details:    "location=" + order.Location,
		}
		return s.audit.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

var (
	quantityPattern = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)?`)
	arabicDigits    = strings.NewReplacer(
		"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
		"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	)
)

// parseQuantity pulls a numeric quantity out of the free text the assistant
// emits. Unparseable quantities default to one unit rather than dropping the
// line from the order.
func parseQuantity(raw string) decimal.Decimal {
	normalized := arabicDigits.Replace(raw)
	match := quantityPattern.FindString(normalized)
	if match == "" {
		return decimal.NewFromInt(1)
	}
	match = strings.ReplaceAll(match, ",", ".")
	qty, err := decimal.NewFromString(match)
	if err != nil || qty.IsZero() {
		return decimal.NewFromInt(1)
	}
	return qty
}
