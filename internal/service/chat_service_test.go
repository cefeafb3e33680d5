package service

import (
	"context"
	"errors"
	"testing"

	"github.com/abdalla1234567890/chatbot/internal/i18n"
	"github.com/abdalla1234567890/chatbot/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderReply = `تمام يا عميل ✅

📦 ملخص طلبك هنا.

###DATA_START###
ITEMS:
كهرباء|سلك|2 ملم|-|-|5|لفة
CUSTOMER:
العنوان: الرياض
###DATA_END###`

type recordingNotifier struct {
	captured []*model.Order
}

func (n *recordingNotifier) NotifyOrderCaptured(order *model.Order) {
	n.captured = append(n.captured, order)
}

type chatFixture struct {
	users     *fakeUserRepo
	locations *fakeLocationRepo
	orders    *fakeOrderRepo
	audit     *fakeAuditRepo
	tx        *fakeTxManager
	responder *fakeResponder
	notifier  *recordingNotifier
	svc       ChatService
	user      *model.User
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	f := &chatFixture{
		users:     &fakeUserRepo{},
		locations: &fakeLocationRepo{},
		orders:    &fakeOrderRepo{},
		audit:     &fakeAuditRepo{},
		tx:        &fakeTxManager{},
		responder: &fakeResponder{},
		notifier:  &recordingNotifier{},
	}
	locationSvc := NewLocationService(f.locations, f.users, f.audit)
	f.svc = NewChatService(f.responder, locationSvc, f.orders, f.audit, f.tx, f.notifier)
	f.user = seedUser(f.users, "cust0001", "عميل", 0)
	_ = f.locations.Create(context.Background(), &model.Location{Name: "الرياض"})
	_ = f.locations.Create(context.Background(), &model.Location{Name: "جدة"})
	return f
}

func TestChatPlainReply(t *testing.T) {
	f := newChatFixture(t)
	f.responder.reply = "أبشر، كم لفة تحتاج؟"

	resp, err := f.svc.Chat(context.Background(), "ar", f.user, ChatRequest{Message: "أبغى سلك"})
	require.NoError(t, err)

	assert.Equal(t, "أبشر، كم لفة تحتاج؟", resp.Reply)
	assert.False(t, resp.OrderPlaced)
	assert.Empty(t, f.orders.orders)

	// The customer turn is appended with its prefix before the model runs.
	require.NotEmpty(t, f.responder.gotHistory)
	assert.Equal(t, CustomerPrefix+"أبغى سلك", f.responder.gotHistory[len(f.responder.gotHistory)-1])
	assert.Equal(t, "عميل", f.responder.gotCustomer.Name)
	assert.ElementsMatch(t, []string{"الرياض", "جدة"}, f.responder.gotAllowed)
}

func TestChatPreservesClientHistory(t *testing.T) {
	f := newChatFixture(t)
	f.responder.reply = "تمام"

	history := []string{CustomerPrefix + "مرحبا", SellerPrefix + "هلا بك"}
	_, err := f.svc.Chat(context.Background(), "ar", f.user, ChatRequest{Message: "أبغى أسمنت", History: history})
	require.NoError(t, err)

	require.Len(t, f.responder.gotHistory, 3)
	assert.Equal(t, history[0], f.responder.gotHistory[0])
	assert.Equal(t, history[1], f.responder.gotHistory[1])
	// The caller's slice is not mutated.
	assert.Len(t, history, 2)
}

func TestChatCapturesOrder(t *testing.T) {
	f := newChatFixture(t)
	f.responder.reply = orderReply

	resp, err := f.svc.Chat(context.Background(), "ar", f.user, ChatRequest{Message: "تم"})
	require.NoError(t, err)

	assert.True(t, resp.OrderPlaced)
	assert.NotContains(t, resp.Reply, "###DATA_START###")
	assert.Contains(t, resp.Reply, i18n.T("ar", "order_saved"))

	require.Len(t, f.orders.orders, 1)
	order := f.orders.orders[0]
	assert.Equal(t, f.user.ID, order.UserID)
	assert.Equal(t, "عميل", order.CustomerName)
	assert.Equal(t, "الرياض", order.LocationName)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].Quantity.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "لفة", order.Items[0].Unit)

	require.Len(t, f.notifier.captured, 1)
	assert.Equal(t, order.ID, f.notifier.captured[0].ID)

	var actions []string
	for _, e := range f.audit.entries {
		actions = append(actions, e.Action)
	}
	assert.Contains(t, actions, model.ActionCaptureOrder)

	// Order and audit entry were written inside one transaction.
	assert.Equal(t, 1, f.tx.runs)
}

func TestChatOrderOutsideAllowedLocationsNotCaptured(t *testing.T) {
	f := newChatFixture(t)
	// Restrict the user to جدة only; the reply confirms الرياض.
	require.NoError(t, f.locations.AddForUser(context.Background(), f.user.ID, 2))
	f.responder.reply = orderReply

	resp, err := f.svc.Chat(context.Background(), "ar", f.user, ChatRequest{Message: "تم"})
	require.NoError(t, err)

	assert.False(t, resp.OrderPlaced)
	assert.Empty(t, f.orders.orders)

	// Even a rejected data block never reaches the customer.
	assert.NotContains(t, resp.Reply, "###DATA_START###")
	assert.NotContains(t, resp.Reply, "###DATA_END###")
	assert.Contains(t, resp.Reply, "ملخص طلبك")
}

func TestChatResponderErrorBecomesLocalizedReply(t *testing.T) {
	f := newChatFixture(t)
	f.responder.err = errors.New("quota exceeded")

	resp, err := f.svc.Chat(context.Background(), "ar", f.user, ChatRequest{Message: "هلا"})
	require.NoError(t, err)
	assert.Equal(t, i18n.T("ar", "ai_error"), resp.Reply)
	assert.False(t, resp.OrderPlaced)
}

func TestChatNilResponder(t *testing.T) {
	f := newChatFixture(t)
	svc := NewChatService(nil, NewLocationService(f.locations, f.users, f.audit), f.orders, f.audit, f.tx, nil)

	resp, err := svc.Chat(context.Background(), "en", f.user, ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, i18n.T("en", "ai_unavailable"), resp.Reply)
}

func TestChatOrderPersistFailure(t *testing.T) {
	f := newChatFixture(t)
	f.responder.reply = orderReply
	f.orders.err = errors.New("disk full")

	resp, err := f.svc.Chat(context.Background(), "ar", f.user, ChatRequest{Message: "تم"})
	require.NoError(t, err)

	assert.False(t, resp.OrderPlaced)
	assert.Contains(t, resp.Reply, i18n.T("ar", "order_failed"))
	assert.Empty(t, f.notifier.captured)
}

func TestChatOrderCommitFailureReportsFailure(t *testing.T) {
	f := newChatFixture(t)
	f.responder.reply = orderReply
	f.tx.err = errors.New("commit failed")

	resp, err := f.svc.Chat(context.Background(), "ar", f.user, ChatRequest{Message: "تم"})
	require.NoError(t, err)

	assert.False(t, resp.OrderPlaced)
	assert.Contains(t, resp.Reply, i18n.T("ar", "order_failed"))
	assert.Empty(t, f.notifier.captured)
}

func TestParseQuantity(t *testing.T) {
	cases := map[string]string{
		"5":      "5",
		"2.5":    "2.5",
		"3,5":    "3.5",
		"٧":      "7",
		"10 حبة": "10",
		"كثير":   "1",
		"":       "1",
		"0":      "1",
	}
	for raw, want := range cases {
		got := parseQuantity(raw)
		expected, err := decimal.NewFromString(want)
		require.NoError(t, err)
		assert.Truef(t, got.Equal(expected), "parseQuantity(%q) = %s, want %s", raw, got, expected)
	}
}
