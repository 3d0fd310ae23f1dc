package notifications

import (
	"context"
	"errors"
	"testing"

	"resep/internal/services"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Welcome(ctx context.Context, evt UserRegistered) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func TestHandleUserRegistered(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Welcome", mock.Anything, UserRegistered{UserID: "u1", Email: "test@test.com", Name: "Test"}).Return(nil).Once()

	h := NewHandler(notifier, nil)
	err := h.Handle(context.Background(), services.EventUserRegistered,
		[]byte(`{"user_id":"u1","email":"test@test.com","name":"Test"}`))

	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestHandleRejectsMalformedPayload(t *testing.T) {
	notifier := new(MockNotifier)
	h := NewHandler(notifier, nil)

	err := h.Handle(context.Background(), services.EventUserRegistered, []byte(`{not json`))
	assert.Error(t, err)

	err = h.Handle(context.Background(), services.EventUserRegistered, []byte(`{"user_id":"u1"}`))
	assert.Error(t, err)

	notifier.AssertNotCalled(t, "Welcome", mock.Anything, mock.Anything)
}

func TestHandleNotifierFailure(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Welcome", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	h := NewHandler(notifier, nil)
	err := h.Handle(context.Background(), services.EventUserRegistered, []byte(`{"user_id":"u1","email":"a@b.c"}`))

	assert.ErrorContains(t, err, "smtp down")
}

func TestHandleOtherEvents(t *testing.T) {
	notifier := new(MockNotifier)
	h := NewHandler(notifier, nil)

	assert.NoError(t, h.Handle(context.Background(), services.EventRecipeCreated, []byte(`{"recipe_id":1,"owner_id":"u1","name":"Soup"}`)))
	assert.NoError(t, h.Handle(context.Background(), "order.created", []byte(`anything`)))
	notifier.AssertNotCalled(t, "Welcome", mock.Anything, mock.Anything)
}

func TestDeliveryUsesRoutingKey(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Welcome", mock.Anything, mock.Anything).Return(nil).Once()

	h := NewHandler(notifier, nil)
	handle := h.Delivery(context.Background())
	err := handle(amqp.Delivery{
		RoutingKey: services.EventUserRegistered,
		Body:       []byte(`{"user_id":"u2","email":"b@c.d"}`),
	})

	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, NewLogNotifier(nil).Welcome(context.Background(), UserRegistered{UserID: "u1", Email: "a@b.c"}))
}
