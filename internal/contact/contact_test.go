package contact

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func validMessage() Message {
	return Message{Name: "Ana", Email: "ana@example.com", Subject: "Order", Category: "order-support", Body: "Where is my order?"}
}

func TestMessage_Validate(t *testing.T) {
	assert.Empty(t, validMessage().Validate())

	m := Message{Name: "   ", Email: "ana@", Category: "spam"}
	errs := m.Validate()
	assert.Equal(t, "name is required", errs["name"])
	assert.Contains(t, errs, "subject")
	assert.Contains(t, errs, "message")
	assert.Equal(t, "email is invalid", errs["email"])
	assert.Contains(t, errs["category"], "must be one of")

	long := validMessage()
	long.Subject = strings.Repeat("x", 201)
	assert.Contains(t, long.Validate(), "subject")
}

func TestMessage_CategoriesMatchTag(t *testing.T) {
	for _, c := range Categories {
		m := validMessage()
		m.Category = c
		assert.Empty(t, m.Validate(), c)
	}
}

func TestService_Submit(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewService(0, zap.New(core))

	m := validMessage()
	m.Name = "  Ana  "
	got, err := svc.Submit(context.Background(), m)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Ana", got.Name)
	assert.False(t, got.ReceivedAt.IsZero())

	_, err = svc.Submit(context.Background(), Message{})
	assert.ErrorIs(t, err, ErrInvalid)

	received := logs.FilterMessage("contact message received").All()
	require.Len(t, received, 1)
	assert.Equal(t, got.ID, received[0].ContextMap()["message_id"])
}

func TestService_SubmitHonoursCancellation(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewService(time.Minute, zap.New(core))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Submit(ctx, validMessage())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, logs.Len())
}

func TestService_SubmitWaitsForDelay(t *testing.T) {
	svc := NewService(20*time.Millisecond, nil)
	start := time.Now()
	_, err := svc.Submit(context.Background(), validMessage())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSubmitRoute(t *testing.T) {
	app := fiber.New()
	NewHandler(NewService(0, nil)).RegisterPublicRoutes(app)

	body := `{"name":"Ana","email":"ana@example.com","subject":"Hi","message":"Hello"}`
	req := httptest.NewRequest("POST", "/api/v1/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)

	req = httptest.NewRequest("POST", "/api/v1/contact", strings.NewReader(`{"name":"Ana","email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	var out struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	assert.Contains(t, out.Errors, "email")
	assert.Contains(t, out.Errors, "subject")
}
