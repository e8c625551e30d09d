package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddebortoli/darwin-ia-challenge/models"
)

type fakeBot struct {
	sent    []tgbotapi.MessageConfig
	sendErr error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeBot) GetWebhookInfo() (tgbotapi.WebhookInfo, error) {
	return tgbotapi.WebhookInfo{URL: "https://example.com/webhook"}, nil
}

func (f *fakeBot) GetMe() (tgbotapi.User, error) {
	return tgbotapi.User{ID: 1, UserName: "expense_bot"}, nil
}

type fakeProcessor struct {
	lastUserID string
	lastText   string
	calls      int
	resp       *models.ProcessResponse
	err        error
}

func (f *fakeProcessor) ProcessExpense(ctx context.Context, externalUserID, text string) (*models.ProcessResponse, error) {
	f.calls++
	f.lastUserID = externalUserID
	f.lastText = text
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newTestRelay(bot *fakeBot, processor *fakeProcessor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewRelay(bot, processor).RegisterRoutes(router)
	return router
}

func textUpdate(userID, chatID int64, text string) []byte {
	body := fmt.Sprintf(`{
		"update_id": 1,
		"message": {
			"message_id": 10,
			"from": {"id": %d, "is_bot": false, "first_name": "Test"},
			"chat": {"id": %d, "type": "private"},
			"date": 0,
			"text": %q
		}
	}`, userID, chatID, text)
	return []byte(body)
}

func postWebhook(router *gin.Engine, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWebhookForwardsAndReplies(t *testing.T) {
	bot := &fakeBot{}
	processor := &fakeProcessor{resp: &models.ProcessResponse{Success: true, Message: "Food expense added ✅"}}
	router := newTestRelay(bot, processor)

	w := postWebhook(router, textUpdate(42, 99, "Pizza 20 bucks"))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1, processor.calls)
	assert.Equal(t, "42", processor.lastUserID)
	assert.Equal(t, "Pizza 20 bucks", processor.lastText)

	require.Len(t, bot.sent, 1)
	assert.Equal(t, int64(99), bot.sent[0].ChatID)
	assert.Equal(t, "Food expense added ✅", bot.sent[0].Text)
}

func TestWebhookIgnoresNonTextUpdates(t *testing.T) {
	bot := &fakeBot{}
	processor := &fakeProcessor{}
	router := newTestRelay(bot, processor)

	w := postWebhook(router, []byte(`{"update_id": 2}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, processor.calls)
	assert.Empty(t, bot.sent)
}

func TestWebhookIgnoresMessageWithoutChat(t *testing.T) {
	bot := &fakeBot{}
	processor := &fakeProcessor{}
	router := newTestRelay(bot, processor)

	// A crafted update can carry a text message with no chat object; it must
	// be acknowledged and dropped, not dereferenced.
	w := postWebhook(router, []byte(`{"update_id": 3, "message": {"message_id": 10, "from": {"id": 42, "is_bot": false, "first_name": "Test"}, "date": 0, "text": "Pizza 20 bucks"}}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, processor.calls)
	assert.Empty(t, bot.sent)
}

func TestWebhookReportsDeliveryFailure(t *testing.T) {
	bot := &fakeBot{}
	processor := &fakeProcessor{err: ErrDeliveryFailure}
	router := newTestRelay(bot, processor)

	w := postWebhook(router, textUpdate(42, 99, "Pizza 20 bucks"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, bot.sent)
}

func TestWebhookReportsReplySendFailure(t *testing.T) {
	bot := &fakeBot{sendErr: errors.New("telegram down")}
	processor := &fakeProcessor{resp: &models.ProcessResponse{Success: false, Message: "Message does not appear to be an expense"}}
	router := newTestRelay(bot, processor)

	w := postWebhook(router, textUpdate(42, 99, "hello"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestForwarderSendsHeaders(t *testing.T) {
	var gotAPIKey, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("X-API-Key")
		gotRequestID = r.Header.Get("X-Request-ID")

		var req models.ProcessRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "42", req.ExternalUserID)

		json.NewEncoder(w).Encode(models.ProcessResponse{Success: true, Message: "ok"})
	}))
	defer server.Close()

	f := NewForwarder(server.URL, "secret", 0)
	resp, err := f.ProcessExpense(context.Background(), "42", "Pizza 20 bucks")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "secret", gotAPIKey)
	assert.NotEmpty(t, gotRequestID)
}

func TestForwarderReportsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := NewForwarder(server.URL, "", 0)
	_, err := f.ProcessExpense(context.Background(), "42", "Pizza 20 bucks")
	assert.ErrorIs(t, err, ErrDeliveryFailure)
}

func TestForwarderReportsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	f := NewForwarder(server.URL, "", 0)
	_, err := f.ProcessExpense(context.Background(), "42", "Pizza 20 bucks")
	assert.ErrorIs(t, err, ErrDeliveryFailure)
}

func TestManagementEndpoints(t *testing.T) {
	bot := &fakeBot{}
	router := newTestRelay(bot, &fakeProcessor{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bot-info", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "expense_bot")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/webhook-info", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://example.com/webhook")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/set-webhook?webhook_url=https://example.com/webhook", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/delete-webhook", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
