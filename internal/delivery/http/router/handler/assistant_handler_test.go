package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"plaza/internal/delivery/http/response"
	"plaza/internal/usecase/impl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decodeJSON[T any](t *testing.T, body []byte) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))

	return out
}

func TestAssistantHandler_Chat(t *testing.T) {
	app := newTestApp(t)
	b, _ := app.signUp(t, "neo_runner")

	app.generator.EXPECT().
		GenerateText(mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "neo_runner") && strings.Contains(prompt, "where is the shop")
		})).
		Return("Take the neon alley left.", nil).
		Once()

	rec := b.postJSON("/ai-chat", `{"message":"where is the shop"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Take the neon alley left.", decodeJSON[response.ChatBody](t, rec.Body.Bytes()).Response)
}

func TestAssistantHandler_ChatRemoteFailureStillAnswers(t *testing.T) {
	app := newTestApp(t)
	b, _ := app.signUp(t, "neo_runner")

	app.generator.EXPECT().
		GenerateText(mock.Anything, mock.Anything).
		Return("", errors.New("quota exceeded")).
		Once()

	rec := b.postJSON("/ai-chat", `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(decodeJSON[response.ChatBody](t, rec.Body.Bytes()).Response, impl.DegradedReplyPrefix))
}

func TestAssistantHandler_ChatRejectsBadInput(t *testing.T) {
	app := newTestApp(t)
	b, _ := app.signUp(t, "neo_runner")

	rec := b.postJSON("/ai-chat", `{"message":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decodeJSON[response.ErrorBody](t, rec.Body.Bytes()).Error)

	rec = b.postJSON("/ai-chat", `{"message":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_JSON", decodeJSON[response.ErrorBody](t, rec.Body.Bytes()).Code)

	app.generator.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func TestAssistantHandler_ChatRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	b := app.newBrowser()

	rec := b.postJSON("/ai-chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "請先登入", decodeJSON[response.ErrorBody](t, rec.Body.Bytes()).Error)
}

func TestAssistantHandler_ChatOnlyAcceptsPost(t *testing.T) {
	app := newTestApp(t)
	b, _ := app.signUp(t, "neo_runner")

	rec := b.get("/ai-chat")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.NotEmpty(t, decodeJSON[response.ErrorBody](t, rec.Body.Bytes()).Error)
}

func TestAssistantHandler_Page(t *testing.T) {
	app := newTestApp(t)
	b, _ := app.signUp(t, "neo_runner")

	rec := b.get("/ai-assistant")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/ai-chat")
}
