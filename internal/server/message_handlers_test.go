package server

import (
	"context"
	"fmt"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"warbler/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMessage(t *testing.T) {
	app, srv := newTestServer(t)
	user := signupUser(t, srv, "testuser")
	cookie := login(t, app, "testuser", "password")

	resp := postForm(t, app, "/messages/new", cookie, url.Values{"text": {"Hello"}})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/users/%d", user.ID), resp.Header.Get(fiber.HeaderLocation))

	_, body := getPage(t, app, fmt.Sprintf("/users/%d", user.ID), cookie)
	assert.Contains(t, body, "Hello")
}

func TestAddMessageAnonymous(t *testing.T) {
	app, _ := newTestServer(t)

	resp := postForm(t, app, "/messages/new", "", url.Values{"text": {"Hello"}})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	// Following the redirect surfaces the flash.
	_, body := getPage(t, app, "/", sessionCookie(resp))
	assert.Contains(t, body, "Access unauthorized.")
}

func TestAddMessageTooLong(t *testing.T) {
	app, srv := newTestServer(t)
	signupUser(t, srv, "testuser")
	cookie := login(t, app, "testuser", "password")

	resp := postForm(t, app, "/messages/new", cookie, url.Values{
		"text": {strings.Repeat("x", 141)},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/messages/new", resp.Header.Get(fiber.HeaderLocation))

	_, body := getPage(t, app, "/messages/new", cookie)
	assert.Contains(t, body, "Text too long")
}

func TestAddMessageWithBearerToken(t *testing.T) {
	app, srv := newTestServer(t)
	user := signupUser(t, srv, "testuser")

	token, err := srv.authService.IssueToken(user)
	require.NoError(t, err)

	form := url.Values{"text": {"via token"}}
	req := httptest.NewRequest(fiber.MethodPost, "/messages/new", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/users/%d", user.ID), resp.Header.Get(fiber.HeaderLocation))
}

func TestAddMessageWithTokenForMissingUser(t *testing.T) {
	app, _ := newTestServer(t)

	// A well-signed token whose subject does not exist stays anonymous.
	token, err := middleware.GenerateToken("test-secret", 99222224, "ghost")
	require.NoError(t, err)

	form := url.Values{"text": {"Hello"}}
	req := httptest.NewRequest(fiber.MethodPost, "/messages/new", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
}

func TestShowMessage(t *testing.T) {
	app, srv := newTestServer(t)
	user := signupUser(t, srv, "testuser")
	msg, err := srv.messageService.CreateMessage(context.Background(), user.ID, "visible")
	require.NoError(t, err)

	resp, body := getPage(t, app, fmt.Sprintf("/messages/%d", msg.ID), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "visible")
	assert.Contains(t, body, "@testuser")
}

func TestShowMessageNotFound(t *testing.T) {
	app, _ := newTestServer(t)

	resp, body := getPage(t, app, "/messages/99999999", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page not found")

	resp, _ = getPage(t, app, "/messages/not-a-number", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteMessageAsOwner(t *testing.T) {
	app, srv := newTestServer(t)
	user := signupUser(t, srv, "testuser")
	msg, err := srv.messageService.CreateMessage(context.Background(), user.ID, "doomed")
	require.NoError(t, err)

	cookie := login(t, app, "testuser", "password")
	resp := postForm(t, app, fmt.Sprintf("/messages/%d/delete", msg.ID), cookie, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp, _ = getPage(t, app, fmt.Sprintf("/messages/%d", msg.ID), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "deleted message must be gone")
}

func TestDeleteMessageAsOtherUser(t *testing.T) {
	app, srv := newTestServer(t)
	owner := signupUser(t, srv, "owner")
	signupUser(t, srv, "intruder")
	msg, err := srv.messageService.CreateMessage(context.Background(), owner.ID, "protected")
	require.NoError(t, err)

	cookie := login(t, app, "intruder", "password")
	resp := postForm(t, app, fmt.Sprintf("/messages/%d/delete", msg.ID), cookie, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	_, body := getPage(t, app, "/", cookie)
	assert.Contains(t, body, "Access unauthorized.")

	// The message survives.
	resp, _ = getPage(t, app, fmt.Sprintf("/messages/%d", msg.ID), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDeleteMessageAnonymous(t *testing.T) {
	app, srv := newTestServer(t)
	owner := signupUser(t, srv, "owner")
	msg, err := srv.messageService.CreateMessage(context.Background(), owner.ID, "protected")
	require.NoError(t, err)

	resp := postForm(t, app, fmt.Sprintf("/messages/%d/delete", msg.ID), "", nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	resp, _ = getPage(t, app, fmt.Sprintf("/messages/%d", msg.ID), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestToggleLikeViaHTTP(t *testing.T) {
	app, srv := newTestServer(t)
	author := signupUser(t, srv, "author")
	signupUser(t, srv, "fan")
	msg, err := srv.messageService.CreateMessage(context.Background(), author.ID, "likeable")
	require.NoError(t, err)

	cookie := login(t, app, "fan", "password")
	path := fmt.Sprintf("/messages/%d/like", msg.ID)

	resp := postForm(t, app, path, cookie, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	_, body := getPage(t, app, fmt.Sprintf("/messages/%d", msg.ID), cookie)
	assert.Contains(t, body, "1 likes")
	assert.Contains(t, body, "Unlike")

	// Second toggle removes the like.
	resp = postForm(t, app, path, cookie, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	_, body = getPage(t, app, fmt.Sprintf("/messages/%d", msg.ID), cookie)
	assert.Contains(t, body, "0 likes")
}

func TestLikeOwnMessageRejected(t *testing.T) {
	app, srv := newTestServer(t)
	author := signupUser(t, srv, "author")
	msg, err := srv.messageService.CreateMessage(context.Background(), author.ID, "self-love")
	require.NoError(t, err)

	cookie := login(t, app, "author", "password")
	resp := postForm(t, app, fmt.Sprintf("/messages/%d/like", msg.ID), cookie, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	_, body := getPage(t, app, "/", cookie)
	assert.Contains(t, body, "Access unauthorized.")
}

func TestLikeAnonymous(t *testing.T) {
	app, srv := newTestServer(t)
	author := signupUser(t, srv, "author")
	msg, err := srv.messageService.CreateMessage(context.Background(), author.ID, "likeable")
	require.NoError(t, err)

	resp := postForm(t, app, fmt.Sprintf("/messages/%d/like", msg.ID), "", nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
}
