package server

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var statPattern = regexp.MustCompile(`<span class="stat">(\d+)</span>`)

// profileStats scrapes the four counters off a profile page in rendered
// order: messages, followers, following, likes.
func profileStats(t *testing.T, body string) []string {
	t.Helper()
	matches := statPattern.FindAllStringSubmatch(body, -1)
	require.Len(t, matches, 4)
	stats := make([]string, 4)
	for i, m := range matches {
		stats[i] = m[1]
	}
	return stats
}

func TestShowUserProfile(t *testing.T) {
	app, srv := newTestServer(t)
	ctx := context.Background()

	alice := signupUser(t, srv, "alice")
	bob := signupUser(t, srv, "bob")
	carol := signupUser(t, srv, "carol")

	_, err := srv.messageService.CreateMessage(ctx, alice.ID, "first")
	require.NoError(t, err)
	_, err = srv.messageService.CreateMessage(ctx, alice.ID, "second")
	require.NoError(t, err)
	bobMsg, err := srv.messageService.CreateMessage(ctx, bob.ID, "bobs")
	require.NoError(t, err)

	require.NoError(t, srv.followService.Follow(ctx, bob.ID, alice.ID))
	require.NoError(t, srv.followService.Follow(ctx, carol.ID, alice.ID))
	require.NoError(t, srv.followService.Follow(ctx, alice.ID, bob.ID))

	_, err = srv.likeService.ToggleLike(ctx, alice.ID, bobMsg.ID)
	require.NoError(t, err)

	resp, body := getPage(t, app, fmt.Sprintf("/users/%d", alice.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "@alice")
	assert.Contains(t, body, "first")
	assert.Contains(t, body, "second")
	assert.Equal(t, []string{"2", "2", "1", "1"}, profileStats(t, body))
}

func TestShowUserNotFound(t *testing.T) {
	app, _ := newTestServer(t)

	resp, body := getPage(t, app, "/users/99999999", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page not found")
}

func TestListUsersAndSearch(t *testing.T) {
	app, srv := newTestServer(t)
	signupUser(t, srv, "testing")
	signupUser(t, srv, "testuser")
	signupUser(t, srv, "somebody")

	_, body := getPage(t, app, "/users", "")
	assert.Contains(t, body, "@testing")
	assert.Contains(t, body, "@testuser")
	assert.Contains(t, body, "@somebody")

	_, body = getPage(t, app, "/users?q=test", "")
	assert.Contains(t, body, "@testing")
	assert.Contains(t, body, "@testuser")
	assert.NotContains(t, body, "@somebody")

	_, body = getPage(t, app, "/users?q=zzz", "")
	assert.Contains(t, body, "Sorry, no users found")
}

func TestFollowAndStopFollowing(t *testing.T) {
	app, srv := newTestServer(t)
	signupUser(t, srv, "alice")
	bob := signupUser(t, srv, "bob")

	cookie := login(t, app, "alice", "password")

	resp := postForm(t, app, fmt.Sprintf("/users/follow/%d", bob.ID), cookie, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/users/%d", bob.ID), resp.Header.Get(fiber.HeaderLocation))

	_, body := getPage(t, app, fmt.Sprintf("/users/%d", bob.ID), cookie)
	assert.Contains(t, body, "Unfollow", "profile of a followed user offers unfollow")

	_, body = getPage(t, app, fmt.Sprintf("/users/%d/followers", bob.ID), "")
	assert.Contains(t, body, "@alice")

	resp = postForm(t, app, fmt.Sprintf("/users/stop-following/%d", bob.ID), cookie, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	_, body = getPage(t, app, fmt.Sprintf("/users/%d/followers", bob.ID), "")
	assert.NotContains(t, body, "@alice")
}

func TestFollowAnonymous(t *testing.T) {
	app, srv := newTestServer(t)
	bob := signupUser(t, srv, "bob")

	resp := postForm(t, app, fmt.Sprintf("/users/follow/%d", bob.ID), "", nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	_, body := getPage(t, app, "/", sessionCookie(resp))
	assert.Contains(t, body, "Access unauthorized.")
}

func TestFollowSelf(t *testing.T) {
	app, srv := newTestServer(t)
	alice := signupUser(t, srv, "alice")
	cookie := login(t, app, "alice", "password")

	resp := postForm(t, app, fmt.Sprintf("/users/follow/%d", alice.ID), cookie, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	_, body := getPage(t, app, fmt.Sprintf("/users/%d", alice.ID), cookie)
	assert.Contains(t, body, "Cannot follow yourself")
}

func TestShowFollowingPage(t *testing.T) {
	app, srv := newTestServer(t)
	alice := signupUser(t, srv, "alice")
	bob := signupUser(t, srv, "bob")
	require.NoError(t, srv.followService.Follow(context.Background(), alice.ID, bob.ID))

	_, body := getPage(t, app, fmt.Sprintf("/users/%d/following", alice.ID), "")
	assert.Contains(t, body, "Following")
	assert.Contains(t, body, "@bob")

	resp, _ := getPage(t, app, "/users/99999999/following", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEditProfile(t *testing.T) {
	app, srv := newTestServer(t)
	alice := signupUser(t, srv, "alice")
	cookie := login(t, app, "alice", "password")

	resp, body := getPage(t, app, "/users/profile", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Edit Your Profile.")

	resp = postForm(t, app, "/users/profile", cookie, url.Values{
		"bio":      {"warbling"},
		"location": {"the canopy"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/users/%d", alice.ID), resp.Header.Get(fiber.HeaderLocation))

	_, body = getPage(t, app, fmt.Sprintf("/users/%d", alice.ID), cookie)
	assert.Contains(t, body, "warbling")
	assert.Contains(t, body, "the canopy")
}

func TestEditProfileAnonymous(t *testing.T) {
	app, _ := newTestServer(t)

	resp, _ := getPage(t, app, "/users/profile", "")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
}

func TestShowLikesPage(t *testing.T) {
	app, srv := newTestServer(t)
	ctx := context.Background()

	author := signupUser(t, srv, "author")
	fan := signupUser(t, srv, "fan")
	msg, err := srv.messageService.CreateMessage(ctx, author.ID, "well liked")
	require.NoError(t, err)
	_, err = srv.likeService.ToggleLike(ctx, fan.ID, msg.ID)
	require.NoError(t, err)

	resp, body := getPage(t, app, fmt.Sprintf("/users/%d/likes", fan.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Messages liked by @fan")
	assert.Contains(t, body, "well liked")
}
