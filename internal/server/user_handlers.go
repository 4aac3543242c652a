package server

import (
	"context"
	"fmt"

	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /users and GET /users?q=: lists users, optionally
// filtered by a username substring.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	query := c.Query("q")

	users, err := s.userService.SearchUsers(c.UserContext(), query, 100, 0)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return s.render(c, "users.html", fiber.Map{
		"Users": users,
		"Query": query,
	})
}

// ShowUser handles GET /users/:id: the profile page with its four counters
// (messages, followers, following, likes) and the user's latest messages.
func (s *Server) ShowUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}

	profile, err := s.userService.GetProfile(c.UserContext(), id)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return s.notFound(c)
		}
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	var isFollowing bool
	if actorID := s.currentUserID(c); actorID != 0 && actorID != id {
		isFollowing, err = s.userService.IsFollowing(c.UserContext(), actorID, id)
		if err != nil {
			return models.RespondWithError(c, models.StatusForError(err), err)
		}
	}

	return s.render(c, "profile.html", fiber.Map{
		"Profile":     profile,
		"IsFollowing": isFollowing,
	})
}

// ShowFollowers handles GET /users/:id/followers.
func (s *Server) ShowFollowers(c *fiber.Ctx) error {
	return s.showUserList(c, "Followers", s.followService.Followers)
}

// ShowFollowing handles GET /users/:id/following.
func (s *Server) ShowFollowing(c *fiber.Ctx) error {
	return s.showUserList(c, "Following", s.followService.Following)
}

func (s *Server) showUserList(c *fiber.Ctx, title string, list func(ctx context.Context, userID uint) ([]models.User, error)) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}

	if _, err := s.userRepo.GetByID(c.UserContext(), id); err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return s.notFound(c)
		}
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	users, err := list(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return s.render(c, "user_list.html", fiber.Map{
		"Title": title,
		"Users": users,
	})
}

// ShowLikes handles GET /users/:id/likes: the messages this user has liked.
func (s *Server) ShowLikes(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}

	user, err := s.userRepo.GetByID(c.UserContext(), id)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return s.notFound(c)
		}
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	messages, err := s.likeService.LikedMessages(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return s.render(c, "liked_messages.html", fiber.Map{
		"User":     user,
		"Messages": messages,
	})
}

// EditProfilePage handles GET /users/profile.
func (s *Server) EditProfilePage(c *fiber.Ctx) error {
	return s.render(c, "profile_edit.html", nil)
}

// UpdateProfile handles POST /users/profile: applies the submitted profile
// fields to the acting user and returns to their profile page.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:   s.currentUserID(c),
		Bio:      c.FormValue("bio"),
		Location: c.FormValue("location"),
		ImageURL: c.FormValue("image_url"),
	})
	if err != nil {
		if models.IsCode(err, models.CodeValidation) {
			s.flash(c, err.(*models.AppError).Message)
			return c.Redirect("/users/profile", fiber.StatusFound)
		}
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Redirect(fmt.Sprintf("/users/%d", user.ID), fiber.StatusFound)
}

// FollowUser handles POST /users/follow/:id.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}

	if err := s.followService.Follow(c.UserContext(), s.currentUserID(c), targetID); err != nil {
		switch {
		case models.IsCode(err, models.CodeNotFound):
			return s.notFound(c)
		case models.IsCode(err, models.CodeValidation), models.IsCode(err, models.CodeConflict):
			s.flash(c, err.(*models.AppError).Message)
		default:
			return models.RespondWithError(c, models.StatusForError(err), err)
		}
	}

	return c.Redirect(fmt.Sprintf("/users/%d", targetID), fiber.StatusFound)
}

// StopFollowingUser handles POST /users/stop-following/:id.
func (s *Server) StopFollowingUser(c *fiber.Ctx) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}

	if err := s.followService.Unfollow(c.UserContext(), s.currentUserID(c), targetID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Redirect(fmt.Sprintf("/users/%d", targetID), fiber.StatusFound)
}
