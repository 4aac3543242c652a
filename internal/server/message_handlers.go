package server

import (
	"fmt"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// NewMessagePage handles GET /messages/new.
func (s *Server) NewMessagePage(c *fiber.Ctx) error {
	return s.render(c, "message_new.html", nil)
}

// CreateMessage handles POST /messages/new: creates a message for the acting
// user and redirects to their profile.
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	actorID := s.currentUserID(c)

	_, err := s.messageService.CreateMessage(c.UserContext(), actorID, c.FormValue("text"))
	if err != nil {
		if models.IsCode(err, models.CodeValidation) {
			s.flash(c, err.(*models.AppError).Message)
			return c.Redirect("/messages/new", fiber.StatusFound)
		}
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Redirect(fmt.Sprintf("/users/%d", actorID), fiber.StatusFound)
}

// ShowMessage handles GET /messages/:id. Unknown ids render 404.
func (s *Server) ShowMessage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}

	message, err := s.messageService.GetMessage(c.UserContext(), id)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return s.notFound(c)
		}
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	var liked bool
	if actorID := s.currentUserID(c); actorID != 0 {
		liked, err = s.likeService.HasLiked(c.UserContext(), actorID, id)
		if err != nil {
			return models.RespondWithError(c, models.StatusForError(err), err)
		}
	}

	return s.render(c, "message.html", fiber.Map{
		"Message": message,
		"Liked":   liked,
	})
}

// DeleteMessage handles POST /messages/:id/delete. Only the owner may delete;
// anyone else gets the uniform unauthorized outcome and the message survives.
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}

	actorID := s.currentUserID(c)
	if err := s.messageService.DeleteMessage(c.UserContext(), actorID, id); err != nil {
		switch {
		case models.IsCode(err, models.CodeNotFound):
			return s.notFound(c)
		case models.IsCode(err, models.CodeUnauthorized):
			return s.accessUnauthorized(c)
		default:
			return models.RespondWithError(c, models.StatusForError(err), err)
		}
	}

	return c.Redirect(fmt.Sprintf("/users/%d", actorID), fiber.StatusFound)
}

// ToggleLike handles POST /messages/:id/like: like if unliked, unlike if
// liked. Liking your own message is refused.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.notFound(c)
	}

	if _, err := s.likeService.ToggleLike(c.UserContext(), s.currentUserID(c), id); err != nil {
		switch {
		case models.IsCode(err, models.CodeNotFound):
			return s.notFound(c)
		case models.IsCode(err, models.CodeValidation):
			return s.accessUnauthorized(c)
		default:
			return models.RespondWithError(c, models.StatusForError(err), err)
		}
	}

	if ref := c.Get(fiber.HeaderReferer); ref != "" {
		return c.Redirect(ref, fiber.StatusFound)
	}
	return c.Redirect("/", fiber.StatusFound)
}
