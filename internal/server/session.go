package server

import (
	"warbler/internal/middleware"
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CurrentUserKey is the session attribute holding the logged-in user's id.
// Its absence means the request is anonymous.
const CurrentUserKey = "curr_user"

const flashKey = "flashes"

// loginSession stores the user id in the session.
func (s *Server) loginSession(c *fiber.Ctx, userID uint) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set(CurrentUserKey, userID)
	return sess.Save()
}

// logoutSession destroys the session.
func (s *Server) logoutSession(c *fiber.Ctx) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// flash queues a one-shot message shown on the next rendered page.
func (s *Server) flash(c *fiber.Ctx, message string) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return
	}
	flashes, _ := sess.Get(flashKey).([]string)
	flashes = append(flashes, message)
	sess.Set(flashKey, flashes)
	_ = sess.Save()
}

// popFlashes returns and clears the queued flash messages.
func (s *Server) popFlashes(c *fiber.Ctx) []string {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return nil
	}
	flashes, _ := sess.Get(flashKey).([]string)
	if len(flashes) > 0 {
		sess.Delete(flashKey)
		_ = sess.Save()
	}
	return flashes
}

// LoadCurrentUser resolves the acting user from the session, falling back to
// a bearer token, and stores it in Fiber locals. A session pointing at a user
// that no longer exists is dropped and the request stays anonymous.
func (s *Server) LoadCurrentUser(c *fiber.Ctx) error {
	if sess, err := s.sessions.Get(c); err == nil {
		if id, ok := sess.Get(CurrentUserKey).(uint); ok && id != 0 {
			user, err := s.userRepo.GetByID(c.UserContext(), id)
			if err == nil {
				s.setCurrentUser(c, user)
				return c.Next()
			}
			if models.IsCode(err, models.CodeNotFound) {
				sess.Delete(CurrentUserKey)
				_ = sess.Save()
			}
		}
	}

	if id, ok := middleware.UserIDFromBearer(c, s.config.JWTSecret); ok {
		if user, err := s.userRepo.GetByID(c.UserContext(), id); err == nil {
			s.setCurrentUser(c, user)
		}
	}

	return c.Next()
}

func (s *Server) setCurrentUser(c *fiber.Ctx, user *models.User) {
	c.Locals("userID", user.ID)
	c.Locals("currentUser", user)
}

// currentUser returns the acting user, or nil for anonymous requests.
func (s *Server) currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("currentUser").(*models.User)
	return user
}

// currentUserID returns the acting user's id, or 0 for anonymous requests.
func (s *Server) currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// RequireAuth gates mutating routes: anonymous requests are flashed
// "Access unauthorized." and redirected home without touching any state.
func (s *Server) RequireAuth(c *fiber.Ctx) error {
	if s.currentUserID(c) == 0 {
		return s.accessUnauthorized(c)
	}
	return c.Next()
}

// accessUnauthorized is the uniform outcome for unauthorized attempts.
func (s *Server) accessUnauthorized(c *fiber.Ctx) error {
	s.flash(c, "Access unauthorized.")
	return c.Redirect("/", fiber.StatusFound)
}
