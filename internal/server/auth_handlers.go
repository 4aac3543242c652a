package server

import (
	"fmt"

	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SignupPage handles GET /signup.
func (s *Server) SignupPage(c *fiber.Ctx) error {
	return s.render(c, "signup.html", nil)
}

// Signup handles POST /signup: creates the account and starts a session.
func (s *Server) Signup(c *fiber.Ctx) error {
	in := service.SignupInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		ImageURL: c.FormValue("image_url"),
	}

	user, err := s.authService.Signup(c.UserContext(), in)
	if err != nil {
		if models.IsCode(err, models.CodeConflict) {
			s.flash(c, "Username or email already taken")
		} else if appErr, ok := err.(*models.AppError); ok {
			s.flash(c, appErr.Message)
		} else {
			s.flash(c, "Something went wrong")
		}
		return c.Redirect("/signup", fiber.StatusFound)
	}

	if err := s.loginSession(c, user.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	return c.Redirect("/", fiber.StatusFound)
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return s.render(c, "login.html", nil)
}

// Login handles POST /login.
func (s *Server) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := s.authService.Authenticate(c.UserContext(), username, password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		s.flash(c, "Invalid credentials.")
		return c.Redirect("/login", fiber.StatusFound)
	}

	if err := s.loginSession(c, user.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	s.flash(c, fmt.Sprintf("Hello, %s!", user.Username))
	return c.Redirect("/", fiber.StatusFound)
}

// Logout handles POST /logout.
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.logoutSession(c); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	s.flash(c, "You have successfully logged out.")
	return c.Redirect("/login", fiber.StatusFound)
}

// Home handles GET /: the signed-in feed, or a landing page for anonymous
// visitors. Flash messages queued by other handlers surface here.
func (s *Server) Home(c *fiber.Ctx) error {
	userID := s.currentUserID(c)
	if userID == 0 {
		return s.render(c, "home.html", nil)
	}

	messages, err := s.messageService.HomeFeed(c.UserContext(), userID, 100)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return s.render(c, "home.html", fiber.Map{"Messages": messages})
}
