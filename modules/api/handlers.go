package api

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	domain "github.com/example/songvault/domain/user"
	"github.com/example/songvault/modules/auth"
	"github.com/example/songvault/modules/songs"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authPort  auth.AuthPort
	songsPort songs.SongsPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, songsPort songs.SongsPort) *Handlers {
	return &Handlers{
		authPort:  authPort,
		songsPort: songsPort,
	}
}

// Token handles POST /token: an OAuth2-style password grant taking form
// fields username and password, where username carries the email.
func (h *Handlers) Token(c *fiber.Ctx) error {
	email := c.FormValue("username")
	password := c.FormValue("password")

	if email == "" || password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "username and password form fields are required",
		})
	}

	token, err := h.authPort.Login(c.UserContext(), email, password)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn,
	})
}

// Register handles POST /users.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Email and password are required",
		})
	}

	user, token, err := h.authPort.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(RegisterResponse{
		ID:          user.ID,
		Email:       user.Email,
		CreatedAt:   user.CreatedAt,
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn,
	})
}

// Profile handles GET /users/me/. The middleware has already resolved the
// token to a user.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}

// CreateSong handles POST /songs.
func (h *Handlers) CreateSong(c *fiber.Ctx) error {
	token, ok := c.Locals(TokenContextKey).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	var req SongRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	song, err := h.songsPort.Create(c.UserContext(), token, req.Name, req.Artist, req.Year)
	if err != nil {
		return h.handleSongError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toSongResponse(song))
}

// ListSongs handles GET /songs.
func (h *Handlers) ListSongs(c *fiber.Ctx) error {
	token, ok := c.Locals(TokenContextKey).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	list, err := h.songsPort.List(c.UserContext(), token)
	if err != nil {
		return h.handleSongError(c, err)
	}

	response := make([]SongResponse, 0, len(list.Songs))
	for i := range list.Songs {
		response = append(response, toSongResponse(&list.Songs[i]))
	}
	return c.Status(fiber.StatusOK).JSON(response)
}

// GetSong handles GET /songs/:id.
func (h *Handlers) GetSong(c *fiber.Ctx) error {
	token, ok := c.Locals(TokenContextKey).(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	song, err := h.songsPort.Get(c.UserContext(), token, c.Params("id"))
	if err != nil {
		return h.handleSongError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toSongResponse(song))
}

// handleAuthError maps auth failures to responses. Error text is the
// contract across the service container, so matching is by message.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid email or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid email or password",
		})
	case strings.Contains(errStr, "user with this email already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "User with this email already exists",
		})
	case strings.Contains(errStr, "invalid email format"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid email format",
		})
	case strings.Contains(errStr, "password must be at least"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Password must be at least 8 characters",
		})
	default:
		// Log the actual error but don't expose it to the client
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// handleSongError maps song operation failures to responses.
func (h *Handlers) handleSongError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "could not validate credentials"),
		strings.Contains(errStr, "token has expired"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Could not validate credentials",
		})
	case strings.Contains(errStr, "record not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Song not found",
		})
	case strings.Contains(errStr, "song name is required"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Song name is required",
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// toSongResponse converts the songs module response to the API shape.
func toSongResponse(s *songs.SongResponse) SongResponse {
	return SongResponse{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		Name:      s.Name,
		Artist:    s.Artist,
		Year:      s.Year,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
