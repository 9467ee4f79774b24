package handlers

import (
	"errors"
	"fmt"
	"log"

	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for marketplace accounts.
type UserHandler struct {
	service  *services.UserService
	queries  *services.QueryService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, queries *services.QueryService) *UserHandler {
	return &UserHandler{
		service:  service,
		queries:  queries,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/sellers", h.HandleGetSellers)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Post("/new", h.HandleRegisterUser)
	userRoutes.Put("/update/:id", h.HandleUpdateUser)

	router.Post("/checkuser/:uid", h.HandleCheckUser)
	router.Get("/sellers/search/:term", h.HandleSearchSellers)
}

// HandleGetUsers returns all users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
		})
	}
	return c.JSON(users)
}

// HandleGetUser returns a single user.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	user, err := h.service.GetUser(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("User with ID %d not found", id),
			})
		}
		log.Printf("Error getting user %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve user",
		})
	}
	return c.JSON(user)
}

// HandleCheckUser looks a user up by external auth identifier at login.
func (h *UserHandler) HandleCheckUser(c *fiber.Ctx) error {
	uid := c.Params("uid")
	user, err := h.service.CheckUser(uid)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		log.Printf("Error checking user by uid %s: %v", uid, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not check user",
		})
	}
	return c.JSON(user)
}

// HandleRegisterUser creates a new account.
func (h *UserHandler) HandleRegisterUser(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		log.Printf("Error parsing register user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(user); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.service.RegisterUser(&user); err != nil {
		if errors.Is(err, services.ErrInvalidData) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid data submitted",
			})
		}
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UserUpdateRequest represents the editable account fields.
type UserUpdateRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=30"`
	Seller      bool   `json:"seller"`
}

// HandleUpdateUser applies the editable account fields.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	var req UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	user, err := h.service.UpdateUser(id, req.Username, req.Email, req.PhoneNumber, req.Seller)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("User with ID %d not found", id),
			})
		}
		log.Printf("Error updating user %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update user",
		})
	}
	return c.JSON(user)
}

// HandleGetSellers returns all users with the seller flag set.
func (h *UserHandler) HandleGetSellers(c *fiber.Ctx) error {
	sellers, err := h.service.GetSellers()
	if err != nil {
		log.Printf("Error getting sellers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve sellers",
		})
	}
	return c.JSON(sellers)
}

// HandleSearchSellers returns sellers matching the free-text term.
func (h *UserHandler) HandleSearchSellers(c *fiber.Ctx) error {
	sellers, err := h.queries.SearchSellers(c.Params("term"))
	if err != nil {
		log.Printf("Error searching sellers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not search sellers",
		})
	}
	return c.JSON(sellers)
}
