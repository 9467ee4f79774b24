package handlers

import (
	"errors"
	"fmt"
	"log"

	"lapak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the cart lifecycle: resolving the
// open cart, linking products and checkout.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Post("/new/:customerId", h.HandleGetOrCreateCart)
	cartRoutes.Put("/close", h.HandleCloseCart)
	cartRoutes.Get("/:customerId", h.HandleGetCart)

	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/:orderId/products", h.HandleAddProduct)
	orderRoutes.Delete("/:orderId/products/:productId", h.HandleRemoveProduct)
}

// HandleGetOrCreateCart ensures the customer has an open cart. Called by the
// frontend at login; repeated calls are idempotent.
func (h *CartHandler) HandleGetOrCreateCart(c *fiber.Ctx) error {
	customerID, err := parseID(c, "customerId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	if _, err := h.service.GetOrCreateCart(customerID); err != nil {
		log.Printf("Error resolving cart for customer %d: %v", customerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not resolve cart",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetCart returns the customer's open cart with products, categories
// and sellers populated, or a null body when no open cart exists.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	customerID, err := parseID(c, "customerId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	cart, err := h.service.GetCart(customerID)
	if err != nil {
		log.Printf("Error loading cart for customer %d: %v", customerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load cart",
		})
	}
	return c.JSON(cart)
}

// CloseCartRequest represents the checkout request body.
type CloseCartRequest struct {
	ID          uint   `json:"id" validate:"required"`
	PaymentType string `json:"paymentType" validate:"required,max=50"`
	Shipping    bool   `json:"shipping"`
}

// HandleCloseCart completes a checkout, returning the closed order with its
// products and total.
func (h *CartHandler) HandleCloseCart(c *fiber.Ctx) error {
	var req CloseCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing close cart request body: %v", err)
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

	order, err := h.service.CloseCart(req.ID, req.PaymentType, req.Shipping)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart not found",
			})
		}
		if errors.Is(err, services.ErrCartEmpty) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cart has no products",
			})
		}
		log.Printf("Error closing cart %d: %v", req.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not close cart",
		})
	}
	return c.JSON(order)
}

// AddProductRequest represents the link request body.
type AddProductRequest struct {
	ProductID uint `json:"productId" validate:"required"`
}

// HandleAddProduct links a product to an order. Linking the same product
// twice is a no-op.
func (h *CartHandler) HandleAddProduct(c *fiber.Ctx) error {
	orderID, err := parseID(c, "orderId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	var req AddProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "productId is required",
		})
	}

	if err := h.service.AddProduct(orderID, req.ProductID); err != nil {
		return h.linkError(c, err, orderID, req.ProductID)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleRemoveProduct unlinks a product from an order. Removing an absent
// link is a no-op.
func (h *CartHandler) HandleRemoveProduct(c *fiber.Ctx) error {
	orderID, err := parseID(c, "orderId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	productID, err := parseID(c, "productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	if err := h.service.RemoveProduct(orderID, productID); err != nil {
		return h.linkError(c, err, orderID, productID)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CartHandler) linkError(c *fiber.Ctx, err error, orderID, productID uint) error {
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	if errors.Is(err, services.ErrInvalidData) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid data submitted",
		})
	}
	log.Printf("Error updating link between order %d and product %d: %v", orderID, productID, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not update order products",
	})
}
