package handlers

import (
	"errors"
	"fmt"
	"log"

	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles read-side HTTP requests over orders: single order
// lookup, orders by seller and a customer's purchase history.
type OrderHandler struct {
	service *services.QueryService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.QueryService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order query routes with the Fiber app. The
// static prefixes go first so they are not captured by the :orderId route.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/seller/:sellerId", h.HandleOrdersBySeller)
	orderRoutes.Get("/customer/:customerId/completed", h.HandleCompletedOrdersByCustomer)
	orderRoutes.Get("/:orderId", h.HandleGetOrder)
}

// HandleGetOrder returns one order with its products and their sellers.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	orderID, err := parseID(c, "orderId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	order, err := h.service.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %d not found", orderID),
			})
		}
		log.Printf("Error getting order %d: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
		})
	}
	return c.JSON(order)
}

// HandleOrdersBySeller returns orders containing the seller's products, with
// each product list narrowed to that seller's items.
func (h *OrderHandler) HandleOrdersBySeller(c *fiber.Ctx) error {
	sellerID, err := parseID(c, "sellerId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	orders, err := h.service.OrdersBySeller(sellerID)
	if err != nil {
		log.Printf("Error getting orders for seller %d: %v", sellerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}
	return c.JSON(orders)
}

// HandleCompletedOrdersByCustomer returns the customer's closed orders.
func (h *OrderHandler) HandleCompletedOrdersByCustomer(c *fiber.Ctx) error {
	customerID, err := parseID(c, "customerId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	orders, err := h.service.CompletedOrdersByCustomer(customerID)
	if err != nil {
		log.Printf("Error getting completed orders for customer %d: %v", customerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}
	return c.JSON(orders)
}
