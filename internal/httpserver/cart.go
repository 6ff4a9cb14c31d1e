package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shoppingcart-api/internal/domain"
	cartsvc "shoppingcart-api/internal/service/cart"
)

// Deps carries the services the router depends on.
type Deps struct {
	CartSvc cartService
}

type cartService interface {
	Create(ctx context.Context, in cartsvc.CartInput) (*domain.Cart, error)
	Get(ctx context.Context, id string) (*domain.Cart, error)
	List(ctx context.Context, userID string) ([]domain.Cart, error)
	Update(ctx context.Context, id string, in cartsvc.CartInput) (*domain.Cart, error)
	Delete(ctx context.Context, id string) error
}

type cartHandler struct {
	svc    cartService
	logger *log.Logger
}

func newCartHandler(svc cartService, logger *log.Logger) *cartHandler {
	return &cartHandler{svc: svc, logger: logger}
}

func (h *cartHandler) create(c *gin.Context) {
	var in cartsvc.CartInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cart, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

func (h *cartHandler) get(c *gin.Context) {
	cart, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandler) list(c *gin.Context) {
	carts, err := h.svc.List(c.Request.Context(), c.Query("userId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, carts)
}

func (h *cartHandler) update(c *gin.Context) {
	var in cartsvc.CartInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cart, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *cartHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "shopping cart not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Printf("cart handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
