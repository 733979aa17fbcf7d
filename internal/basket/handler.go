package basket

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/wichananm65/basket-api/internal/apperror"
	"github.com/wichananm65/basket-api/internal/server"
)

// Handler exposes basket items nested under their user.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	items := router.Group("/users/:uid/basket-items")
	items.Get("", h.getItems)
	items.Get("/:id", h.getItem)
	items.Post("", h.createItem)
	items.Put("/:id", h.upsertItem)
	items.Delete("/:id", h.deleteItem)
}

func (h *Handler) getItems(c *fiber.Ctx) error {
	userID, err := server.ParamID(c, "uid", "user")
	if err != nil {
		return err
	}

	items, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(toResponseList(items))
}

func (h *Handler) getItem(c *fiber.Ctx) error {
	if _, err := server.ParamID(c, "uid", "user"); err != nil {
		return err
	}
	id, err := server.ParamID(c, "id", "basket item")
	if err != nil {
		return err
	}

	item, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(toResponse(item))
}

func (h *Handler) createItem(c *fiber.Ctx) error {
	userID, err := server.ParamID(c, "uid", "user")
	if err != nil {
		return err
	}
	var in Input
	if err := server.ParseBody(c, &in); err != nil {
		return err
	}

	item, err := h.service.Insert(c.UserContext(), 0, in, userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toResponse(item))
}

// upsertItem updates the item or, when it does not exist, creates it with
// the path id. Missing products or users are never retried as a create.
func (h *Handler) upsertItem(c *fiber.Ctx) error {
	userID, err := server.ParamID(c, "uid", "user")
	if err != nil {
		return err
	}
	id, err := server.ParamID(c, "id", "basket item")
	if err != nil {
		return err
	}
	var in Input
	if err := server.ParseBody(c, &in); err != nil {
		return err
	}

	item, err := h.service.Update(c.UserContext(), id, in, userID)
	if err == nil {
		return c.JSON(toResponse(item))
	}
	if !errors.Is(err, apperror.ErrResourceNotFound) {
		return err
	}

	log.Debugf("basket item %d not found, creating it", id)
	item, err = h.service.Insert(c.UserContext(), id, in, userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toResponse(item))
}

func (h *Handler) deleteItem(c *fiber.Ctx) error {
	if _, err := server.ParamID(c, "uid", "user"); err != nil {
		return err
	}
	id, err := server.ParamID(c, "id", "basket item")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
