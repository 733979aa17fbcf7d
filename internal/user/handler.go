package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/wichananm65/basket-api/internal/apperror"
	"github.com/wichananm65/basket-api/internal/server"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Get("/users", h.getUsers)
	router.Get("/users/:id", h.getUser)
	router.Post("/users", h.createUser)
	router.Put("/users/:id", h.upsertUser)
	router.Delete("/users/:id", h.deleteUser)
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(toResponseList(users))
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	id, err := server.ParamID(c, "id", "user")
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(toResponse(user))
}

func (h *Handler) createUser(c *fiber.Ctx) error {
	var in Input
	if err := server.ParseBody(c, &in); err != nil {
		return err
	}

	user, err := h.service.Insert(c.UserContext(), 0, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toResponse(user))
}

// upsertUser replaces an existing user or creates one with the path id.
func (h *Handler) upsertUser(c *fiber.Ctx) error {
	id, err := server.ParamID(c, "id", "user")
	if err != nil {
		return err
	}
	var in Input
	if err := server.ParseBody(c, &in); err != nil {
		return err
	}

	user, err := h.service.Update(c.UserContext(), id, in)
	if err == nil {
		return c.JSON(toResponse(user))
	}
	if !errors.Is(err, apperror.ErrResourceNotFound) {
		return err
	}

	log.Debugf("user %d not found, creating it", id)
	user, err = h.service.Insert(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toResponse(user))
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	id, err := server.ParamID(c, "id", "user")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
