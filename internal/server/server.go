// Package server builds the fiber application shared by every resource
// handler: middleware stack, JSON error responses and request helpers.
package server

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/wichananm65/basket-api/internal/apperror"
)

const APIPrefix = "/api/v1"

type Config struct {
	AllowOrigins string
	// AccessLog receives one line per request; nil disables the access log.
	AccessLog io.Writer
}

// New returns a fiber app with recovery, request ids, access logging, CORS,
// the JSON error handler and the /health endpoint installed.
func New(cfg Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "basket-api",
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if cfg.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Output: cfg.AccessLog,
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,HEAD",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return app
}

// ErrorHandler writes every error returned by a handler as {"error": "..."}
// with the status picked by apperror.StatusCode.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := apperror.StatusCode(err)
	body := fiber.Map{"error": err.Error()}

	var ve *apperror.ValidationError
	if errors.As(err, &ve) {
		body["error"] = "validation failed"
		body["errors"] = ve.Fields
	}
	if code >= fiber.StatusInternalServerError {
		log.Errorf("request %v %s %s failed: %v", c.Locals(requestid.ConfigDefault.ContextKey), c.Method(), c.Path(), err)
		body["error"] = "internal server error"
	}

	return c.Status(code).JSON(body)
}

// ParamID reads a positive integer path parameter that fits the int4 id
// columns. name is used in the error message, e.g. "invalid user id".
func ParamID(c *fiber.Ctx, key, name string) (int, error) {
	id, err := strconv.ParseInt(c.Params(key), 10, 32)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name+" id")
	}
	return int(id), nil
}

type validator interface {
	Validate() error
}

// ParseBody decodes the JSON body into out and validates it.
func ParseBody(c *fiber.Ctx, out validator) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return out.Validate()
}

// SetLogLevel applies one of debug, info, warn or error to fiber's logger.
func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		log.SetLevel(log.LevelDebug)
	case "warn":
		log.SetLevel(log.LevelWarn)
	case "error":
		log.SetLevel(log.LevelError)
	default:
		log.SetLevel(log.LevelInfo)
	}
}
