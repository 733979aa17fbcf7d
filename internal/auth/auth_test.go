package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func makeAppWithAuth(secret string) *fiber.App {
	app := fiber.New()
	app.Use(Middleware(secret))
	app.Get("/secret", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestMiddleware(t *testing.T) {
	app := makeAppWithAuth("s3cret")

	// no token
	res, err := app.Test(httptest.NewRequest("GET", "/secret", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	// valid token
	token, err := IssueToken("s3cret", "seed", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req := httptest.NewRequest("GET", "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res2, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", res2.StatusCode)
	}

	// token signed with another secret
	other, _ := IssueToken("other", "seed", time.Hour, time.Now())
	req3 := httptest.NewRequest("GET", "/secret", nil)
	req3.Header.Set("Authorization", "Bearer "+other)
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign token, got %d", res3.StatusCode)
	}

	// expired token
	expired, _ := IssueToken("s3cret", "seed", time.Minute, time.Now().Add(-time.Hour))
	req4 := httptest.NewRequest("GET", "/secret", nil)
	req4.Header.Set("Authorization", "Bearer "+expired)
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", res4.StatusCode)
	}
}

func TestIssueToken_EmptySecret(t *testing.T) {
	if _, err := IssueToken("", "seed", time.Hour, time.Now()); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
