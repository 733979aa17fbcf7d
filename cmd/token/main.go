package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/wichananm65/basket-api/internal/auth"
	"github.com/wichananm65/basket-api/internal/config"
)

func main() {
	subject := flag.String("subject", "basket-api", "token subject")
	ttl := flag.Duration("ttl", 72*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Read()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	token, err := auth.IssueToken(cfg.JWTSecret, *subject, *ttl, time.Now())
	if err != nil {
		log.Fatalf("issuing token: %v", err)
	}
	fmt.Println(token)
}
