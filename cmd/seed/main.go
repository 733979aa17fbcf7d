package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/gofiber/fiber/v2/log"
	"github.com/wichananm65/basket-api/internal/app"
	"github.com/wichananm65/basket-api/internal/config"
	"github.com/wichananm65/basket-api/internal/product"
	"github.com/wichananm65/basket-api/internal/seed"
	"github.com/wichananm65/basket-api/internal/server"
	"github.com/wichananm65/basket-api/internal/user"
)

func main() {
	amount := flag.Int("amount", 1, "number of records to create")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: seed [-amount N] %s|%s\n", seed.EntityUser, seed.EntityProduct)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	server.SetLogLevel(cfg.LogLevel)
	if cfg.Storage == config.StorageMemory {
		log.Warn("seeding in-memory storage, records are lost on exit")
	}

	ctx := context.Background()
	deps, err := app.Open(ctx, cfg, io.Discard)
	if err != nil {
		log.Fatalf("opening storage: %v", err)
	}

	gen := seed.NewGenerator(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	err = seed.Run(ctx, gen, user.NewService(deps.Users), product.NewService(deps.Products), flag.Arg(0), *amount, os.Stdout)
	if closeErr := deps.Close(); closeErr != nil {
		log.Errorf("%v", closeErr)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}
