// Package seed generates example users and products for local databases.
package seed

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/wichananm65/basket-api/internal/product"
	"github.com/wichananm65/basket-api/internal/user"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	EntityUser    = "user"
	EntityProduct = "product"
)

var (
	firstNames = []string{
		"Aiden", "Amara", "Benjamin", "Chloe", "Daniel", "Elena", "Felix", "Grace",
		"Hugo", "Isla", "Jonas", "Kira", "Liam", "Maya", "Noah", "Olivia",
		"Pavel", "Quinn", "Rosa", "Samuel", "Tara", "Ulrich", "Vera", "Wyatt",
	}
	lastNames = []string{
		"Anderson", "Brooks", "Carter", "Dalton", "Evans", "Fischer", "Garcia", "Hansen",
		"Ivanova", "Jensen", "Keller", "Lambert", "Morales", "Novak", "Owens", "Peters",
		"Quincy", "Reyes", "Schmidt", "Turner", "Ueda", "Vargas", "Walsh", "Young",
	}
	freeEmailDomains = []string{"gmail.com", "yahoo.com", "hotmail.com"}
	words            = []string{
		"alpha", "amber", "arc", "blade", "bloom", "brick", "cedar", "cloud", "copper",
		"crisp", "delta", "drift", "ember", "field", "flint", "frost", "glow", "harbor",
		"iron", "jade", "kite", "lumen", "maple", "nova", "onyx", "pine", "quartz",
		"ridge", "slate", "spark", "stone", "tide", "umber", "vale", "willow", "zephyr",
	}
)

// Generator builds random example records.
type Generator struct {
	rnd   *rand.Rand
	title cases.Caser
}

func NewGenerator(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd, title: cases.Title(language.English)}
}

// User returns a user whose email is derived from its lowercased names.
func (g *Generator) User() user.Input {
	first := pick(g.rnd, firstNames)
	last := pick(g.rnd, lastNames)
	return user.Input{
		Email:     strings.ToLower(first) + "." + strings.ToLower(last) + "@" + pick(g.rnd, freeEmailDomains),
		FirstName: first,
		LastName:  last,
	}
}

// Product returns a product with a three word title, a price ending in 999
// minor units and a stock below 100.
func (g *Generator) Product() product.Product {
	name := make([]string, 3)
	for i := range name {
		name[i] = pick(g.rnd, words)
	}
	return product.Product{
		Name:  g.title.String(strings.Join(name, " ")),
		Price: (g.rnd.IntN(100)+1)*1000 - 1,
		Stock: g.rnd.IntN(100),
	}
}

// Run creates amount records of entity and prints each one to out.
func Run(ctx context.Context, g *Generator, users *user.Service, products *product.Service, entity string, amount int, out io.Writer) error {
	if amount < 1 {
		return fmt.Errorf("amount should be at least 1, got %d", amount)
	}
	if entity != EntityUser && entity != EntityProduct {
		return fmt.Errorf("unrecognized entity name %q", entity)
	}

	for i := 0; i < amount; i++ {
		switch entity {
		case EntityUser:
			u, err := users.Insert(ctx, 0, g.User())
			if err != nil {
				return fmt.Errorf("creating user: %w", err)
			}
			fmt.Fprintf(out, "ID: %d\nEmail: %s\nFirst name: %s\nLast name: %s\n\n", u.ID, u.Email, u.FirstName, u.LastName)
		case EntityProduct:
			p, err := products.Create(ctx, g.Product())
			if err != nil {
				return fmt.Errorf("creating product: %w", err)
			}
			fmt.Fprintf(out, "ID: %d\nName: %s\nPrice: %.2f\nStock: %d\n\n", p.ID, p.Name, float64(p.Price)/100, p.Stock)
		}
	}
	return nil
}

func pick(rnd *rand.Rand, from []string) string {
	return from[rnd.IntN(len(from))]
}
