package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/wichananm65/basket-api/internal/apperror"
	"github.com/wichananm65/basket-api/internal/database"
)

const table = "product"

var columns = []string{"id", "name", "price", "stock"}

type PostgresRepository struct {
	db database.DBTX
}

type rowScanner interface {
	Scan(dest ...any) error
}

func NewPostgresRepository(db database.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Product, error) {
	return r.query(ctx, database.Builder.Select(columns...).From(table).OrderBy("id"))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (Product, error) {
	query, args, err := database.Builder.Select(columns...).From(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return Product{}, fmt.Errorf("building query: %w", err)
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("getting product %d: %w", id, err)
	}
	return p, nil
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	arr := make(pq.Int64Array, len(ids))
	for i, id := range ids {
		arr[i] = int64(id)
	}
	return r.query(ctx, database.Builder.Select(columns...).From(table).
		Where("id = ANY(?::int[])", arr).
		OrderBy("id"))
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	values := map[string]any{
		"name":  p.Name,
		"price": p.Price,
		"stock": p.Stock,
	}
	if p.ID != 0 {
		values["id"] = p.ID
	}

	query, args, err := database.Builder.Insert(table).SetMap(values).Suffix("RETURNING id").ToSql()
	if err != nil {
		return Product{}, fmt.Errorf("building insert: %w", err)
	}
	explicitID := p.ID != 0
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		if database.IsUniqueViolation(err) {
			return Product{}, apperror.Conflict("Product already exists")
		}
		return Product{}, fmt.Errorf("inserting product: %w", err)
	}
	if explicitID {
		if err := database.SyncSequence(ctx, r.db, table); err != nil {
			return Product{}, err
		}
	}
	return p, nil
}

func (r *PostgresRepository) query(ctx context.Context, b squirrel.SelectBuilder) ([]Product, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(scanner rowScanner) (Product, error) {
	var p Product
	if err := scanner.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
		return Product{}, err
	}
	return p, nil
}
