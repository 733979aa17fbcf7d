package basket

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/wichananm65/basket-api/internal/database"
)

const (
	table             = "basket_item"
	productConstraint = "fk_basket_item_product"
)

var columns = []string{"id", "user_id", "product_id"}

type PostgresRepository struct {
	db database.DBTX
}

type rowScanner interface {
	Scan(dest ...any) error
}

func NewPostgresRepository(db database.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]BasketItem, error) {
	query, args, err := database.Builder.Select(columns...).From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing basket items of user %d: %w", userID, err)
	}
	defer rows.Close()

	items := make([]BasketItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning basket item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (BasketItem, error) {
	query, args, err := database.Builder.Select(columns...).From(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return BasketItem{}, fmt.Errorf("building query: %w", err)
	}

	item, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BasketItem{}, ErrNotFound
		}
		return BasketItem{}, fmt.Errorf("getting basket item %d: %w", id, err)
	}
	return item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item BasketItem) (BasketItem, error) {
	values := map[string]any{
		"user_id":    item.UserID,
		"product_id": item.ProductID,
	}
	explicitID := item.ID != 0
	if explicitID {
		values["id"] = item.ID
	}

	query, args, err := database.Builder.Insert(table).SetMap(values).Suffix("RETURNING id").ToSql()
	if err != nil {
		return BasketItem{}, fmt.Errorf("building insert: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
		if database.IsUniqueViolation(err) {
			return BasketItem{}, errAlreadyExists
		}
		if database.IsForeignKeyViolation(err) {
			return BasketItem{}, referenceError(err)
		}
		return BasketItem{}, fmt.Errorf("inserting basket item: %w", err)
	}
	if explicitID {
		if err := database.SyncSequence(ctx, r.db, table); err != nil {
			return BasketItem{}, err
		}
	}

	item.Product = nil
	return item, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int, update BasketItem) (BasketItem, error) {
	query, args, err := database.Builder.Update(table).
		Set("user_id", update.UserID).
		Set("product_id", update.ProductID).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return BasketItem{}, fmt.Errorf("building update: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return BasketItem{}, referenceError(err)
		}
		return BasketItem{}, fmt.Errorf("executing update: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return BasketItem{}, fmt.Errorf("getting affected rows: %w", err)
	}
	if affected == 0 {
		return BasketItem{}, ErrNotFound
	}

	return BasketItem{ID: id, UserID: update.UserID, ProductID: update.ProductID}, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	query, args, err := database.Builder.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("executing delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// referenceError turns a foreign key violation into the error for the
// missing side of the relation.
func referenceError(err error) error {
	if database.ConstraintName(err) == productConstraint {
		return errProductNotFound
	}
	return errUserNotFound
}

func scanItem(scanner rowScanner) (BasketItem, error) {
	var item BasketItem
	if err := scanner.Scan(&item.ID, &item.UserID, &item.ProductID); err != nil {
		return BasketItem{}, err
	}
	return item, nil
}
