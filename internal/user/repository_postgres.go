package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/wichananm65/basket-api/internal/database"
)

// user is a reserved word in Postgres.
const table = `"user"`

var columns = []string{"id", "email", "first_name", "last_name"}

type PostgresRepository struct {
	db database.DBTX
}

type rowScanner interface {
	Scan(dest ...any) error
}

func NewPostgresRepository(db database.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	query, args, err := database.Builder.Select(columns...).From(table).OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (User, error) {
	query, args, err := database.Builder.Select(columns...).From(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return User{}, fmt.Errorf("building query: %w", err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("getting user %d: %w", id, err)
	}

	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user User) (User, error) {
	values := map[string]any{
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	}
	explicitID := user.ID != 0
	if explicitID {
		values["id"] = user.ID
	}

	query, args, err := database.Builder.Insert(table).SetMap(values).Suffix("RETURNING id").ToSql()
	if err != nil {
		return User{}, fmt.Errorf("building insert: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		if database.IsUniqueViolation(err) {
			return User{}, errAlreadyExists
		}
		return User{}, fmt.Errorf("inserting user: %w", err)
	}
	if explicitID {
		if err := database.SyncSequence(ctx, r.db, table); err != nil {
			return User{}, err
		}
	}

	return user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int, userUpdate User) (User, error) {
	query, args, err := database.Builder.Update(table).
		Set("email", userUpdate.Email).
		Set("first_name", userUpdate.FirstName).
		Set("last_name", userUpdate.LastName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return User{}, fmt.Errorf("building update: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return User{}, fmt.Errorf("executing update: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, fmt.Errorf("getting affected rows: %w", err)
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}

	userUpdate.ID = id
	return userUpdate, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	query, args, err := database.Builder.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return errReferenced
		}
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

func scanUser(scanner rowScanner) (User, error) {
	var user User
	if err := scanner.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName); err != nil {
		return User{}, err
	}
	return user, nil
}
