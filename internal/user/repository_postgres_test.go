package user

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wichananm65/basket-api/internal/apperror"
)

var userColumns = []string{"id", "email", "first_name", "last_name"}

func TestPostgresRepository_ListAndGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, first_name, last_name FROM "user" ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "a@b.com", "A", "B"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "user" WHERE id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "a@b.com", "A", "B"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "user" WHERE id = $1`)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(userColumns))

	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(all) != 1 || all[0].Email != "a@b.com" {
		t.Fatalf("unexpected users %+v", all)
	}

	u, err := repo.GetByID(context.Background(), 1)
	if err != nil || u.FirstName != "A" {
		t.Fatalf("unexpected user %+v / %v", u, err)
	}

	if _, err := repo.GetByID(context.Background(), 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "user" (email,first_name,last_name) VALUES ($1,$2,$3) RETURNING id`)).
		WithArgs("a@b.com", "A", "B").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "user" (email,first_name,id,last_name) VALUES ($1,$2,$3,$4) RETURNING id`)).
		WithArgs("x@y.com", "X", 12, "Y").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectExec("SELECT setval").WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), User{Email: "a@b.com", FirstName: "A", LastName: "B"})
	if err != nil || created.ID != 3 {
		t.Fatalf("unexpected result %+v / %v", created, err)
	}

	pinned, err := repo.Create(context.Background(), User{ID: 12, Email: "x@y.com", FirstName: "X", LastName: "Y"})
	if err != nil || pinned.ID != 12 {
		t.Fatalf("unexpected result %+v / %v", pinned, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	query := regexp.QuoteMeta(`UPDATE "user" SET email = $1, first_name = $2, last_name = $3 WHERE id = $4`)
	mock.ExpectExec(query).WithArgs("c@d.com", "C", "D", 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs("c@d.com", "C", "D", 2).WillReturnResult(sqlmock.NewResult(0, 0))

	u, err := repo.Update(context.Background(), 1, User{Email: "c@d.com", FirstName: "C", LastName: "D"})
	if err != nil || u.ID != 1 || u.Email != "c@d.com" {
		t.Fatalf("unexpected result %+v / %v", u, err)
	}

	if _, err := repo.Update(context.Background(), 2, User{Email: "c@d.com", FirstName: "C", LastName: "D"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	query := regexp.QuoteMeta(`DELETE FROM "user" WHERE id = $1`)
	mock.ExpectExec(query).WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs(2).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(query).WithArgs(3).WillReturnError(&pgconn.PgError{Code: "23503"})

	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if err := repo.Delete(context.Background(), 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(context.Background(), 3); !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
