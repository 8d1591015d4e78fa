package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskmaster/internal/common"
	"github.com/dmitrijs2005/taskmaster/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertQuery    = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*hashed_password,\s*is_active,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*$`
	byEmailQuery   = `(?s)^SELECT\s+id,\s*email,\s*hashed_password,\s*is_active,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	byIDQuery      = `(?s)^SELECT\s+id,\s*email,\s*hashed_password,\s*is_active,\s*created_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	hashedPassword = "$argon2id$v=19$m=64,t=1,p=1$c2FsdA$a2V5"
)

var userColumns = []string{"id", "email", "hashed_password", "is_active", "created_at"}

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).
		WithArgs(sqlmock.AnyArg(), "alice@x.com", hashedPassword, true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &models.User{Email: "alice@x.com", HashedPassword: hashedPassword, IsActive: true}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" || got.Email != "alice@x.com" || got.CreatedAt.IsZero() {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "ix_users_email"})

	_, err := repo.Create(context.Background(), &models.User{Email: "alice@x.com", HashedPassword: hashedPassword})
	if !errors.Is(err, common.ErrDuplicateEmail) {
		t.Fatalf("want common.ErrDuplicateEmail, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Email: "alice@x.com", HashedPassword: hashedPassword})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if errors.Is(err, common.ErrDuplicateEmail) {
		t.Fatalf("generic failure must not look like a duplicate")
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2025, 6, 26, 0, 5, 44, 0, time.UTC)
	rows := sqlmock.NewRows(userColumns).
		AddRow("u-1", "alice@x.com", hashedPassword, true, created)
	mock.ExpectQuery(byEmailQuery).
		WithArgs("alice@x.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "alice@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	want := &models.User{ID: "u-1", Email: "alice@x.com", HashedPassword: hashedPassword, IsActive: true, CreatedAt: created}
	if *got != *want {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byEmailQuery).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns).
		AddRow("u-2", "bob@x.com", hashedPassword, false, time.Now())
	mock.ExpectQuery(byIDQuery).
		WithArgs("u-2").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "u-2")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Email != "bob@x.com" || got.IsActive {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byIDQuery).
		WithArgs("u-2").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetByID(context.Background(), "u-2")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
