package accesstokens

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/tokenauth/internal/common"
	"github.com/dmitrijs2005/tokenauth/internal/server/models"
)

const (
	insertQuery = `(?s)^\s*INSERT\s+INTO\s+personal_access_tokens\s*\(user_id,\s*name,\s*token_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at\s*$`
	findQuery   = `(?s)^\s*SELECT\s+id,\s*user_id,\s*name,\s*token_hash,\s*last_used_at,\s*created_at\s+FROM\s+personal_access_tokens\s+WHERE\s+id\s*=\s*\$1\s*$`
	touchQuery  = `(?s)^\s*UPDATE\s+personal_access_tokens\s+SET\s+last_used_at\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1\s*$`
	deleteQuery = `(?s)^\s*DELETE\s+FROM\s+personal_access_tokens\s+WHERE\s+user_id\s*=\s*\$1\s*$`
)

var tokenColumns = []string{"id", "user_id", "name", "token_hash", "last_used_at", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(insertQuery).
		WithArgs("u1", "API TOKEN", "abc123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("t1", now))

	got, err := repo.Create(context.Background(), &models.AccessToken{UserID: "u1", Name: "API TOKEN", TokenHash: "abc123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "t1" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected token: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.AccessToken{UserID: "u1"})
	if err == nil || !regexp.MustCompile(`error performing sql request: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFind_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Now().Add(-time.Hour)
	used := time.Now()
	mock.ExpectQuery(findQuery).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(tokenColumns).AddRow("t1", "u1", "API TOKEN", "abc", used, created))

	got, err := repo.Find(context.Background(), "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "u1" || got.TokenHash != "abc" || got.LastUsedAt == nil || !got.LastUsedAt.Equal(used) {
		t.Fatalf("unexpected row: %+v", got)
	}
}

func TestFind_NeverUsed(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findQuery).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(tokenColumns).AddRow("t1", "u1", "API TOKEN", "abc", nil, time.Now()))

	got, err := repo.Find(context.Background(), "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LastUsedAt != nil {
		t.Fatalf("expected nil LastUsedAt, got %v", got.LastUsedAt)
	}
}

func TestFind_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findQuery).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestFind_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findQuery).WithArgs("t1").WillReturnError(errors.New("db err"))

	_, err := repo.Find(context.Background(), "t1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestTouch(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Now()
	mock.ExpectExec(touchQuery).WithArgs("t1", at).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(touchQuery).WithArgs("t2", at).WillReturnError(errors.New("db err"))

	if err := repo.Touch(context.Background(), "t1", at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Touch(context.Background(), "t2", at); err == nil {
		t.Fatal("expected error")
	}
}

func TestDeleteByUser_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("want 3 deleted, got %d", n)
	}
}

func TestDeleteByUser_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).WithArgs("u1").WillReturnError(errors.New("db err"))

	_, err := repo.DeleteByUser(context.Background(), "u1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestDeleteByUser_RowsAffectedError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).WithArgs("u1").
		WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))

	if _, err := repo.DeleteByUser(context.Background(), "u1"); err == nil {
		t.Fatal("expected error")
	}
}
