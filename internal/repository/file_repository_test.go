package repository_test

import (
	"context"
	"regexp"
	"secure-files-server/config"
	"secure-files-server/internal/apperror"
	"secure-files-server/internal/model"
	"secure-files-server/internal/repository"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*config.Database, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &config.Database{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

var fileColumns = []string{
	"id", "stored_name", "original_name", "storage_path", "size_bytes", "mime_type",
	"uploaded_by", "uploaded_at", "allowed_roles", "description", "download_count",
}

func TestFileRepository_Create(t *testing.T) {
	database, mock := newMockDB(t)
	repo := repository.NewFileRepository(database)

	uploadedAt := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO secure_files")).
		WithArgs("report_1a2b3c4d.pdf", "report.pdf", "/data/protected/report_1a2b3c4d.pdf",
			int64(42), "application/pdf", "admin", sqlmock.AnyArg(), "квартальный отчёт").
		WillReturnRows(sqlmock.NewRows([]string{"id", "uploaded_at"}).AddRow(int64(7), uploadedAt))

	file := &model.SecureFile{
		StoredName:   "report_1a2b3c4d.pdf",
		OriginalName: "report.pdf",
		StoragePath:  "/data/protected/report_1a2b3c4d.pdf",
		SizeBytes:    42,
		MimeType:     "application/pdf",
		UploadedBy:   "admin",
		AllowedRoles: pq.StringArray{"partner"},
		Description:  "квартальный отчёт",
	}

	id, err := repo.Create(context.Background(), database.DB, file)

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, int64(7), file.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		database, mock := newMockDB(t)
		repo := repository.NewFileRepository(database)

		mock.ExpectQuery(regexp.QuoteMeta("FROM secure_files")).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(fileColumns).AddRow(
				int64(7), "report_1a2b3c4d.pdf", "report.pdf", "/data/protected/report_1a2b3c4d.pdf",
				int64(42), "application/pdf", "admin", time.Now(), "{partner}", "описание", int64(3),
			))

		file, err := repo.GetByID(context.Background(), database.DB, 7)

		require.NoError(t, err)
		assert.Equal(t, "report_1a2b3c4d.pdf", file.StoredName)
		assert.Equal(t, []string{"partner"}, []string(file.AllowedRoles))
		assert.Equal(t, int64(3), file.DownloadCount)
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		database, mock := newMockDB(t)
		repo := repository.NewFileRepository(database)

		mock.ExpectQuery(regexp.QuoteMeta("FROM secure_files")).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(fileColumns))

		_, err := repo.GetByID(context.Background(), database.DB, 99)

		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestFileRepository_IncrementDownloadCount(t *testing.T) {
	t.Run("single atomic update", func(t *testing.T) {
		database, mock := newMockDB(t)
		repo := repository.NewFileRepository(database)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE secure_files SET download_count = download_count + 1 WHERE id = $1")).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementDownloadCount(context.Background(), database.DB, 7)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown file", func(t *testing.T) {
		database, mock := newMockDB(t)
		repo := repository.NewFileRepository(database)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE secure_files")).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.IncrementDownloadCount(context.Background(), database.DB, 99)

		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestFileRepository_List(t *testing.T) {
	database, mock := newMockDB(t)
	repo := repository.NewFileRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY uploaded_at DESC")).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(fileColumns).
			AddRow(int64(2), "b_22222222.txt", "b.txt", "/p/b", int64(1), "text/plain", "admin", time.Now(), "{}", "", int64(0)).
			AddRow(int64(1), "a_11111111.txt", "a.txt", "/p/a", int64(1), "text/plain", "admin", time.Now(), "{partner}", "", int64(5)))

	files, err := repo.List(context.Background(), database.DB, 20, 0)

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, int64(2), files[0].ID)
	assert.Empty(t, files[0].AllowedRoles)
}

func TestFileRepository_Delete(t *testing.T) {
	database, mock := newMockDB(t)
	repo := repository.NewFileRepository(database)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM secure_files WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), database.DB, 7)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileRepository_UpdateRoles(t *testing.T) {
	database, mock := newMockDB(t)
	repo := repository.NewFileRepository(database)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE secure_files SET allowed_roles = $2 WHERE id = $1")).
		WithArgs(int64(7), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateRoles(context.Background(), database.DB, 7, []string{"partner", "reviewer"})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
