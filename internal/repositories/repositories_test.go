package repositories_test

import (
	"regexp"
	"testing"
	"time"

	"trainertrust_backend/internal/models"
	"trainertrust_backend/internal/repositories"
	"trainertrust_backend/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newMockDB - gorm поверх sqlmock с postgres диалектом
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// ---------------- exact SQL (postgres) ----------------

func TestApplicationRepository_DeleteByIDAndTrainer_SQL(t *testing.T) {
	repo := repositories.NewApplicationRepository()

	t.Run("deletes only the trainer's row", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "job_applications" WHERE id = $1 AND trainer_id = $2`)).
			WithArgs("app-1", "trainer-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.DeleteByIDAndTrainer(db, "app-1", "trainer-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows means not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "job_applications" WHERE id = $1 AND trainer_id = $2`)).
			WithArgs("app-1", "someone-else").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.DeleteByIDAndTrainer(db, "app-1", "someone-else")
		assert.ErrorIs(t, err, repositories.ErrApplicationNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApplicationRepository_UpdateStatus_SQL(t *testing.T) {
	repo := repositories.NewApplicationRepository()
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "job_applications" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(string(models.ApplicationStatusInterview), sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateStatus(db, "missing", models.ApplicationStatusInterview)
	assert.ErrorIs(t, err, repositories.ErrApplicationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_ReconcileApplicationCounts_SQL(t *testing.T) {
	repo := repositories.NewJobRepository()
	db, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE jobs\s+SET application_count = \(`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	affected, err := repo.ReconcileApplicationCounts(db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------- behaviour (sqlite) ----------------

func TestProfileRepository_FindByIDs(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewProfileRepository()

	a := testutil.CreateProfile(t, db, "Alice", models.UserRoleTrainer)
	b := testutil.CreateProfile(t, db, "Acme", models.UserRoleCompany)

	found, err := repo.FindByIDs(db, []string{a.ID, b.ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, "Alice", found[a.ID].Name)
	assert.Equal(t, models.UserRoleCompany, found[b.ID].Role)
	assert.Nil(t, found["missing"])

	empty, err := repo.FindByIDs(db, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProfileRepository_CreateDuplicateAndUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewProfileRepository()

	p := testutil.CreateProfile(t, db, "Alice", models.UserRoleTrainer)

	dup := &models.Profile{Name: "Again", Role: models.UserRoleTrainer}
	dup.ID = p.ID
	assert.ErrorIs(t, repo.Create(db, dup), repositories.ErrProfileAlreadyExists)

	p.Name = "Alice Smith"
	p.Role = models.UserRoleCompany // роль не меняется через Update
	require.NoError(t, repo.Update(db, p))

	got, err := repo.FindByID(db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", got.Name)
	assert.Equal(t, models.UserRoleTrainer, got.Role)

	_, err = repo.FindByID(db, "missing")
	assert.ErrorIs(t, err, repositories.ErrProfileNotFound)
}

func TestProfileRepository_FindCompanies(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewProfileRepository()

	testutil.CreateProfile(t, db, "Trainer", models.UserRoleTrainer)
	acme := testutil.CreateProfile(t, db, "Acme", models.UserRoleCompany)
	testutil.CreateProfile(t, db, "NoRole", "")

	companies, err := repo.FindCompanies(db)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, acme.ID, companies[0].ID)
	assert.Equal(t, acme.Email, companies[0].Email)
	assert.Equal(t, models.UserRoleCompany, companies[0].Role)
}

func TestJobRepository_ListAndArrays(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewJobRepository()

	acme := testutil.CreateProfile(t, db, "Acme", models.UserRoleCompany)
	other := testutil.CreateProfile(t, db, "Other", models.UserRoleCompany)

	older := &models.Job{CompanyID: acme.ID, Title: "Older", Skills: models.StringList{"go"}}
	older.CreatedAt = time.Now().Add(-time.Hour).UTC()
	require.NoError(t, repo.Create(db, older))
	newer := &models.Job{CompanyID: acme.ID, Title: "Newer", Requirements: models.StringList{"a, b", `quoted "x"`}}
	require.NoError(t, repo.Create(db, newer))
	testutil.CreateJob(t, db, other.ID, "Elsewhere")

	jobs, err := repo.List(db, acme.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Newer", jobs[0].Title)
	assert.Equal(t, "Older", jobs[1].Title)
	assert.Equal(t, models.StringList{"a, b", `quoted "x"`}, jobs[0].Requirements)
	require.NotNil(t, jobs[0].Company)
	assert.Equal(t, "Acme", jobs[0].Company.Name)

	all, err := repo.List(db, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	count, err := repo.CountByCompany(db, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = repo.FindByID(db, "missing")
	assert.ErrorIs(t, err, repositories.ErrJobNotFound)
}

func TestJobRepository_ApplicationCounters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewJobRepository()

	acme := testutil.CreateProfile(t, db, "Acme", models.UserRoleCompany)
	trainer := testutil.CreateProfile(t, db, "T", models.UserRoleTrainer)
	job := testutil.CreateJob(t, db, acme.ID, "Go course")
	testutil.CreateApplication(t, db, job.ID, trainer.ID, models.ApplicationStatusPending)

	require.NoError(t, repo.AdjustApplicationCount(db, job.ID, 5))

	fixed, err := repo.ReconcileApplicationCounts(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fixed)

	got, err := repo.FindByID(db, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ApplicationCount)

	// второй проход ничего не меняет
	fixed, err = repo.ReconcileApplicationCounts(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), fixed)
}

func TestApplicationRepository_UniquePerJobAndTrainer(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewApplicationRepository()

	acme := testutil.CreateProfile(t, db, "Acme", models.UserRoleCompany)
	trainer := testutil.CreateProfile(t, db, "T", models.UserRoleTrainer)
	job := testutil.CreateJob(t, db, acme.ID, "Go course")

	first := &models.JobApplication{JobID: job.ID, TrainerID: trainer.ID, Status: models.ApplicationStatusPending}
	require.NoError(t, repo.Create(db, first))

	second := &models.JobApplication{JobID: job.ID, TrainerID: trainer.ID, Status: models.ApplicationStatusPending}
	assert.ErrorIs(t, repo.Create(db, second), repositories.ErrApplicationExists)

	exists, err := repo.Exists(db, job.ID, trainer.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	mine, err := repo.FindByTrainer(db, trainer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Job)
	require.NotNil(t, mine[0].Job.Company)
	assert.Equal(t, "Acme", mine[0].Job.Company.Name)

	require.NoError(t, repo.DeleteByIDAndTrainer(db, first.ID, trainer.ID))
	assert.ErrorIs(t, repo.DeleteByIDAndTrainer(db, first.ID, trainer.ID), repositories.ErrApplicationNotFound)
}

func TestReviewRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewReviewRepository()

	acme := testutil.CreateProfile(t, db, "Acme", models.UserRoleCompany)
	trainer := testutil.CreateProfile(t, db, "T", models.UserRoleTrainer)

	old := &models.Review{
		ReviewerID: acme.ID, RevieweeID: trainer.ID, ReviewerRole: models.UserRoleCompany, Rating: 3,
		Categories: []models.ReviewCategoryRating{{Category: "expertise", Score: 2}},
	}
	old.CreatedAt = time.Now().Add(-time.Hour).UTC()
	require.NoError(t, repo.Create(db, old))

	recent := &models.Review{
		ReviewerID: acme.ID, RevieweeID: trainer.ID, ReviewerRole: models.UserRoleCompany, Rating: 5,
		Categories: []models.ReviewCategoryRating{{Category: "expertise", Score: 5}, {Category: "delivery", Score: 4}},
	}
	require.NoError(t, repo.Create(db, recent))

	received, err := repo.FindByReviewee(db, trainer.ID)
	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, recent.ID, received[0].ID)
	assert.Equal(t, map[string]int{"expertise": 5, "delivery": 4}, received[0].CategoryMap())
	assert.Equal(t, map[string]int{"expertise": 2}, received[1].CategoryMap())

	given, err := repo.FindByReviewer(db, acme.ID)
	require.NoError(t, err)
	assert.Len(t, given, 2)

	stats, err := repo.GetRatingStats(db, trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalReviews)
	assert.ElementsMatch(t, []int{3, 5}, stats.Ratings)
	assert.Equal(t, int64(1), stats.RatingCounts[5])
	assert.Equal(t, int64(0), stats.RatingCounts[1])
}

func TestReviewRepository_ConstraintsRejectBadRows(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewReviewRepository()

	p := testutil.CreateProfile(t, db, "P", models.UserRoleTrainer)
	other := testutil.CreateProfile(t, db, "O", models.UserRoleCompany)

	self := &models.Review{ReviewerID: p.ID, RevieweeID: p.ID, ReviewerRole: models.UserRoleTrainer, Rating: 4}
	assert.Error(t, repo.Create(db, self))

	outOfRange := &models.Review{ReviewerID: p.ID, RevieweeID: other.ID, ReviewerRole: models.UserRoleTrainer, Rating: 6}
	assert.Error(t, repo.Create(db, outOfRange))

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMessageRepository_ThreadInboxAndRead(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewMessageRepository()

	a := testutil.CreateProfile(t, db, "A", models.UserRoleTrainer)
	b := testutil.CreateProfile(t, db, "B", models.UserRoleCompany)
	c := testutil.CreateProfile(t, db, "C", models.UserRoleCompany)

	first := &models.Message{SenderID: a.ID, RecipientID: b.ID, Body: "hi"}
	first.CreatedAt = time.Now().Add(-time.Minute).UTC()
	require.NoError(t, repo.Create(db, first))
	require.NoError(t, repo.Create(db, &models.Message{SenderID: b.ID, RecipientID: a.ID, Body: "hello"}))
	require.NoError(t, repo.Create(db, &models.Message{SenderID: c.ID, RecipientID: a.ID, Body: "other"}))

	thread, err := repo.FindThread(db, b.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "hi", thread[0].Body)
	assert.Equal(t, "hello", thread[1].Body)

	inbox, err := repo.FindInbox(db, a.ID)
	require.NoError(t, err)
	assert.Len(t, inbox, 2)

	unread, err := repo.CountUnread(db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	readAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, repo.MarkRead(db, first.ID, b.ID, readAt))
	require.NoError(t, repo.MarkRead(db, first.ID, b.ID, readAt.Add(time.Hour)))

	var stored models.Message
	require.NoError(t, db.First(&stored, "id = ?", first.ID).Error)
	require.NotNil(t, stored.ReadAt)
	assert.True(t, stored.ReadAt.Equal(readAt))

	// прочитать чужое сообщение нельзя
	assert.ErrorIs(t, repo.MarkRead(db, first.ID, c.ID, readAt), repositories.ErrMessageNotFound)
}

func TestAnalyticsRepository_StatusCounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewAnalyticsRepository()

	acme := testutil.CreateProfile(t, db, "Acme", models.UserRoleCompany)
	t1 := testutil.CreateProfile(t, db, "T1", models.UserRoleTrainer)
	t2 := testutil.CreateProfile(t, db, "T2", models.UserRoleTrainer)
	job1 := testutil.CreateJob(t, db, acme.ID, "J1")
	job2 := testutil.CreateJob(t, db, acme.ID, "J2")

	testutil.CreateApplication(t, db, job1.ID, t1.ID, models.ApplicationStatusPending)
	testutil.CreateApplication(t, db, job2.ID, t1.ID, models.ApplicationStatusInterview)
	testutil.CreateApplication(t, db, job1.ID, t2.ID, models.ApplicationStatusInterview)

	company, err := repo.CountApplicationsByStatusForCompany(db, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), company[models.ApplicationStatusPending])
	assert.Equal(t, int64(2), company[models.ApplicationStatusInterview])
	assert.Equal(t, int64(0), company[models.ApplicationStatusCompleted])
	assert.Len(t, company, len(models.ApplicationStatuses))

	trainer, err := repo.CountApplicationsByStatusForTrainer(db, t2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), trainer[models.ApplicationStatusInterview])
	assert.Equal(t, int64(0), trainer[models.ApplicationStatusPending])

	testutil.CreateReview(t, db, acme.ID, t1.ID, models.UserRoleCompany, 4, nil)
	given, err := repo.CountReviewsGiven(db, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), given)
}
