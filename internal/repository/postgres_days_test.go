package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresDaysRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPostgresDaysRepository(db)
	return db, mock, repo
}

var dayColumnNames = []string{
	"day_id", "patient_id", "record_date", "icu_day", "daily_plan",
	"saps3", "diagnosis", "secondary_diagnoses", "comorbidities",
	"admission_history", "past_history", "usual_medications",
	"neurologic", "respiratory", "cardiovascular", "renal",
	"gastrointestinal", "infectious", "exam_notes",
	"vasoactive_drugs", "vasoactive_drugs_detail",
	"mechanical_ventilation", "airway", "devices", "created_at",
}

func addDayRow(rows *sqlmock.Rows, dayID string, date time.Time, icuDay int, plan string) *sqlmock.Rows {
	return rows.AddRow(
		dayID, "patient-1", date, icuDay, plan,
		64, "septic shock", nil, "hypertension",
		nil, nil, nil,
		"alert", nil, "norepinephrine weaning", nil,
		nil, nil, nil,
		true, "norepinephrine",
		false, "NONE", "{CVC,SVD}", date,
	)
}

func TestListDays_OrderedAndScanned(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	d15 := time.Date(2025, 12, 15, 8, 0, 0, 0, time.UTC)
	d14 := time.Date(2025, 12, 14, 8, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(dayColumnNames)
	addDayRow(rows, "day-2", d15, 2, "plan B")
	addDayRow(rows, "day-1", d14, 1, "plan A")

	mock.ExpectQuery(`SELECT`).
		WithArgs("patient-1").
		WillReturnRows(rows)

	days, err := repo.ListDays(context.Background(), "patient-1")

	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "day-2", days[0].DayID)
	assert.Equal(t, 2, days[0].ICUDay)
	assert.Equal(t, "plan B", days[0].DailyPlan)
	require.NotNil(t, days[0].SAPS3)
	assert.Equal(t, 64, *days[0].SAPS3)
	assert.Equal(t, "septic shock", days[0].Diagnosis)
	assert.True(t, days[0].VasoactiveDrugs)
	assert.Equal(t, domain.AirwayNone, days[0].Airway)
	assert.Equal(t, []string{"CVC", "SVD"}, days[0].Devices)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDays_Empty(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs("patient-1").
		WillReturnRows(sqlmock.NewRows(dayColumnNames))

	days, err := repo.ListDays(context.Background(), "patient-1")

	require.NoError(t, err)
	assert.Len(t, days, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDay_NotFound(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs("patient-1", "day-x").
		WillReturnError(sql.ErrNoRows)

	day, err := repo.GetDay(context.Background(), "patient-1", "day-x")

	assert.Nil(t, day)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestDayBefore_NoneIsNil(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	date := time.Date(2025, 12, 15, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT`).
		WithArgs("patient-1", date).
		WillReturnError(sql.ErrNoRows)

	day, err := repo.LatestDayBefore(context.Background(), "patient-1", date)

	require.NoError(t, err)
	assert.Nil(t, day)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestDayBefore_Found(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	d12 := time.Date(2025, 12, 12, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(dayColumnNames)
	addDayRow(rows, "day-5", d12, 5, "plan A")

	date := time.Date(2025, 12, 15, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT`).
		WithArgs("patient-1", date).
		WillReturnRows(rows)

	day, err := repo.LatestDayBefore(context.Background(), "patient-1", date)

	require.NoError(t, err)
	require.NotNil(t, day)
	assert.Equal(t, "day-5", day.DayID)
	assert.Equal(t, 5, day.ICUDay)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountDays(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("patient-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountDays(context.Background(), "patient-1")

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDay_ReturnsID(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO day_records`).
		WillReturnRows(sqlmock.NewRows([]string{"day_id"}).AddRow("day-123"))

	day := &domain.DayRecord{
		PatientID: "patient-1",
		Date:      time.Date(2025, 12, 16, 8, 0, 0, 0, time.UTC),
		ICUDay:    7,
		ClinicalFields: domain.ClinicalFields{
			Diagnosis: "septic shock",
			Airway:    domain.AirwayNone,
			Devices:   []string{"CVC"},
		},
	}
	dayID, err := repo.CreateDay(context.Background(), day)

	require.NoError(t, err)
	assert.Equal(t, "day-123", dayID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDay_NotFoundWhenNoRowsAffected(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE day_records`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	day := &domain.DayRecord{
		DayID:     "day-x",
		PatientID: "patient-1",
		ClinicalFields: domain.ClinicalFields{
			Airway: domain.AirwayNone,
		},
	}
	err := repo.UpdateDay(context.Background(), day)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDay_Success(t *testing.T) {
	db, mock, repo := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE day_records`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	day := &domain.DayRecord{
		DayID:     "day-1",
		PatientID: "patient-1",
		DailyPlan: "updated plan",
		ClinicalFields: domain.ClinicalFields{
			Airway:  domain.AirwayETT,
			Devices: []string{"TOT", "CVC"},
		},
	}
	err := repo.UpdateDay(context.Background(), day)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
