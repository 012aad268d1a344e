package database

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(date time.Time, manager, managerID, tabType string, tabIndex int) SalesRecord {
	return SalesRecord{
		RecordDate:    date,
		Manager:       manager,
		ManagerID:     managerID,
		TabType:       tabType,
		TabIndex:      tabIndex,
		DataType:      DataTypeManager,
		TargetPercent: 80,
		MoneyPlan:     gofakeit.Float64Range(100, 10000),
		MoneyFact:     gofakeit.Float64Range(100, 10000),
		MarginPlan:    gofakeit.Float64Range(10, 1000),
		MarginFact:    gofakeit.Float64Range(10, 1000),
	}
}

func openTestHistory(t *testing.T, dates map[time.Time][]SalesRecord) *HistoryDB {
	t.Helper()
	gofakeit.Seed(11)

	path := filepath.Join(t.TempDir(), "central_sales_history.db")
	snap, err := OpenSnapshotDB(path)
	require.NoError(t, err)
	for date, records := range dates {
		require.NoError(t, snap.ReplaceDay(date, records))
	}
	require.NoError(t, snap.Close())

	return NewHistoryDB(path, 5*time.Second, slog.Default())
}

func TestHistoryDBRoundTrip(t *testing.T) {
	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	src := []SalesRecord{
		testRecord(date, "Алена Морозько (Енисейское)", "Алена Морозько", "managers_26bk", 0),
		testRecord(date, "Петров Сидор", "Петров Сидор", "managers_26bk", 0),
		{
			RecordDate: date,
			Manager:    "Иванов Иван",
			ManagerID:  "Иванов Иван",
			TabType:    "brand_managers_26bk",
			TabIndex:   1,
			DataType:   DataTypeGroup,
			GroupName:  "Обувь",
			BrandPlan:  500,
			BrandFact:  400,
		},
	}
	db := openTestHistory(t, map[time.Time][]SalesRecord{date: src})

	got := db.RecordsForDate(date, "")
	require.Len(t, got, 3)

	// Порядок: индекс вкладки, затем имя менеджера.
	assert.Equal(t, "Алена Морозько (Енисейское)", got[0].Manager)
	assert.Equal(t, "Петров Сидор", got[1].Manager)
	assert.Equal(t, "Иванов Иван", got[2].Manager)

	assert.Equal(t, src[0].MoneyPlan, got[0].MoneyPlan)
	assert.Equal(t, src[0].MoneyFact, got[0].MoneyFact)
	assert.Equal(t, src[0].MarginPlan, got[0].MarginPlan)
	assert.Equal(t, float64(80), got[0].TargetPercent)
	assert.Equal(t, date, got[0].RecordDate)

	group := got[2]
	assert.Equal(t, DataTypeGroup, group.DataType)
	assert.Equal(t, "Обувь", group.GroupName)
	assert.Equal(t, float64(500), group.BrandPlan)

	// Фильтр по типу вкладки.
	onlyManagers := db.RecordsForDate(date, "managers_26bk")
	require.Len(t, onlyManagers, 2)
	for _, rec := range onlyManagers {
		assert.Equal(t, "managers_26bk", rec.TabType)
	}

	assert.Empty(t, db.RecordsForDate(date.AddDate(0, 0, 1), ""))
}

func TestHistoryDBDateRange(t *testing.T) {
	early := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	db := openTestHistory(t, map[time.Time][]SalesRecord{
		early: {testRecord(early, "Петров Сидор", "Петров Сидор", "managers_26bk", 0)},
		late:  {testRecord(late, "Петров Сидор", "Петров Сидор", "managers_26bk", 0)},
	})

	min, max, ok := db.DateRange()
	require.True(t, ok)
	assert.Equal(t, early, min)
	assert.Equal(t, late, max)
}

func TestHistoryDBAvailableDates(t *testing.T) {
	d1 := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	db := openTestHistory(t, map[time.Time][]SalesRecord{
		d1: {testRecord(d1, "Петров Сидор", "Петров Сидор", "managers_26bk", 0)},
		d2: {testRecord(d2, "Петров Сидор", "Петров Сидор", "managers_26bk", 0)},
		d3: {testRecord(d3, "Петров Сидор", "Петров Сидор", "managers_26bk", 0)},
	})

	dates := db.AvailableDates(0)
	require.Len(t, dates, 3)
	assert.Equal(t, []time.Time{d3, d2, d1}, dates)

	assert.Len(t, db.AvailableDates(2), 2)
}

func TestHistoryDBManagers(t *testing.T) {
	d1 := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	db := openTestHistory(t, map[time.Time][]SalesRecord{
		d1: {testRecord(d1, "Петров Сидор", "Петров Сидор", "managers_26bk", 0)},
		d2: {testRecord(d2, "Алена Морозько (Енисейское)", "Алена Морозько", "managers_26bk", 0)},
	})

	all := db.Managers(time.Time{})
	assert.Equal(t, []string{"Алена Морозько (Енисейское)", "Петров Сидор"}, all)

	onDate := db.Managers(d2)
	assert.Equal(t, []string{"Алена Морозько (Енисейское)"}, onDate)
}

func TestHistoryDBRecordsForManager(t *testing.T) {
	d1 := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	db := openTestHistory(t, map[time.Time][]SalesRecord{
		d1: {testRecord(d1, "Петров Сидор", "Петров Сидор", "managers_26bk", 0)},
		d2: {testRecord(d2, "Петров Сидор", "Петров Сидор", "managers_26bk", 0)},
		d3: {testRecord(d3, "Петров Сидор", "Петров Сидор", "managers_26bk", 0)},
	})

	all := db.RecordsForManager("Петров Сидор", time.Time{}, time.Time{})
	require.Len(t, all, 3)
	// От новых дат к старым.
	assert.Equal(t, d3, all[0].RecordDate)
	assert.Equal(t, d1, all[2].RecordDate)

	bounded := db.RecordsForManager("Петров Сидор", d2, d2)
	require.Len(t, bounded, 1)
	assert.Equal(t, d2, bounded[0].RecordDate)

	assert.Empty(t, db.RecordsForManager("Нет Такого", time.Time{}, time.Time{}))
}

func TestHistoryDBCompanyTotals(t *testing.T) {
	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	records := []SalesRecord{
		{RecordDate: date, Manager: "Петров Сидор", ManagerID: "Петров Сидор",
			TabType: "managers_26bk", DataType: DataTypeManager,
			MoneyPlan: 100, MoneyFact: 90, MarginPlan: 50, MarginFact: 45,
			RealizationPlan: 200, RealizationFact: 180},
		{RecordDate: date, Manager: "Ковалев Петр", ManagerID: "Ковалев Петр",
			TabType: "managers_home", DataType: DataTypeManager,
			MoneyPlan: 60, MoneyFact: 30, MarginPlan: 30, MarginFact: 10,
			RealizationPlan: 100, RealizationFact: 40},
		{RecordDate: date, Manager: "Иванов Иван", ManagerID: "Иванов Иван",
			TabType: "brand_managers_26bk", DataType: DataTypeManager,
			BrandPlan: 1000, BrandFact: 550},
		// Группа в итоги не входит, иначе план задвоится.
		{RecordDate: date, Manager: "Иванов Иван", ManagerID: "Иванов Иван",
			TabType: "brand_managers_26bk", DataType: DataTypeGroup,
			GroupName: "Обувь", BrandPlan: 500, BrandFact: 400},
		{RecordDate: date, Manager: "Козлова Мария", ManagerID: "Козлова Мария",
			TabType: "brand_managers_farban", DataType: DataTypeManager,
			FarbanSalesPlan: 1000, FarbanSalesFact: 900,
			FarbanWeightPlan: 50, FarbanWeightFact: 55},
	}
	db := openTestHistory(t, map[time.Time][]SalesRecord{date: records})

	totals := db.CompanyTotals(date)
	assert.Equal(t, float64(160), totals.MoneyPlan)
	assert.Equal(t, float64(120), totals.MoneyFact)
	assert.Equal(t, float64(75), totals.MoneyPercent)
	assert.Equal(t, float64(80), totals.MarginPlan)
	assert.Equal(t, float64(300), totals.RealizationPlan)
	assert.Equal(t, float64(1000), totals.BrandPlan)
	assert.Equal(t, float64(550), totals.BrandFact)
	assert.Equal(t, float64(1000), totals.FarbanSalesPlan)
	assert.Equal(t, float64(110), totals.FarbanWeightPercent)
}

func TestHistoryDBAccessible(t *testing.T) {
	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	db := openTestHistory(t, map[time.Time][]SalesRecord{
		date: {testRecord(date, "Петров Сидор", "Петров Сидор", "managers_26bk", 0)},
	})
	assert.True(t, db.Accessible())

	missing := NewHistoryDB(filepath.Join(t.TempDir(), "absent.db"), time.Second, slog.Default())
	assert.False(t, missing.Accessible())

	_, _, ok := missing.DateRange()
	assert.False(t, ok)
	assert.Empty(t, missing.AvailableDates(0))
}

func TestSnapshotDBReplaceDayIdempotent(t *testing.T) {
	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "central_sales_history.db")

	snap, err := OpenSnapshotDB(path)
	require.NoError(t, err)
	records := []SalesRecord{
		testRecord(date, "Петров Сидор", "Петров Сидор", "managers_26bk", 0),
		testRecord(date, "Алена Морозько (Енисейское)", "Алена Морозько", "managers_26bk", 0),
	}
	require.NoError(t, snap.ReplaceDay(date, records))
	// Повторный снимок за тот же день записи не дублирует.
	require.NoError(t, snap.ReplaceDay(date, records))
	require.NoError(t, snap.Close())

	db := NewHistoryDB(path, 5*time.Second, slog.Default())
	assert.Len(t, db.RecordsForDate(date, ""), 2)
}

func TestSnapshotDBManagerRename(t *testing.T) {
	d1 := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "central_sales_history.db")

	snap, err := OpenSnapshotDB(path)
	require.NoError(t, err)
	require.NoError(t, snap.ReplaceDay(d1, []SalesRecord{
		testRecord(d1, "Смирнова Ольга (Ангарское)", "Смирнова Ольга", "managers_26bk", 0),
	}))
	// Имя поменялось, ключ остался: справочник хранит актуальное имя.
	require.NoError(t, snap.ReplaceDay(d2, []SalesRecord{
		testRecord(d2, "Смирнова Ольга (Енисейское)", "Смирнова Ольга", "managers_26bk", 0),
	}))
	require.NoError(t, snap.Close())

	db := NewHistoryDB(path, 5*time.Second, slog.Default())
	old := db.RecordsForDate(d1, "")
	require.Len(t, old, 1)
	assert.Equal(t, "Смирнова Ольга (Енисейское)", old[0].Manager)
	assert.Equal(t, []string{"Смирнова Ольга (Енисейское)"}, db.Managers(time.Time{}))
}
