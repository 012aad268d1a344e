package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"planerka/report"
)

// HistoryDB доступ к центральной базе истории продаж строго на чтение.
// База лежит на сетевом ресурсе и бывает недоступна, поэтому каждая
// операция открывает свежее соединение с ограниченным таймаутом и при
// любой ошибке возвращает пустой результат, а не ошибку: история не должна
// ронять вызывающего.
type HistoryDB struct {
	path    string
	timeout time.Duration
	logger  *slog.Logger
}

// NewHistoryDB создает обертку над центральной базой истории
func NewHistoryDB(path string, timeout time.Duration, logger *slog.Logger) *HistoryDB {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryDB{path: path, timeout: timeout, logger: logger}
}

// open открывает соединение только на чтение. Запись отклоняется на уровне
// соединения: mode=ro плюс query_only.
func (db *HistoryDB) open() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=%d&_query_only=1",
		db.path, db.timeout.Milliseconds())
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("открытие базы истории: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("база истории недоступна: %w", err)
	}
	return conn, nil
}

// hasSalesTable проверяет наличие таблицы sales_data: база на сетевом
// ресурсе может существовать, но быть еще не наполненной.
func (db *HistoryDB) hasSalesTable(conn *sql.DB) bool {
	var name string
	err := conn.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name='sales_data'`,
	).Scan(&name)
	return err == nil
}

// DateRange возвращает минимальную и максимальную даты в базе.
// ok=false означает, что база недоступна или пуста.
func (db *HistoryDB) DateRange() (min, max time.Time, ok bool) {
	conn, err := db.open()
	if err != nil {
		db.logger.Warn("диапазон дат истории недоступен", "error", err)
		return time.Time{}, time.Time{}, false
	}
	defer conn.Close()

	if !db.hasSalesTable(conn) {
		db.logger.Warn("таблица sales_data отсутствует", "path", db.path)
		return time.Time{}, time.Time{}, false
	}

	var minStr, maxStr sql.NullString
	err = conn.QueryRow(`SELECT MIN(record_date), MAX(record_date) FROM sales_data`).
		Scan(&minStr, &maxStr)
	if err != nil || !minStr.Valid || !maxStr.Valid {
		return time.Time{}, time.Time{}, false
	}
	min, errMin := time.Parse(DateLayout, minStr.String)
	max, errMax := time.Parse(DateLayout, maxStr.String)
	if errMin != nil || errMax != nil {
		db.logger.Warn("некорректные даты в базе истории", "min", minStr.String, "max", maxStr.String)
		return time.Time{}, time.Time{}, false
	}
	return min, max, true
}

// AvailableDates возвращает даты с данными, от новых к старым
func (db *HistoryDB) AvailableDates(limit int) []time.Time {
	if limit <= 0 {
		limit = 100
	}
	conn, err := db.open()
	if err != nil {
		db.logger.Warn("список дат истории недоступен", "error", err)
		return nil
	}
	defer conn.Close()

	rows, err := conn.Query(
		`SELECT DISTINCT record_date FROM sales_data ORDER BY record_date DESC LIMIT ?`, limit)
	if err != nil {
		db.logger.Warn("запрос дат истории", "error", err)
		return nil
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			continue
		}
		if d, err := time.Parse(DateLayout, s); err == nil {
			dates = append(dates, d)
		}
	}
	return dates
}

const recordColumns = `
	m.current_name,
	sd.record_date, sd.manager_id, sd.tab_type, sd.tab_index,
	sd.data_type, sd.group_name, sd.target_percent,
	sd.money_plan, sd.money_fact, sd.money_percent,
	sd.margin_plan, sd.margin_fact, sd.margin_percent,
	sd.realization_plan, sd.realization_fact, sd.realization_percent,
	sd.bm_plan, sd.bm_fact, sd.bm_percent,
	sd.farban_sales_plan, sd.farban_sales_fact, sd.farban_sales_percent,
	sd.farban_weight_plan, sd.farban_weight_fact, sd.farban_weight_percent,
	sd.special_group, sd.special_group_plan, sd.special_group_fact, sd.special_group_percent`

func scanRecord(rows *sql.Rows) (SalesRecord, error) {
	var rec SalesRecord
	var dateStr string
	err := rows.Scan(
		&rec.Manager,
		&dateStr, &rec.ManagerID, &rec.TabType, &rec.TabIndex,
		&rec.DataType, &rec.GroupName, &rec.TargetPercent,
		&rec.MoneyPlan, &rec.MoneyFact, &rec.MoneyPercent,
		&rec.MarginPlan, &rec.MarginFact, &rec.MarginPercent,
		&rec.RealizationPlan, &rec.RealizationFact, &rec.RealizationPercent,
		&rec.BrandPlan, &rec.BrandFact, &rec.BrandPercent,
		&rec.FarbanSalesPlan, &rec.FarbanSalesFact, &rec.FarbanSalesPercent,
		&rec.FarbanWeightPlan, &rec.FarbanWeightFact, &rec.FarbanWeightPercent,
		&rec.SpecialGroup, &rec.SpecialGroupPlan, &rec.SpecialGroupFact, &rec.SpecialGroupPercent,
	)
	if err != nil {
		return rec, err
	}
	rec.RecordDate, _ = time.Parse(DateLayout, dateStr)
	return rec, nil
}

// RecordsForDate возвращает записи за дату, при необходимости ограниченные
// типом вкладки
func (db *HistoryDB) RecordsForDate(date time.Time, tabType string) []SalesRecord {
	conn, err := db.open()
	if err != nil {
		db.logger.Warn("записи истории недоступны", "date", date.Format(DateLayout), "error", err)
		return nil
	}
	defer conn.Close()

	query := `SELECT ` + recordColumns + `
		FROM sales_data sd
		JOIN managers m ON sd.manager_id = m.id
		WHERE sd.record_date = ?`
	args := []any{date.Format(DateLayout)}
	if tabType != "" {
		query += ` AND sd.tab_type = ?`
		args = append(args, tabType)
	}
	query += ` ORDER BY sd.tab_index, m.current_name, sd.id`

	rows, err := conn.Query(query, args...)
	if err != nil {
		db.logger.Warn("запрос записей истории", "error", err)
		return nil
	}
	defer rows.Close()

	var records []SalesRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			db.logger.Warn("чтение записи истории", "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

// RecordsForManager возвращает записи менеджера, от новых дат к старым.
// Нулевые границы диапазона означают отсутствие ограничения.
func (db *HistoryDB) RecordsForManager(name string, from, to time.Time) []SalesRecord {
	conn, err := db.open()
	if err != nil {
		db.logger.Warn("история менеджера недоступна", "manager", name, "error", err)
		return nil
	}
	defer conn.Close()

	query := `SELECT ` + recordColumns + `
		FROM sales_data sd
		JOIN managers m ON sd.manager_id = m.id
		WHERE m.current_name = ?`
	args := []any{name}
	if !from.IsZero() {
		query += ` AND sd.record_date >= ?`
		args = append(args, from.Format(DateLayout))
	}
	if !to.IsZero() {
		query += ` AND sd.record_date <= ?`
		args = append(args, to.Format(DateLayout))
	}
	query += ` ORDER BY sd.record_date DESC, sd.id`

	rows, err := conn.Query(query, args...)
	if err != nil {
		db.logger.Warn("запрос истории менеджера", "error", err)
		return nil
	}
	defer rows.Close()

	var records []SalesRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// Managers возвращает имена менеджеров: при непустой дате тех, у кого есть
// записи за нее, иначе всех известных базе
func (db *HistoryDB) Managers(date time.Time) []string {
	conn, err := db.open()
	if err != nil {
		db.logger.Warn("список менеджеров недоступен", "error", err)
		return nil
	}
	defer conn.Close()

	var rows *sql.Rows
	if date.IsZero() {
		rows, err = conn.Query(`SELECT DISTINCT current_name FROM managers ORDER BY current_name`)
	} else {
		rows, err = conn.Query(`SELECT DISTINCT m.current_name
			FROM sales_data sd
			JOIN managers m ON sd.manager_id = m.id
			WHERE sd.record_date = ?
			ORDER BY m.current_name`, date.Format(DateLayout))
	}
	if err != nil {
		db.logger.Warn("запрос менеджеров", "error", err)
		return nil
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err == nil {
			names = append(names, name)
		}
	}
	return names
}

// CompanyTotals агрегирует показатели компании за дату по трем семействам
// вкладок. Группы и спецгруппы в суммы не входят, только менеджерские
// записи, иначе планы задвоятся.
func (db *HistoryDB) CompanyTotals(date time.Time) CompanyTotals {
	var totals CompanyTotals
	conn, err := db.open()
	if err != nil {
		db.logger.Warn("итоги компании недоступны", "date", date.Format(DateLayout), "error", err)
		return totals
	}
	defer conn.Close()

	day := date.Format(DateLayout)

	err = conn.QueryRow(`SELECT
			COALESCE(SUM(money_plan), 0), COALESCE(SUM(money_fact), 0),
			COALESCE(SUM(margin_plan), 0), COALESCE(SUM(margin_fact), 0),
			COALESCE(SUM(realization_plan), 0), COALESCE(SUM(realization_fact), 0)
		FROM sales_data
		WHERE record_date = ?
		AND tab_type IN ('managers_26bk', 'managers_home')
		AND data_type = ?`, day, DataTypeManager).
		Scan(&totals.MoneyPlan, &totals.MoneyFact,
			&totals.MarginPlan, &totals.MarginFact,
			&totals.RealizationPlan, &totals.RealizationFact)
	if err != nil {
		db.logger.Warn("итоги менеджеров", "error", err)
	}

	err = conn.QueryRow(`SELECT COALESCE(SUM(bm_plan), 0), COALESCE(SUM(bm_fact), 0)
		FROM sales_data
		WHERE record_date = ?
		AND tab_type LIKE 'brand_managers_%'
		AND data_type = ?`, day, DataTypeManager).
		Scan(&totals.BrandPlan, &totals.BrandFact)
	if err != nil {
		db.logger.Warn("итоги бренд-менеджеров", "error", err)
	}

	err = conn.QueryRow(`SELECT
			COALESCE(SUM(farban_sales_plan), 0), COALESCE(SUM(farban_sales_fact), 0),
			COALESCE(SUM(farban_weight_plan), 0), COALESCE(SUM(farban_weight_fact), 0)
		FROM sales_data
		WHERE record_date = ?
		AND tab_type = 'brand_managers_farban'
		AND data_type = ?`, day, DataTypeManager).
		Scan(&totals.FarbanSalesPlan, &totals.FarbanSalesFact,
			&totals.FarbanWeightPlan, &totals.FarbanWeightFact)
	if err != nil {
		db.logger.Warn("итоги Farban", "error", err)
	}

	totals.MoneyPercent = report.Percent(totals.MoneyPlan, totals.MoneyFact)
	totals.MarginPercent = report.Percent(totals.MarginPlan, totals.MarginFact)
	totals.RealizationPercent = report.Percent(totals.RealizationPlan, totals.RealizationFact)
	totals.BrandPercent = report.Percent(totals.BrandPlan, totals.BrandFact)
	totals.FarbanSalesPercent = report.Percent(totals.FarbanSalesPlan, totals.FarbanSalesFact)
	totals.FarbanWeightPercent = report.Percent(totals.FarbanWeightPlan, totals.FarbanWeightFact)
	return totals
}

// Accessible проверяет доступность базы истории
func (db *HistoryDB) Accessible() bool {
	conn, err := db.open()
	if err != nil {
		return false
	}
	defer conn.Close()
	var one int
	return conn.QueryRow(`SELECT 1`).Scan(&one) == nil
}
