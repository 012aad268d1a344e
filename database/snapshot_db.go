package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SnapshotDB пишущая сторона центральной базы истории. Используется только
// серверным демоном снимков; приложение ходит в базу через HistoryDB.
type SnapshotDB struct {
	conn *sql.DB
}

// OpenSnapshotDB открывает базу истории на запись и создает схему,
// если ее еще нет
func OpenSnapshotDB(path string) (*SnapshotDB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("открытие базы снимков: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("база снимков недоступна: %w", err)
	}
	if _, err := conn.Exec(`PRAGMA busy_timeout = 10000`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("настройка базы снимков: %w", err)
	}
	if err := InitHistorySchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &SnapshotDB{conn: conn}, nil
}

// Close закрывает подключение к базе снимков
func (db *SnapshotDB) Close() error {
	return db.conn.Close()
}

// ReplaceDay записывает снимок за дату. Прежние записи этой даты по
// затронутым типам вкладок удаляются, повторный запуск за тот же день
// записи не дублирует. Справочник менеджеров пополняется актуальными
// именами, дата отмечается в data_dates.
func (db *SnapshotDB) ReplaceDay(date time.Time, records []SalesRecord) error {
	day := date.Format(DateLayout)

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("снимок за %s: %w", day, err)
	}
	defer tx.Rollback()

	tabTypes := make(map[string]bool)
	for _, rec := range records {
		tabTypes[rec.TabType] = true
	}
	for tabType := range tabTypes {
		if _, err := tx.Exec(
			`DELETE FROM sales_data WHERE record_date = ? AND tab_type = ?`,
			day, tabType); err != nil {
			return fmt.Errorf("очистка снимка за %s: %w", day, err)
		}
	}

	insertRecord, err := tx.Prepare(`INSERT INTO sales_data (
			record_date, manager_id, tab_type, tab_index, data_type, group_name,
			target_percent,
			money_plan, money_fact, money_percent,
			margin_plan, margin_fact, margin_percent,
			realization_plan, realization_fact, realization_percent,
			bm_plan, bm_fact, bm_percent,
			farban_sales_plan, farban_sales_fact, farban_sales_percent,
			farban_weight_plan, farban_weight_fact, farban_weight_percent,
			special_group, special_group_plan, special_group_fact, special_group_percent
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("подготовка вставки снимка: %w", err)
	}
	defer insertRecord.Close()

	upsertManager, err := tx.Prepare(`INSERT INTO managers (id, current_name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET current_name = excluded.current_name`)
	if err != nil {
		return fmt.Errorf("подготовка справочника менеджеров: %w", err)
	}
	defer upsertManager.Close()

	for _, rec := range records {
		if _, err := upsertManager.Exec(rec.ManagerID, rec.Manager); err != nil {
			return fmt.Errorf("менеджер %q: %w", rec.Manager, err)
		}
		_, err := insertRecord.Exec(
			day, rec.ManagerID, rec.TabType, rec.TabIndex, rec.DataType, rec.GroupName,
			rec.TargetPercent,
			rec.MoneyPlan, rec.MoneyFact, rec.MoneyPercent,
			rec.MarginPlan, rec.MarginFact, rec.MarginPercent,
			rec.RealizationPlan, rec.RealizationFact, rec.RealizationPercent,
			rec.BrandPlan, rec.BrandFact, rec.BrandPercent,
			rec.FarbanSalesPlan, rec.FarbanSalesFact, rec.FarbanSalesPercent,
			rec.FarbanWeightPlan, rec.FarbanWeightFact, rec.FarbanWeightPercent,
			rec.SpecialGroup, rec.SpecialGroupPlan, rec.SpecialGroupFact, rec.SpecialGroupPercent,
		)
		if err != nil {
			return fmt.Errorf("вставка записи снимка: %w", err)
		}
	}

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO data_dates (date) VALUES (?)`, day); err != nil {
		return fmt.Errorf("отметка даты снимка: %w", err)
	}
	return tx.Commit()
}
