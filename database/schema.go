package database

import (
	"database/sql"
	"fmt"
)

// InitHistorySchema создает схему центральной базы истории продаж.
// По одной строке sales_data на (дата, менеджер, тип вкладки, запись);
// managers хранит актуальное имя менеджера по стабильному ключу,
// data_dates отмечает даты, за которые снимок уже записан.
func InitHistorySchema(conn *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sales_data (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			record_date TEXT NOT NULL,
			manager_id TEXT NOT NULL,
			tab_type TEXT NOT NULL,
			tab_index INTEGER NOT NULL,
			data_type TEXT NOT NULL,
			group_name TEXT DEFAULT '',
			target_percent REAL DEFAULT 0,
			money_plan REAL DEFAULT 0,
			money_fact REAL DEFAULT 0,
			money_percent REAL DEFAULT 0,
			margin_plan REAL DEFAULT 0,
			margin_fact REAL DEFAULT 0,
			margin_percent REAL DEFAULT 0,
			realization_plan REAL DEFAULT 0,
			realization_fact REAL DEFAULT 0,
			realization_percent REAL DEFAULT 0,
			bm_plan REAL DEFAULT 0,
			bm_fact REAL DEFAULT 0,
			bm_percent REAL DEFAULT 0,
			farban_sales_plan REAL DEFAULT 0,
			farban_sales_fact REAL DEFAULT 0,
			farban_sales_percent REAL DEFAULT 0,
			farban_weight_plan REAL DEFAULT 0,
			farban_weight_fact REAL DEFAULT 0,
			farban_weight_percent REAL DEFAULT 0,
			special_group TEXT DEFAULT '',
			special_group_plan REAL DEFAULT 0,
			special_group_fact REAL DEFAULT 0,
			special_group_percent REAL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS managers (
			id TEXT PRIMARY KEY,
			current_name TEXT NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS data_dates (
			date TEXT PRIMARY KEY,
			processed_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_data_date ON sales_data(record_date)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_data_date_tab ON sales_data(record_date, tab_type)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_data_manager ON sales_data(manager_id)`,
	}
	for _, stmt := range statements {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("создание схемы истории: %w", err)
		}
	}
	return nil
}
