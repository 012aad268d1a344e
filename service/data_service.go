// Пакет service собирает фасад данных: маршрутизация запроса вкладки к
// живому разборщику или к реконструктору истории.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"planerka/database"
	"planerka/history"
	"planerka/parser"
	"planerka/report"
)

// ErrUnknownTab запрошена вкладка без файла-источника.
var ErrUnknownTab = errors.New("неизвестная вкладка")

// Request запрос таблицы: вкладка, отбор, дата (нулевая дата означает
// живые данные) и режим спецгрупп
type Request struct {
	TabIndex      int
	Filter        report.Filter
	Date          time.Time
	SpecialGroups bool
	Merge         bool
}

// DataService фасад данных. Сам ничего не вычисляет: загружает целевой
// процент, выбирает источник и отдает готовую таблицу.
type DataService struct {
	filesDir string
	target   *parser.TargetStore
	historyDB *database.HistoryDB
	logger   *slog.Logger
}

// NewDataService создает фасад данных
func NewDataService(filesDir string, target *parser.TargetStore, historyDB *database.HistoryDB, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{
		filesDir:  filesDir,
		target:    target,
		historyDB: historyDB,
		logger:    logger,
	}
}

// Table возвращает каноническую таблицу по запросу
func (s *DataService) Table(req Request) (report.Table, error) {
	tab, ok := parser.TabByIndex(req.TabIndex)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTab, req.TabIndex)
	}
	if !req.Date.IsZero() {
		return s.historical(tab, req)
	}
	return s.live(tab, req)
}

func (s *DataService) live(tab parser.TabInfo, req Request) (report.Table, error) {
	target := s.target.Load()
	path := filepath.Join(s.filesDir, tab.File)

	switch tab.Kind {
	case parser.TabManagers:
		result, err := parser.ParsePlan(path, target, tab.PrimaryPlan, req.Filter)
		if err != nil {
			return nil, err
		}
		// Первичный план авторитетен: новое значение целевого процента
		// сохраняется сразу, до него дочитываются остальные вкладки.
		if tab.PrimaryPlan && result.TargetPercent != target {
			if err := s.target.Save(result.TargetPercent); err != nil {
				s.logger.Warn("целевой процент не сохранен", "error", err)
			}
		}
		if req.SpecialGroups {
			return report.AggregateSpecialGroups(result.SpecialGroups, result.TargetPercent, req.Merge), nil
		}
		return result.Table, nil
	case parser.TabBrand:
		return parser.ParseBrandText(path, target, req.Filter)
	case parser.TabFarban:
		return parser.ParseFarban(path, target, req.Filter)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTab, req.TabIndex)
	}
}

func (s *DataService) historical(tab parser.TabInfo, req Request) (report.Table, error) {
	records := s.historyDB.RecordsForDate(req.Date, tab.TabType)
	target := recordedTarget(records)
	if target == 0 {
		target = s.target.Load()
	}
	if req.SpecialGroups {
		recs := history.SpecialGroupRecords(records, tab.TabType)
		return report.AggregateSpecialGroups(recs, target, req.Merge), nil
	}
	return history.Reconstruct(records, tab, target, req.Filter), nil
}

// recordedTarget целевой процент, действовавший на дату снимка
func recordedTarget(records []database.SalesRecord) float64 {
	for _, rec := range records {
		if rec.TargetPercent != 0 {
			return rec.TargetPercent
		}
	}
	return 0
}

// Tabs возвращает реестр вкладок
func (s *DataService) Tabs() []parser.TabInfo {
	return parser.Tabs()
}

// DateRange диапазон дат истории
func (s *DataService) DateRange() (time.Time, time.Time, bool) {
	return s.historyDB.DateRange()
}

// AvailableDates даты истории, от новых к старым
func (s *DataService) AvailableDates(limit int) []time.Time {
	return s.historyDB.AvailableDates(limit)
}

// Managers менеджеры, известные истории на дату
func (s *DataService) Managers(date time.Time) []string {
	return s.historyDB.Managers(date)
}

// ManagerHistory записи истории по менеджеру
func (s *DataService) ManagerHistory(name string, from, to time.Time) []database.SalesRecord {
	return s.historyDB.RecordsForManager(name, from, to)
}

// CompanyTotals итоги компании за дату
func (s *DataService) CompanyTotals(date time.Time) database.CompanyTotals {
	return s.historyDB.CompanyTotals(date)
}

// HistoryAccessible проверка доступности базы истории
func (s *DataService) HistoryAccessible() bool {
	return s.historyDB.Accessible()
}
