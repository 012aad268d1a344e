package service

import (
	"path/filepath"
	"time"

	"planerka/database"
	"planerka/normalization"
	"planerka/parser"
	"planerka/report"
)

// BuildSnapshot разбирает все файлы-источники и превращает живые таблицы в
// плоские записи центральной базы за указанную дату. Служебные строки
// (заголовки, итоги) в снимок не входят, итоги компании база пересчитывает
// сама при чтении.
func (s *DataService) BuildSnapshot(date time.Time) []database.SalesRecord {
	var records []database.SalesRecord
	target := s.target.Load()

	for _, tab := range parser.Tabs() {
		path := filepath.Join(s.filesDir, tab.File)
		switch tab.Kind {
		case parser.TabManagers:
			result, err := parser.ParsePlan(path, target, tab.PrimaryPlan, report.NoFilter)
			if err != nil {
				s.logger.Warn("снимок: план не разобран", "tab", tab.Name, "error", err)
				continue
			}
			if tab.PrimaryPlan {
				target = result.TargetPercent
			}
			records = append(records, managerRecords(result, tab, date)...)
		case parser.TabBrand:
			table, err := parser.ParseBrandText(path, target, report.NoFilter)
			if err != nil {
				s.logger.Warn("снимок: выгрузка брендов не разобрана", "tab", tab.Name, "error", err)
				continue
			}
			records = append(records, brandRecords(table, tab, date)...)
		case parser.TabFarban:
			table, err := parser.ParseFarban(path, target, report.NoFilter)
			if err != nil {
				s.logger.Warn("снимок: выгрузка Farban не разобрана", "tab", tab.Name, "error", err)
				continue
			}
			records = append(records, farbanRecords(table, tab, date)...)
		}
	}
	return records
}

func baseRecord(tab parser.TabInfo, date time.Time, manager, managerID string, target float64) database.SalesRecord {
	return database.SalesRecord{
		RecordDate:    date,
		Manager:       manager,
		ManagerID:     managerID,
		TabType:       tab.TabType,
		TabIndex:      tab.Index,
		TargetPercent: target,
	}
}

func managerRecords(result *parser.PlanResult, tab parser.TabInfo, date time.Time) []database.SalesRecord {
	var out []database.SalesRecord
	for _, row := range result.Table.Rows {
		if row.Kind != report.RowDirection {
			continue
		}
		rec := baseRecord(tab, date, row.Manager, row.CutManager, result.TargetPercent)
		rec.DataType = database.DataTypeManager
		rec.MoneyPlan, rec.MoneyFact, rec.MoneyPercent = row.Money.Plan, row.Money.Fact, row.Money.Percent
		rec.MarginPlan, rec.MarginFact, rec.MarginPercent = row.Margin.Plan, row.Margin.Fact, row.Margin.Percent
		rec.RealizationPlan, rec.RealizationFact, rec.RealizationPercent =
			row.Realization.Plan, row.Realization.Fact, row.Realization.Percent
		out = append(out, rec)
	}
	for _, sg := range result.SpecialGroups {
		rec := baseRecord(tab, date, sg.Manager, sg.CutManager, result.TargetPercent)
		rec.DataType = database.DataTypeSpecialGroup
		rec.SpecialGroup = sg.Group
		rec.SpecialGroupPlan = sg.Plan
		rec.SpecialGroupFact = sg.Fact
		rec.SpecialGroupPercent = report.Percent(sg.Plan, sg.Fact)
		out = append(out, rec)
	}
	return out
}

func brandRecords(table *report.BrandTable, tab parser.TabInfo, date time.Time) []database.SalesRecord {
	var out []database.SalesRecord
	for _, row := range table.Rows {
		switch row.Kind {
		case report.RowManagerHeader:
			rec := baseRecord(tab, date, row.Manager, normalization.CutKey(row.Manager), table.TargetPercent)
			rec.DataType = database.DataTypeManager
			rec.BrandPlan, rec.BrandFact, rec.BrandPercent =
				row.ManagerPlan, row.ManagerFact, row.ManagerPercent
			out = append(out, rec)
		case report.RowGroup:
			rec := baseRecord(tab, date, row.Manager, normalization.CutKey(row.Manager), table.TargetPercent)
			rec.DataType = database.DataTypeGroup
			rec.GroupName = row.Group
			rec.BrandPlan, rec.BrandFact, rec.BrandPercent =
				row.GroupPlan, row.GroupFact, row.GroupPercent
			out = append(out, rec)
		}
	}
	return out
}

func farbanRecords(table *report.FarbanTable, tab parser.TabInfo, date time.Time) []database.SalesRecord {
	var out []database.SalesRecord
	for _, row := range table.Rows {
		switch row.Kind {
		case report.RowManagerHeader:
			rec := baseRecord(tab, date, row.Manager, normalization.CutKey(row.Manager), table.TargetPercent)
			rec.DataType = database.DataTypeManager
			rec.FarbanSalesPlan, rec.FarbanSalesFact, rec.FarbanSalesPercent =
				row.Sales.Plan, row.Sales.Fact, row.Sales.Percent
			rec.FarbanWeightPlan, rec.FarbanWeightFact, rec.FarbanWeightPercent =
				row.Weight.Plan, row.Weight.Fact, row.Weight.Percent
			out = append(out, rec)
		case report.RowGroup:
			rec := baseRecord(tab, date, row.Manager, normalization.CutKey(row.Manager), table.TargetPercent)
			rec.DataType = database.DataTypeGroup
			rec.GroupName = row.Group
			rec.FarbanSalesPlan, rec.FarbanSalesFact, rec.FarbanSalesPercent =
				row.GroupSales.Plan, row.GroupSales.Fact, row.GroupSales.Percent
			rec.FarbanWeightPlan, rec.FarbanWeightFact, rec.FarbanWeightPercent =
				row.GroupWeight.Plan, row.GroupWeight.Fact, row.GroupWeight.Percent
			out = append(out, rec)
		}
	}
	return out
}
