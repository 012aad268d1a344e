// Пакет history восстанавливает канонические таблицы из записей
// центральной базы. Восстановленная таблица обязана быть неотличима от
// результата живого разбора при эквивалентных данных: те же виды строк,
// те же ключи менеджеров, те же числа.
package history

import (
	"strings"

	"planerka/database"
	"planerka/normalization"
	"planerka/parser"
	"planerka/report"
)

// NormalizeFilter отсеивает административные значения отбора, попадающие
// из интерфейса: подпись итога компании, пути с косой чертой и отделы
// закупа отбором не являются.
func NormalizeFilter(filter report.Filter) report.Filter {
	if filter.Kind != report.FilterByCutKey {
		return filter
	}
	key := filter.Key
	if key == report.CompanyRowLabel ||
		strings.Contains(key, "/") ||
		strings.Contains(key, "Отдел") {
		return report.NoFilter
	}
	return filter
}

// ReconstructManagerTable восстанавливает таблицу вкладки менеджеров.
// Короткий ключ всегда выводится заново из сохраненного имени: запись базы
// ключа не хранит, а расхождение с живым разбором молча опустошает отбор.
// Пустой набор записей дает пустую таблицу, это не ошибка.
func ReconstructManagerTable(records []database.SalesRecord, tabType string, target float64, filter report.Filter) *report.ManagerTable {
	filter = NormalizeFilter(filter)

	var directions []report.ManagerRow
	var moneyPlan, moneyFact, marginPlan, marginFact, realPlan, realFact float64
	for _, rec := range records {
		if rec.TabType != tabType || rec.DataType != database.DataTypeManager {
			continue
		}
		display, cut := normalization.Format(rec.Manager)
		row := report.ManagerRow{
			Kind:        report.RowDirection,
			Manager:     display,
			CutManager:  cut,
			Money:       report.NewMetric(rec.MoneyPlan, rec.MoneyFact, target),
			Margin:      report.NewMetric(rec.MarginPlan, rec.MarginFact, target),
			Realization: report.NewMetric(rec.RealizationPlan, rec.RealizationFact, target),
		}
		directions = append(directions, row)
		moneyPlan += row.Money.Plan
		moneyFact += row.Money.Fact
		marginPlan += row.Margin.Plan
		marginFact += row.Margin.Fact
		realPlan += row.Realization.Plan
		realFact += row.Realization.Fact
	}
	if len(directions) == 0 {
		return &report.ManagerTable{TargetPercent: target}
	}

	company := report.CompanyManagerRow(
		report.NewMetric(moneyPlan, moneyFact, target),
		report.NewMetric(marginPlan, marginFact, target),
		report.NewMetric(realPlan, realFact, target),
	)
	return &report.ManagerTable{
		TargetPercent: target,
		Rows:          report.AssembleManagerTable(directions, company, filter, target),
	}
}

// ReconstructBrandTable восстанавливает таблицу бренд-вкладки: раздельные
// строки менеджеров и групп, как у живого разборщика
func ReconstructBrandTable(records []database.SalesRecord, tabType string, target float64, filter report.Filter) *report.BrandTable {
	filter = NormalizeFilter(filter)

	rows := []report.BrandRow{report.BrandHeaderRow()}
	var companyPlan, companyFact float64
	matched := false
	for _, rec := range records {
		if rec.TabType != tabType {
			continue
		}
		switch rec.DataType {
		case database.DataTypeManager:
			matched = true
			percent := report.Percent(rec.BrandPlan, rec.BrandFact)
			rows = append(rows, report.BrandRow{
				Kind:           report.RowManagerHeader,
				Manager:        rec.Manager,
				ManagerPlan:    rec.BrandPlan,
				ManagerFact:    rec.BrandFact,
				ManagerPercent: percent,
				ManagerStatus:  report.ClassifyGroup(rec.BrandPlan, percent, target),
				DeclaredFact:   rec.BrandFact,
			})
			companyPlan += rec.BrandPlan
			companyFact += rec.BrandFact
		case database.DataTypeGroup:
			matched = true
			percent := report.Percent(rec.BrandPlan, rec.BrandFact)
			rows = append(rows, report.BrandRow{
				Kind:         report.RowGroup,
				Manager:      rec.Manager,
				Group:        rec.GroupName,
				GroupPlan:    rec.BrandPlan,
				GroupFact:    rec.BrandFact,
				GroupPercent: percent,
				GroupStatus:  report.ClassifyGroup(rec.BrandPlan, percent, target),
			})
		}
	}
	if !matched {
		return &report.BrandTable{TargetPercent: target}
	}

	companyPercent := report.Percent(companyPlan, companyFact)
	rows = append(rows, report.BrandRow{
		Kind:           report.RowCompanyTotal,
		Manager:        report.CompanyRowLabel,
		ManagerPlan:    companyPlan,
		ManagerFact:    companyFact,
		ManagerPercent: companyPercent,
		ManagerStatus:  report.ClassifyGroup(companyPlan, companyPercent, target),
	})
	return &report.BrandTable{
		TargetPercent: target,
		Rows:          report.FilterBrandRows(rows, filter),
	}
}

// ReconstructFarbanTable восстанавливает таблицу вкладки Farban с обеими
// метриками; повторные фрагменты менеджера входят в итог компании один раз
func ReconstructFarbanTable(records []database.SalesRecord, target float64, filter report.Filter) *report.FarbanTable {
	filter = NormalizeFilter(filter)

	rows := []report.FarbanRow{report.FarbanHeaderRow()}
	var salesPlan, salesFact, weightPlan, weightFact float64
	seen := make(map[string]bool)
	matched := false
	for _, rec := range records {
		if rec.TabType != "brand_managers_farban" {
			continue
		}
		switch rec.DataType {
		case database.DataTypeManager:
			matched = true
			rows = append(rows, report.FarbanRow{
				Kind:    report.RowManagerHeader,
				Manager: rec.Manager,
				Sales: report.Metric{
					Plan:    rec.FarbanSalesPlan,
					Fact:    rec.FarbanSalesFact,
					Percent: report.Percent(rec.FarbanSalesPlan, rec.FarbanSalesFact),
					Status:  report.StatusNeutral,
				},
				Weight: report.Metric{
					Plan:    rec.FarbanWeightPlan,
					Fact:    rec.FarbanWeightFact,
					Percent: report.Percent(rec.FarbanWeightPlan, rec.FarbanWeightFact),
					Status:  report.StatusNeutral,
				},
			})
			if !seen[rec.Manager] {
				seen[rec.Manager] = true
				salesPlan += rec.FarbanSalesPlan
				salesFact += rec.FarbanSalesFact
				weightPlan += rec.FarbanWeightPlan
				weightFact += rec.FarbanWeightFact
			}
		case database.DataTypeGroup:
			matched = true
			rows = append(rows, report.FarbanRow{
				Kind:        report.RowGroup,
				Manager:     rec.Manager,
				Group:       rec.GroupName,
				GroupSales:  farbanGroupMetric(rec.FarbanSalesPlan, rec.FarbanSalesFact, target),
				GroupWeight: farbanGroupMetric(rec.FarbanWeightPlan, rec.FarbanWeightFact, target),
			})
		}
	}
	if !matched {
		return &report.FarbanTable{TargetPercent: target}
	}

	rows = append(rows, report.FarbanRow{
		Kind:    report.RowCompanyTotal,
		Manager: report.CompanyRowLabel,
		Sales:   farbanGroupMetric(salesPlan, salesFact, target),
		Weight:  farbanGroupMetric(weightPlan, weightFact, target),
	})
	return &report.FarbanTable{
		TargetPercent: target,
		Rows:          report.FilterFarbanRows(rows, filter),
	}
}

func farbanGroupMetric(plan, fact, target float64) report.Metric {
	p := report.Percent(plan, fact)
	return report.Metric{Plan: plan, Fact: fact, Percent: p, Status: report.ClassifyGroup(plan, p, target)}
}

// SpecialGroupRecords извлекает записи спецгрупп вкладки для агрегатора
func SpecialGroupRecords(records []database.SalesRecord, tabType string) []report.SpecialGroupRecord {
	var out []report.SpecialGroupRecord
	for _, rec := range records {
		if rec.TabType != tabType || rec.DataType != database.DataTypeSpecialGroup {
			continue
		}
		display, cut := normalization.Format(rec.Manager)
		out = append(out, report.SpecialGroupRecord{
			Manager:    display,
			CutManager: cut,
			Group:      rec.SpecialGroup,
			Plan:       rec.SpecialGroupPlan,
			Fact:       rec.SpecialGroupFact,
		})
	}
	return out
}

// Reconstruct восстанавливает таблицу вкладки по ее описанию
func Reconstruct(records []database.SalesRecord, tab parser.TabInfo, target float64, filter report.Filter) report.Table {
	switch tab.Kind {
	case parser.TabBrand:
		return ReconstructBrandTable(records, tab.TabType, target, filter)
	case parser.TabFarban:
		return ReconstructFarbanTable(records, target, filter)
	default:
		return ReconstructManagerTable(records, tab.TabType, target, filter)
	}
}
