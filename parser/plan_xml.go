package parser

import (
	"encoding/xml"
	"fmt"
	"os"

	"planerka/normalization"
	"planerka/report"
)

// planDocument корень XML плана продаж. Атрибут "Проц" присутствует только
// в первичном файле плана.
type planDocument struct {
	Target        string             `xml:"Проц,attr"`
	Totals        planTotals         `xml:"Итоги"`
	SpecialGroups []planSpecialGroup `xml:"СпецГруппа"`
}

// planTotals агрегат "Итоги": авторитетные итоги продаж по компании плюс
// вложенные направления
type planTotals struct {
	RealizationPlan string          `xml:"ИтогПланПродажи,attr"`
	RealizationFact string          `xml:"ИтогПродажи,attr"`
	Directions      []planDirection `xml:"Направление"`
}

type planDirection struct {
	Name            string `xml:"Наименование,attr"`
	MoneyPlan       string `xml:"тПланДеньги,attr"`
	MoneyFact       string `xml:"тДеньги,attr"`
	MarginPlan      string `xml:"тПланМаржа,attr"`
	MarginFact      string `xml:"тМаржа,attr"`
	RealizationPlan string `xml:"тПланПродажи,attr"`
	RealizationFact string `xml:"тПродажи,attr"`
}

type planSpecialGroup struct {
	Name       string          `xml:"Наименование,attr"`
	Directions []planDirection `xml:"Направление"`
}

// PlanResult результат разбора файла плана: таблица менеджеров, плоские
// записи спецгрупп и актуальный целевой процент. Для первичного файла
// процент прочитан из документа, сохранить его обязан вызывающий.
type PlanResult struct {
	Table         *report.ManagerTable
	SpecialGroups []report.SpecialGroupRecord
	TargetPercent float64
}

// ParsePlan разбирает XML плана продаж. Нечитаемый файл даёт пустую
// таблицу, некорректная разметка — ошибку: частично разобранный план хуже
// видимого отказа. Отсутствующие атрибуты считаются нулями.
func ParsePlan(path string, target float64, primary bool, filter report.Filter) (*PlanResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &PlanResult{
			Table:         &report.ManagerTable{TargetPercent: target},
			TargetPercent: target,
		}, nil
	}

	var doc planDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("разбор плана %s: %w", path, err)
	}

	if primary {
		target = attrFloat(doc.Target)
	}

	var moneyPlan, moneyFact, marginPlan, marginFact float64
	directions := make([]report.ManagerRow, 0, len(doc.Totals.Directions))
	for _, d := range doc.Totals.Directions {
		display, cut := normalization.Format(d.Name)
		row := report.ManagerRow{
			Kind:        report.RowDirection,
			Manager:     display,
			CutManager:  cut,
			Money:       report.NewMetric(attrFloat(d.MoneyPlan), attrFloat(d.MoneyFact), target),
			Margin:      report.NewMetric(attrFloat(d.MarginPlan), attrFloat(d.MarginFact), target),
			Realization: report.NewMetric(attrFloat(d.RealizationPlan), attrFloat(d.RealizationFact), target),
		}
		directions = append(directions, row)
		moneyPlan += row.Money.Plan
		moneyFact += row.Money.Fact
		marginPlan += row.Margin.Plan
		marginFact += row.Margin.Fact
	}

	// Деньги и маржа складываются из направлений, итог продаж берётся
	// из атрибутов элемента "Итоги" как есть.
	company := report.CompanyManagerRow(
		report.NewMetric(moneyPlan, moneyFact, target),
		report.NewMetric(marginPlan, marginFact, target),
		report.NewMetric(attrFloat(doc.Totals.RealizationPlan), attrFloat(doc.Totals.RealizationFact), target),
	)

	result := &PlanResult{
		Table: &report.ManagerTable{
			TargetPercent: target,
			Rows:          report.AssembleManagerTable(directions, company, filter, target),
		},
		TargetPercent: target,
	}

	for _, sg := range doc.SpecialGroups {
		for _, d := range sg.Directions {
			display, cut := normalization.Format(d.Name)
			result.SpecialGroups = append(result.SpecialGroups, report.SpecialGroupRecord{
				Manager:    display,
				CutManager: cut,
				Group:      sg.Name,
				Plan:       attrFloat(d.RealizationPlan),
				Fact:       attrFloat(d.RealizationFact),
			})
		}
	}
	return result, nil
}
