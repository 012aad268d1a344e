package parser

import (
	"encoding/xml"
	"fmt"
	"os"

	"planerka/report"
)

type farbanDocument struct {
	Managers []farbanManager `xml:"Менеджер"`
}

type farbanManager struct {
	Name       string        `xml:"Манагер,attr"`
	Plan       string        `xml:"План,attr"`
	Sales      string        `xml:"Продажи,attr"`
	PlanWeight string        `xml:"ПланВес,attr"`
	SalesWght  string        `xml:"ПродажиВес,attr"`
	Groups     []farbanGroup `xml:"Группа"`
}

type farbanGroup struct {
	Name       string `xml:"ГруппаФарбен,attr"`
	Plan       string `xml:"План,attr"`
	Sales      string `xml:"Продажи,attr"`
	PlanWeight string `xml:"ПланВес,attr"`
	SalesWght  string `xml:"ПродажиВес,attr"`
}

// ParseFarban разбирает XML выгрузки Farban. У каждого менеджера две
// независимые метрики: продажи в деньгах и вес. Менеджерская строка и
// строки групп идут раздельно, отрисовка различает их по виду строки.
// Повторные фрагменты одного менеджера входят в итог компании один раз,
// считается первый встреченный.
func ParseFarban(path string, target float64, filter report.Filter) (*report.FarbanTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &report.FarbanTable{TargetPercent: target}, nil
	}

	var doc farbanDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("разбор выгрузки Farban %s: %w", path, err)
	}

	rows := []report.FarbanRow{report.FarbanHeaderRow()}
	var salesPlan, salesFact, weightPlan, weightFact float64
	seen := make(map[string]bool)
	for _, m := range doc.Managers {
		name := m.Name
		if name == "" {
			name = report.UnknownLabel
		}
		mSales := neutralMetric(attrFloat(m.Plan), attrFloat(m.Sales))
		mWeight := neutralMetric(attrFloat(m.PlanWeight), attrFloat(m.SalesWght))
		rows = append(rows, report.FarbanRow{
			Kind:    report.RowManagerHeader,
			Manager: name,
			Sales:   mSales,
			Weight:  mWeight,
		})
		if !seen[name] {
			seen[name] = true
			salesPlan += mSales.Plan
			salesFact += mSales.Fact
			weightPlan += mWeight.Plan
			weightFact += mWeight.Fact
		}

		for _, g := range m.Groups {
			groupName := g.Name
			if groupName == "" {
				groupName = report.UnknownLabel
			}
			gSales := groupMetric(attrFloat(g.Plan), attrFloat(g.Sales), target)
			gWeight := groupMetric(attrFloat(g.PlanWeight), attrFloat(g.SalesWght), target)
			rows = append(rows, report.FarbanRow{
				Kind:        report.RowGroup,
				Manager:     name,
				Group:       groupName,
				GroupSales:  gSales,
				GroupWeight: gWeight,
			})
		}
	}

	rows = append(rows, report.FarbanRow{
		Kind:    report.RowCompanyTotal,
		Manager: report.CompanyRowLabel,
		Sales:   groupMetric(salesPlan, salesFact, target),
		Weight:  groupMetric(weightPlan, weightFact, target),
	})

	return &report.FarbanTable{
		TargetPercent: target,
		Rows:          report.FilterFarbanRows(rows, filter),
	}, nil
}

// neutralMetric менеджерский показатель: процент посчитан, статуса нет,
// менеджерские строки не раскрашиваются
func neutralMetric(plan, fact float64) report.Metric {
	return report.Metric{
		Plan:    plan,
		Fact:    fact,
		Percent: report.Percent(plan, fact),
		Status:  report.StatusNeutral,
	}
}

func groupMetric(plan, fact, target float64) report.Metric {
	p := report.Percent(plan, fact)
	return report.Metric{
		Plan:    plan,
		Fact:    fact,
		Percent: p,
		Status:  report.ClassifyGroup(plan, p, target),
	}
}
