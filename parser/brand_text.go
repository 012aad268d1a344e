package parser

import (
	"os"
	"strings"

	"planerka/report"
)

// Подпись строки-заглушки при нечитаемом текстовом источнике.
const unreadableFileLabel = "Не удалось прочитать файл"

type brandGroup struct {
	name string
	plan float64
	fact float64
}

type brandBlock struct {
	manager      string
	declaredPlan float64
	declaredFact float64
	groups       []brandGroup
}

// ParseBrandText разбирает текстовую выгрузку бренд-менеджеров.
//
// Грамматика построчная: строка "Менеджер" открывает блок из четырёх строк
// (имя, общий план, общее выполнение), строка, начинающаяся с "группа",
// открывает блок группы из четырёх строк, приписанный последнему
// встреченному менеджеру. Факт менеджера пересчитывается суммой фактов его
// групп, заявленное общее выполнение сохраняется отдельно и в расчётах не
// участвует. План менеджера берётся из заявленной строки как есть.
func ParseBrandText(path string, target float64, filter report.Filter) (*report.BrandTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &report.BrandTable{
			TargetPercent: target,
			Rows: []report.BrandRow{{
				Kind:    report.RowError,
				Manager: unreadableFileLabel,
			}},
		}, nil
	}

	blocks := scanBrandBlocks(SplitLines(DecodeText(data)))

	rows := []report.BrandRow{report.BrandHeaderRow()}
	var companyPlan, companyFact float64
	for _, b := range blocks {
		// Менеджер без групп строк не даёт и в итог компании не входит.
		if len(b.groups) == 0 {
			continue
		}
		var fact float64
		for _, g := range b.groups {
			fact += g.fact
		}
		percent := report.Percent(b.declaredPlan, fact)
		rows = append(rows, report.BrandRow{
			Kind:           report.RowManagerHeader,
			Manager:        b.manager,
			ManagerPlan:    b.declaredPlan,
			ManagerFact:    fact,
			ManagerPercent: percent,
			ManagerStatus:  report.ClassifyGroup(b.declaredPlan, percent, target),
			DeclaredFact:   b.declaredFact,
		})
		for _, g := range b.groups {
			gp := report.Percent(g.plan, g.fact)
			rows = append(rows, report.BrandRow{
				Kind:         report.RowGroup,
				Manager:      b.manager,
				Group:        g.name,
				GroupPlan:    g.plan,
				GroupFact:    g.fact,
				GroupPercent: gp,
				GroupStatus:  report.ClassifyGroup(g.plan, gp, target),
			})
		}
		companyPlan += b.declaredPlan
		companyFact += fact
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
	}, nil
}

func scanBrandBlocks(lines []string) []brandBlock {
	var blocks []brandBlock
	current := -1
	for i := 0; i < len(lines); {
		line := lines[i]
		switch {
		case line == report.BrandHeaderLabel && i+1 < len(lines):
			b := brandBlock{manager: lines[i+1]}
			if i+2 < len(lines) {
				b.declaredPlan = localeFloat(lines[i+2])
			}
			if i+3 < len(lines) {
				b.declaredFact = localeFloat(lines[i+3])
			}
			blocks = append(blocks, b)
			current = len(blocks) - 1
			i += 4
		case strings.HasPrefix(strings.ToLower(line), "группа") && i+3 < len(lines):
			if current < 0 {
				blocks = append(blocks, brandBlock{manager: "Unknown"})
				current = len(blocks) - 1
			}
			blocks[current].groups = append(blocks[current].groups, brandGroup{
				name: lines[i+1],
				plan: localeFloat(lines[i+2]),
				fact: localeFloat(lines[i+3]),
			})
			i += 4
		default:
			i++
		}
	}
	return blocks
}
