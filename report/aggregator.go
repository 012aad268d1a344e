package report

import (
	"sort"

	"planerka/normalization"
)

// AggregateSpecialGroups строит таблицу спецгрупп из плоских записей
// (направление × спецгруппа). Имена менеджеров нормализуются повторно:
// записи приходят и от живого парсера, и от реконструктора истории, и
// единый ключ обязан получиться в обоих случаях.
//
// После детальных строк добавляется по одной итоговой строке компании на
// каждую спецгруппу. В режиме merge все строки, итоговые включительно,
// складываются по паре (короткий ключ, группа) и менеджер заменяется
// коротким ключом.
func AggregateSpecialGroups(records []SpecialGroupRecord, target float64, merge bool) *SpecialGroupTable {
	table := &SpecialGroupTable{TargetPercent: target, Merged: merge}
	if len(records) == 0 {
		return table
	}

	type groupTotal struct {
		plan float64
		fact float64
	}
	groupOrder := make([]string, 0, 4)
	totals := make(map[string]*groupTotal)

	for _, rec := range records {
		display, cut := normalization.Format(rec.Manager)
		p := Percent(rec.Plan, rec.Fact)
		table.Rows = append(table.Rows, SpecialGroupRow{
			Kind:       RowSpecialGroup,
			Manager:    display,
			CutManager: cut,
			Group:      rec.Group,
			Plan:       rec.Plan,
			Fact:       rec.Fact,
			Percent:    p,
			Status:     ClassifyGroup(rec.Plan, p, target),
		})
		t, ok := totals[rec.Group]
		if !ok {
			t = &groupTotal{}
			totals[rec.Group] = t
			groupOrder = append(groupOrder, rec.Group)
		}
		t.plan += rec.Plan
		t.fact += rec.Fact
	}

	for _, name := range groupOrder {
		t := totals[name]
		p := Percent(t.plan, t.fact)
		table.Rows = append(table.Rows, SpecialGroupRow{
			Kind:       RowCompanyTotal,
			Manager:    CompanyRowLabel,
			CutManager: CompanyRowLabel,
			Group:      name,
			Plan:       t.plan,
			Fact:       t.fact,
			Percent:    p,
			Status:     ClassifyGroup(t.plan, p, target),
		})
	}

	if !merge {
		return table
	}
	return mergeByCutKey(table.Rows, target)
}

// mergeByCutKey сводный режим: суммирование по (короткий ключ, группа),
// строки упорядочены по ключу и группе
func mergeByCutKey(rows []SpecialGroupRow, target float64) *SpecialGroupTable {
	type key struct {
		cut   string
		group string
	}
	merged := make(map[key]*SpecialGroupRow)
	keys := make([]key, 0, len(rows))
	for _, row := range rows {
		k := key{cut: row.CutManager, group: row.Group}
		if m, ok := merged[k]; ok {
			m.Plan += row.Plan
			m.Fact += row.Fact
			continue
		}
		kind := RowSpecialGroup
		if row.CutManager == CompanyRowLabel {
			kind = RowCompanyTotal
		}
		merged[k] = &SpecialGroupRow{
			Kind:       kind,
			Manager:    row.CutManager,
			CutManager: row.CutManager,
			Group:      row.Group,
			Plan:       row.Plan,
			Fact:       row.Fact,
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].cut != keys[j].cut {
			return keys[i].cut < keys[j].cut
		}
		return keys[i].group < keys[j].group
	})

	table := &SpecialGroupTable{TargetPercent: target, Merged: true}
	for _, k := range keys {
		r := merged[k]
		r.Percent = Percent(r.Plan, r.Fact)
		// В сводном режиме нулевой целевой процент гасит раскраску.
		if target == 0 || r.Plan == 0 {
			r.Status = StatusNeutral
		} else if r.Percent >= target {
			r.Status = StatusGood
		} else {
			r.Status = StatusBad
		}
		table.Rows = append(table.Rows, *r)
	}
	return table
}
