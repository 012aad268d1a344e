package parser

import (
	"os"
	"path/filepath"
	"testing"

	"planerka/report"
)

const planFixture = `<?xml version="1.0" encoding="UTF-8"?>
<ПланПродаж Проц="80">
	<Итоги ИтогПланПродажи="1000" ИтогПродажи="900">
		<Направление Наименование="Алена Морозько (Енисейское)" тПланДеньги="100" тДеньги="90" тПланМаржа="50" тМаржа="45" тПланПродажи="200" тПродажи="180"/>
		<Направление Наименование="Алена Морозько (Ангарское)" тПланДеньги="60" тДеньги="30" тПланМаржа="30" тМаржа="10" тПланПродажи="100" тПродажи="40"/>
		<Направление Наименование="Петров Сидор" тПланДеньги="0" тДеньги="20" тПланМаржа="40" тМаржа="40" тПланПродажи="300" тПродажи="330"/>
	</Итоги>
	<СпецГруппа Наименование="Краски">
		<Направление Наименование="Алена Морозько (Енисейское)" тПланПродажи="70" тПродажи="63"/>
		<Направление Наименование="Петров Сидор" тПланПродажи="30" тПродажи="15"/>
	</СпецГруппа>
</ПланПродаж>`

func writePlanFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Plan_26BK.xml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestParsePlanUnfiltered(t *testing.T) {
	path := writePlanFixture(t, planFixture)
	result, err := ParsePlan(path, 0, true, report.NoFilter)
	if err != nil {
		t.Fatalf("ParsePlan() failed: %v", err)
	}

	if result.TargetPercent != 80 {
		t.Errorf("target percent = %v, want 80 from primary document", result.TargetPercent)
	}

	rows := result.Table.Rows
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5 (header, 3 directions, company)", len(rows))
	}
	if rows[0].Kind != report.RowHeader || rows[0].Manager != report.HeaderRowLabel {
		t.Errorf("first row = %+v, want header", rows[0])
	}
	last := rows[len(rows)-1]
	if last.Kind != report.RowCompanyTotal || last.Manager != report.CompanyRowLabel {
		t.Errorf("last row = %+v, want company total", last)
	}

	// Деньги и маржа складываются из направлений.
	if last.Money.Plan != 160 || last.Money.Fact != 140 {
		t.Errorf("company money = %v/%v, want 160/140", last.Money.Plan, last.Money.Fact)
	}
	if last.Margin.Plan != 120 || last.Margin.Fact != 95 {
		t.Errorf("company margin = %v/%v, want 120/95", last.Margin.Plan, last.Margin.Fact)
	}
	// Итог продаж читается из атрибутов "Итоги", не из суммы направлений.
	if last.Realization.Plan != 1000 || last.Realization.Fact != 900 {
		t.Errorf("company realization = %v/%v, want 1000/900 from totals element", last.Realization.Plan, last.Realization.Fact)
	}

	first := rows[1]
	if first.Kind != report.RowDirection {
		t.Errorf("row 1 kind = %v, want direction", first.Kind)
	}
	if first.CutManager != "Алена Морозько" {
		t.Errorf("row 1 cut = %q, want normalized key", first.CutManager)
	}
	if first.Money.Percent != 90 || first.Money.Status != report.StatusGood {
		t.Errorf("row 1 money = %v/%v, want 90/good", first.Money.Percent, first.Money.Status)
	}

	// Нулевой план денег у третьего направления дает нейтральный статус.
	third := rows[3]
	if third.Money.Percent != 0 || third.Money.Status != report.StatusNeutral {
		t.Errorf("zero-plan money = %v/%v, want 0/neutral", third.Money.Percent, third.Money.Status)
	}
}

func TestParsePlanFilterByCutKey(t *testing.T) {
	path := writePlanFixture(t, planFixture)
	result, err := ParsePlan(path, 0, true, report.ByCutKey("Алена Морозько"))
	if err != nil {
		t.Fatalf("ParsePlan() failed: %v", err)
	}

	rows := result.Table.Rows
	// Заголовок, два направления, итог по менеджеру, итог компании.
	if len(rows) != 5 {
		t.Fatalf("filtered rows = %d, want 5", len(rows))
	}
	for _, r := range rows[1:3] {
		if r.Kind != report.RowDirection || r.CutManager != "Алена Морозько" {
			t.Errorf("filtered direction = %+v, want cut key match", r)
		}
	}
	total := rows[3]
	if total.Kind != report.RowManagerTotal || total.Manager != report.ManagerTotalLabel {
		t.Fatalf("row 3 = %+v, want manager total", total)
	}
	if total.Money.Plan != 160 || total.Money.Fact != 120 {
		t.Errorf("manager total money = %v/%v, want 160/120", total.Money.Plan, total.Money.Fact)
	}
	if total.Money.Percent != 75 || total.Money.Status != report.StatusBad {
		t.Errorf("manager total money percent = %v/%v, want 75/bad", total.Money.Percent, total.Money.Status)
	}
	if rows[4].Kind != report.RowCompanyTotal {
		t.Errorf("last filtered row = %+v, want company total", rows[4])
	}
}

func TestParsePlanFilterSingleDirection(t *testing.T) {
	path := writePlanFixture(t, planFixture)
	result, err := ParsePlan(path, 0, true, report.ByCutKey("Петров Сидор"))
	if err != nil {
		t.Fatalf("ParsePlan() failed: %v", err)
	}

	// Одно направление: строки "Итого по менеджеру" быть не должно.
	for _, r := range result.Table.Rows {
		if r.Kind == report.RowManagerTotal {
			t.Fatalf("unexpected manager total for single direction: %+v", r)
		}
	}
	if len(result.Table.Rows) != 3 {
		t.Errorf("rows = %d, want 3 (header, direction, company)", len(result.Table.Rows))
	}
}

func TestParsePlanServiceFilters(t *testing.T) {
	path := writePlanFixture(t, planFixture)

	headerOnly, err := ParsePlan(path, 0, true, report.Filter{Kind: report.FilterHeader})
	if err != nil {
		t.Fatalf("ParsePlan() failed: %v", err)
	}
	if len(headerOnly.Table.Rows) != 2 ||
		headerOnly.Table.Rows[0].Kind != report.RowHeader ||
		headerOnly.Table.Rows[1].Kind != report.RowCompanyTotal {
		t.Errorf("header filter rows = %+v, want header then company", headerOnly.Table.Rows)
	}

	companyFirst, err := ParsePlan(path, 0, true, report.Filter{Kind: report.FilterCompany})
	if err != nil {
		t.Fatalf("ParsePlan() failed: %v", err)
	}
	if len(companyFirst.Table.Rows) != 2 ||
		companyFirst.Table.Rows[0].Kind != report.RowCompanyTotal ||
		companyFirst.Table.Rows[1].Kind != report.RowHeader {
		t.Errorf("company filter rows = %+v, want company then header", companyFirst.Table.Rows)
	}
}

func TestParsePlanSpecialGroups(t *testing.T) {
	path := writePlanFixture(t, planFixture)
	result, err := ParsePlan(path, 0, true, report.NoFilter)
	if err != nil {
		t.Fatalf("ParsePlan() failed: %v", err)
	}

	if len(result.SpecialGroups) != 2 {
		t.Fatalf("special group records = %d, want 2", len(result.SpecialGroups))
	}
	rec := result.SpecialGroups[0]
	if rec.Group != "Краски" || rec.Plan != 70 || rec.Fact != 63 {
		t.Errorf("special group record = %+v, want Краски 70/63", rec)
	}
	if rec.CutManager != "Алена Морозько" {
		t.Errorf("special group cut = %q, want normalized key", rec.CutManager)
	}
}

func TestParsePlanNonPrimaryKeepsSharedTarget(t *testing.T) {
	content := `<ПланПродаж><Итоги ИтогПланПродажи="10" ИтогПродажи="5"></Итоги></ПланПродаж>`
	path := writePlanFixture(t, content)
	result, err := ParsePlan(path, 65, false, report.NoFilter)
	if err != nil {
		t.Fatalf("ParsePlan() failed: %v", err)
	}
	if result.TargetPercent != 65 {
		t.Errorf("non-primary target = %v, want shared value 65", result.TargetPercent)
	}
}

func TestParsePlanMalformedXML(t *testing.T) {
	path := writePlanFixture(t, `<ПланПродаж><Итоги`)
	if _, err := ParsePlan(path, 0, true, report.NoFilter); err == nil {
		t.Fatal("expected error for malformed XML, got nil")
	}
}

func TestParsePlanMissingFile(t *testing.T) {
	result, err := ParsePlan(filepath.Join(t.TempDir(), "absent.xml"), 40, true, report.NoFilter)
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if !result.Table.Empty() {
		t.Errorf("missing file table rows = %d, want empty", len(result.Table.Rows))
	}
}

func TestParsePlanMissingAttributes(t *testing.T) {
	content := `<ПланПродаж Проц="50">
	<Итоги>
		<Направление Наименование="Ковалев Петр"/>
	</Итоги>
</ПланПродаж>`
	path := writePlanFixture(t, content)
	result, err := ParsePlan(path, 0, true, report.NoFilter)
	if err != nil {
		t.Fatalf("ParsePlan() failed: %v", err)
	}
	row := result.Table.Rows[1]
	if row.Money.Plan != 0 || row.Margin.Plan != 0 || row.Realization.Plan != 0 {
		t.Errorf("missing attributes row = %+v, want zeros", row)
	}
	if row.Money.Status != report.StatusNeutral {
		t.Errorf("missing attributes status = %v, want neutral", row.Money.Status)
	}
}
