package report

// Сборка служебных строк и применение отбора вынесены сюда, потому что
// живые разборщики и реконструктор истории обязаны собирать таблицы
// одинаково вплоть до байтов в ключах.

// ManagerHeaderRow строка-заголовок вкладки менеджеров
func ManagerHeaderRow() ManagerRow {
	m := Metric{Status: StatusWarning}
	return ManagerRow{
		Kind:        RowHeader,
		Manager:     HeaderRowLabel,
		Money:       m,
		Margin:      m,
		Realization: m,
	}
}

// CompanyManagerRow итоговая строка компании вкладки менеджеров
func CompanyManagerRow(money, margin, realization Metric) ManagerRow {
	return ManagerRow{
		Kind:        RowCompanyTotal,
		Manager:     CompanyRowLabel,
		CutManager:  CompanyRowLabel,
		Money:       money,
		Margin:      margin,
		Realization: realization,
	}
}

// AssembleManagerTable применяет отбор и собирает таблицу вкладки
// менеджеров: заголовок первой строкой, итог компании последней. Строка
// "Итого по менеджеру" появляется только при отборе по ключу, под который
// попало больше одного направления.
func AssembleManagerTable(directions []ManagerRow, company ManagerRow, filter Filter, target float64) []ManagerRow {
	header := ManagerHeaderRow()

	switch filter.Kind {
	case FilterHeader:
		return []ManagerRow{header, company}
	case FilterCompany:
		return []ManagerRow{company, header}
	case FilterByCutKey:
		rows := []ManagerRow{header}
		var matched []ManagerRow
		for _, d := range directions {
			if d.CutManager == filter.Key {
				matched = append(matched, d)
			}
		}
		rows = append(rows, matched...)
		if len(matched) > 1 {
			rows = append(rows, managerTotalRow(matched, filter.Key, target))
		}
		return append(rows, company)
	default:
		rows := make([]ManagerRow, 0, len(directions)+2)
		rows = append(rows, header)
		rows = append(rows, directions...)
		return append(rows, company)
	}
}

func managerTotalRow(matched []ManagerRow, cutKey string, target float64) ManagerRow {
	var moneyPlan, moneyFact, marginPlan, marginFact, realPlan, realFact float64
	for _, m := range matched {
		moneyPlan += m.Money.Plan
		moneyFact += m.Money.Fact
		marginPlan += m.Margin.Plan
		marginFact += m.Margin.Fact
		realPlan += m.Realization.Plan
		realFact += m.Realization.Fact
	}
	return ManagerRow{
		Kind:        RowManagerTotal,
		Manager:     ManagerTotalLabel,
		CutManager:  cutKey,
		Money:       NewMetric(moneyPlan, moneyFact, target),
		Margin:      NewMetric(marginPlan, marginFact, target),
		Realization: NewMetric(realPlan, realFact, target),
	}
}

// BrandHeaderRow строка-заголовок вкладок бренд-менеджеров
func BrandHeaderRow() BrandRow {
	return BrandRow{Kind: RowHeader, Manager: BrandHeaderLabel, ManagerStatus: StatusWarning}
}

// FilterBrandRows отбор строк бренд-вкладки по имени менеджера. Имя,
// совпадающее со служебной подписью, означает отсутствие отбора.
func FilterBrandRows(rows []BrandRow, filter Filter) []BrandRow {
	if filter.Kind != FilterByCutKey || filter.Key == BrandHeaderLabel || filter.Key == CompanyRowLabel {
		return rows
	}
	out := make([]BrandRow, 0, len(rows))
	for _, r := range rows {
		if r.Kind == RowHeader || r.Kind == RowCompanyTotal || r.Manager == filter.Key {
			out = append(out, r)
		}
	}
	return out
}

// FarbanHeaderRow строка-заголовок вкладки Farban
func FarbanHeaderRow() FarbanRow {
	m := Metric{Status: StatusWarning}
	return FarbanRow{Kind: RowHeader, Manager: BrandHeaderLabel, Sales: m, Weight: m}
}

// FilterFarbanRows отбор строк вкладки Farban по имени менеджера
func FilterFarbanRows(rows []FarbanRow, filter Filter) []FarbanRow {
	if filter.Kind != FilterByCutKey || filter.Key == BrandHeaderLabel || filter.Key == CompanyRowLabel {
		return rows
	}
	out := make([]FarbanRow, 0, len(rows))
	for _, r := range rows {
		if r.Kind == RowHeader || r.Kind == RowCompanyTotal || r.Manager == filter.Key {
			out = append(out, r)
		}
	}
	return out
}
