package report

import (
	"fmt"
	"math"
)

// Percent вычисляет процент выполнения плана. Нулевой или некорректный план
// даёт 0, а не ошибку деления: строки с нулевым планом легальны и
// классифицируются нейтрально.
func Percent(plan, fact float64) float64 {
	if plan == 0 || math.IsNaN(plan) || math.IsNaN(fact) {
		return 0
	}
	return fact / plan * 100
}

// NewMetric собирает показатель с вычисленным процентом и статусом
// по политике направлений
func NewMetric(plan, fact, target float64) Metric {
	p := Percent(plan, fact)
	return Metric{Plan: plan, Fact: fact, Percent: p, Status: ClassifyDirection(plan, p, target)}
}

// ClassifyDirection политика статусов для направлений и итоговых строк:
// нулевой план нейтрален, иначе сравнение процента с целевым
func ClassifyDirection(plan, percent, target float64) Status {
	if plan == 0 {
		return StatusNeutral
	}
	if percent >= target {
		return StatusGood
	}
	return StatusBad
}

// ClassifyGroup политика статусов для товарных групп. Отличается от
// направлений только тем, что применяется к групповым строкам бренд-вкладок;
// правило нулевого плана то же.
func ClassifyGroup(plan, percent, target float64) Status {
	if plan == 0 {
		return StatusNeutral
	}
	if percent >= target {
		return StatusGood
	}
	return StatusBad
}

// FormatPercent единственная точка преобразования процента в строку
// отображения: округление до одного знака
func FormatPercent(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}
