package database

import "time"

// Типы записей sales_data.
const (
	DataTypeManager      = "manager"
	DataTypeGroup        = "group"
	DataTypeSpecialGroup = "special_group"
)

// Формат дат в центральной базе.
const DateLayout = "2006-01-02"

// SalesRecord плоская запись истории продаж: полный набор метрик всех
// семейств вкладок, заполняются только колонки своего семейства
type SalesRecord struct {
	RecordDate time.Time `json:"record_date"`
	Manager    string    `json:"manager"`
	ManagerID  string    `json:"manager_id"`
	TabType    string    `json:"tab_type"`
	TabIndex   int       `json:"tab_index"`
	DataType   string    `json:"data_type"`
	GroupName  string    `json:"group_name"`

	TargetPercent float64 `json:"target_percent"`

	MoneyPlan          float64 `json:"money_plan"`
	MoneyFact          float64 `json:"money_fact"`
	MoneyPercent       float64 `json:"money_percent"`
	MarginPlan         float64 `json:"margin_plan"`
	MarginFact         float64 `json:"margin_fact"`
	MarginPercent      float64 `json:"margin_percent"`
	RealizationPlan    float64 `json:"realization_plan"`
	RealizationFact    float64 `json:"realization_fact"`
	RealizationPercent float64 `json:"realization_percent"`

	BrandPlan    float64 `json:"bm_plan"`
	BrandFact    float64 `json:"bm_fact"`
	BrandPercent float64 `json:"bm_percent"`

	FarbanSalesPlan     float64 `json:"farban_sales_plan"`
	FarbanSalesFact     float64 `json:"farban_sales_fact"`
	FarbanSalesPercent  float64 `json:"farban_sales_percent"`
	FarbanWeightPlan    float64 `json:"farban_weight_plan"`
	FarbanWeightFact    float64 `json:"farban_weight_fact"`
	FarbanWeightPercent float64 `json:"farban_weight_percent"`

	SpecialGroup        string  `json:"special_group"`
	SpecialGroupPlan    float64 `json:"special_group_plan"`
	SpecialGroupFact    float64 `json:"special_group_fact"`
	SpecialGroupPercent float64 `json:"special_group_percent"`
}

// CompanyTotals суммарные показатели компании за дату по всем семействам
// вкладок, проценты пересчитаны от суммарных планов
type CompanyTotals struct {
	MoneyPlan          float64 `json:"money_plan"`
	MoneyFact          float64 `json:"money_fact"`
	MoneyPercent       float64 `json:"money_percent"`
	MarginPlan         float64 `json:"margin_plan"`
	MarginFact         float64 `json:"margin_fact"`
	MarginPercent      float64 `json:"margin_percent"`
	RealizationPlan    float64 `json:"realization_plan"`
	RealizationFact    float64 `json:"realization_fact"`
	RealizationPercent float64 `json:"realization_percent"`

	BrandPlan    float64 `json:"bm_plan"`
	BrandFact    float64 `json:"bm_fact"`
	BrandPercent float64 `json:"bm_percent"`

	FarbanSalesPlan     float64 `json:"farban_sales_plan"`
	FarbanSalesFact     float64 `json:"farban_sales_fact"`
	FarbanSalesPercent  float64 `json:"farban_sales_percent"`
	FarbanWeightPlan    float64 `json:"farban_weight_plan"`
	FarbanWeightFact    float64 `json:"farban_weight_fact"`
	FarbanWeightPercent float64 `json:"farban_weight_percent"`
}
