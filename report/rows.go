package report

// Пакет report содержит каноническую модель таблиц отчёта: типизированные
// строки с явным признаком вида вместо строк-сентинелей в данных.

// Подписи служебных строк. Совпадают с подписями в исходных файлах выгрузки,
// поэтому менять их нельзя: по ним сверяются живые и исторические таблицы.
const (
	HeaderRowLabel    = "Направление"
	BrandHeaderLabel  = "Менеджер"
	CompanyRowLabel   = "Общее по компании"
	ManagerTotalLabel = "Итого по менеджеру"
	UnknownLabel      = "Неизвестно"
)

// Status статус выполнения показателя относительно целевого процента
type Status string

const (
	StatusGood    Status = "good"
	StatusBad     Status = "bad"
	StatusNeutral Status = "neutral"
	// StatusWarning информационная отметка: ячейка показывает плановую
	// величину или заголовок, а не достигнутый результат. Никогда не
	// присваивается настоящим строкам данных.
	StatusWarning Status = "warning"
)

// RowKind вид строки канонической таблицы
type RowKind string

const (
	RowHeader        RowKind = "header"
	RowDirection     RowKind = "direction"
	RowManagerHeader RowKind = "manager_header"
	RowGroup         RowKind = "group_row"
	RowSpecialGroup  RowKind = "special_group"
	RowManagerTotal  RowKind = "manager_total"
	RowCompanyTotal  RowKind = "company_total"
	// RowError единственная информационная строка-заглушка: текстовый
	// источник не удалось прочитать ни в одной кодировке.
	RowError RowKind = "error"
)

// Metric плановый показатель одной метрики: план, факт, процент и статус.
// Процент хранится неокруглённым; округление делает только FormatPercent.
type Metric struct {
	Plan    float64 `json:"plan"`
	Fact    float64 `json:"fact"`
	Percent float64 `json:"percent"`
	Status  Status  `json:"status"`
}

// ManagerRow строка вкладки менеджеров: три семейства показателей
// (деньги, маржа, продажи) по одному направлению либо итогу
type ManagerRow struct {
	Kind        RowKind `json:"kind"`
	Manager     string  `json:"manager"`
	CutManager  string  `json:"cut_manager"`
	Money       Metric  `json:"money"`
	Margin      Metric  `json:"margin"`
	Realization Metric  `json:"realization"`
}

// ManagerTable каноническая таблица вкладки менеджеров
type ManagerTable struct {
	TargetPercent float64      `json:"target_percent"`
	Rows          []ManagerRow `json:"rows"`
}

// BrandRow строка вкладки бренд-менеджеров. Менеджерские поля заполнены
// только у строк manager_header и company_total, групповые — только у
// строк group_row; это разделение используется отрисовкой.
type BrandRow struct {
	Kind           RowKind `json:"kind"`
	Manager        string  `json:"manager"`
	ManagerPlan    float64 `json:"manager_plan"`
	ManagerFact    float64 `json:"manager_fact"`
	ManagerPercent float64 `json:"manager_percent"`
	ManagerStatus  Status  `json:"manager_status"`
	// DeclaredFact заявленное в блоке "Общее выполнение". Менеджерский факт
	// пересчитывается из сумм по группам, заявленное значение сохраняется
	// отдельно и в отображении не участвует.
	DeclaredFact float64 `json:"declared_fact"`
	Group        string  `json:"group"`
	GroupPlan    float64 `json:"group_plan"`
	GroupFact    float64 `json:"group_fact"`
	GroupPercent float64 `json:"group_percent"`
	GroupStatus  Status  `json:"group_status"`
}

// BrandTable каноническая таблица вкладки бренд-менеджеров
type BrandTable struct {
	TargetPercent float64    `json:"target_percent"`
	Rows          []BrandRow `json:"rows"`
}

// FarbanRow строка вкладки Farban: два независимых семейства показателей
// (продажи и вес) на менеджерском и групповом уровнях
type FarbanRow struct {
	Kind        RowKind `json:"kind"`
	Manager     string  `json:"manager"`
	Sales       Metric  `json:"sales"`
	Weight      Metric  `json:"weight"`
	Group       string  `json:"group"`
	GroupSales  Metric  `json:"group_sales"`
	GroupWeight Metric  `json:"group_weight"`
}

// FarbanTable каноническая таблица вкладки Farban
type FarbanTable struct {
	TargetPercent float64     `json:"target_percent"`
	Rows          []FarbanRow `json:"rows"`
}

// SpecialGroupRow строка представления спецгрупп
type SpecialGroupRow struct {
	Kind       RowKind `json:"kind"`
	Manager    string  `json:"manager"`
	CutManager string  `json:"cut_manager"`
	Group      string  `json:"special_group"`
	Plan       float64 `json:"special_group_plan"`
	Fact       float64 `json:"special_group_fact"`
	Percent    float64 `json:"special_group_percent"`
	Status     Status  `json:"special_group_status"`
}

// SpecialGroupTable таблица спецгрупп; Merged=true означает агрегацию по
// короткому ключу менеджера
type SpecialGroupTable struct {
	TargetPercent float64           `json:"target_percent"`
	Merged        bool              `json:"merged"`
	Rows          []SpecialGroupRow `json:"rows"`
}

// SpecialGroupRecord плоская запись (направление × спецгруппа) до расчёта
// процентов; исходный материал для AggregateSpecialGroups
type SpecialGroupRecord struct {
	Manager    string
	CutManager string
	Group      string
	Plan       float64
	Fact       float64
}

// Table общий интерфейс канонических таблиц, возвращаемых фасадом данных
type Table interface {
	Len() int
	Empty() bool
}

func (t *ManagerTable) Len() int       { return len(t.Rows) }
func (t *ManagerTable) Empty() bool    { return t == nil || len(t.Rows) == 0 }
func (t *BrandTable) Len() int         { return len(t.Rows) }
func (t *BrandTable) Empty() bool      { return t == nil || len(t.Rows) == 0 }
func (t *FarbanTable) Len() int        { return len(t.Rows) }
func (t *FarbanTable) Empty() bool     { return t == nil || len(t.Rows) == 0 }
func (t *SpecialGroupTable) Len() int  { return len(t.Rows) }
func (t *SpecialGroupTable) Empty() bool { return t == nil || len(t.Rows) == 0 }

// Kinds возвращает последовательность видов строк таблицы менеджеров.
// Используется при сверке живого разбора с исторической реконструкцией.
func (t *ManagerTable) Kinds() []RowKind {
	kinds := make([]RowKind, 0, len(t.Rows))
	for _, r := range t.Rows {
		kinds = append(kinds, r.Kind)
	}
	return kinds
}
