// Пакет parser разбирает исходные файлы выгрузки 1С в канонические таблицы:
// XML с планом продаж, текстовую выгрузку бренд-менеджеров и XML Farban.
package parser

// TabKind семейство вкладки, определяет какой разборщик применяется
type TabKind string

const (
	TabManagers TabKind = "managers"
	TabBrand    TabKind = "brand"
	TabFarban   TabKind = "farban"
)

// TabInfo описание вкладки: исходный файл, тип записей в центральной БД и
// признак первичного файла плана, из которого берётся целевой процент
type TabInfo struct {
	Index       int
	Name        string
	File        string
	TabType     string
	Kind        TabKind
	PrimaryPlan bool
}

// Вкладки отдела закупа (индексы 3 и 6) файла-источника не имеют и в
// реестр не входят.
var tabs = []TabInfo{
	{Index: 0, Name: "Менеджеры ОП", File: "Plan_26BK.xml", TabType: "managers_26bk", Kind: TabManagers, PrimaryPlan: true},
	{Index: 1, Name: "Бренд-менеджеры ОП", File: "Brend_26BK.txt", TabType: "brand_managers_26bk", Kind: TabBrand},
	{Index: 2, Name: "Бренд-менеджеры Farban", File: "Brend_Farben.xml", TabType: "brand_managers_farban", Kind: TabFarban},
	{Index: 4, Name: "Менеджеры Home", File: "Plan.xml", TabType: "managers_home", Kind: TabManagers},
	{Index: 5, Name: "Бренд-менеджеры Home", File: "BrendOX.txt", TabType: "brand_managers_home", Kind: TabBrand},
}

// Tabs возвращает реестр вкладок с файлами-источниками
func Tabs() []TabInfo {
	out := make([]TabInfo, len(tabs))
	copy(out, tabs)
	return out
}

// TabByIndex возвращает описание вкладки по её индексу
func TabByIndex(index int) (TabInfo, bool) {
	for _, t := range tabs {
		if t.Index == index {
			return t, true
		}
	}
	return TabInfo{}, false
}

// TabByType возвращает описание вкладки по типу записей центральной БД
func TabByType(tabType string) (TabInfo, bool) {
	for _, t := range tabs {
		if t.TabType == tabType {
			return t, true
		}
	}
	return TabInfo{}, false
}
