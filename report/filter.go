package report

// FilterKind режим отбора строк при построении таблицы
type FilterKind int

const (
	// FilterNone все строки без отбора
	FilterNone FilterKind = iota
	// FilterByCutKey строки одного менеджера по короткому ключу
	FilterByCutKey
	// FilterHeader только строка-заголовок
	FilterHeader
	// FilterCompany строка-заголовок плюс итог по компании
	FilterCompany
)

// Filter отбор строк таблицы. Key заполнен только для FilterByCutKey.
type Filter struct {
	Kind FilterKind
	Key  string
}

// NoFilter пустой отбор
var NoFilter = Filter{Kind: FilterNone}

// ByCutKey отбор по короткому ключу менеджера
func ByCutKey(key string) Filter {
	return Filter{Kind: FilterByCutKey, Key: key}
}

func (f Filter) String() string {
	switch f.Kind {
	case FilterByCutKey:
		return "cut_key:" + f.Key
	case FilterHeader:
		return "header"
	case FilterCompany:
		return "company"
	default:
		return "none"
	}
}
