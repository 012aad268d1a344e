// Пакет server предоставляет HTTP-доступ к каноническим таблицам отчета и
// истории продаж. Слои отображения в состав сервера не входят, наружу
// отдается только JSON.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"planerka/database"
	"planerka/report"
	"planerka/service"
)

// Handler обработчики HTTP-запросов сервера отчетов
type Handler struct {
	data   *service.DataService
	logger *slog.Logger
}

// NewHandler создает обработчики поверх фасада данных
func NewHandler(data *service.DataService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{data: data, logger: logger}
}

// Health проверка живости сервера и доступности базы истории
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"history_accessible": h.data.HistoryAccessible(),
	})
}

// Tabs возвращает реестр вкладок
func (h *Handler) Tabs(c *gin.Context) {
	type tabView struct {
		Index   int    `json:"index"`
		Name    string `json:"name"`
		File    string `json:"file"`
		TabType string `json:"tab_type"`
	}
	var out []tabView
	for _, t := range h.data.Tabs() {
		out = append(out, tabView{Index: t.Index, Name: t.Name, File: t.File, TabType: t.TabType})
	}
	c.JSON(http.StatusOK, gin.H{"tabs": out})
}

// Table возвращает каноническую таблицу вкладки. Параметры запроса:
// filter — короткий ключ менеджера, date — дата истории (ГГГГ-ММ-ДД,
// пусто означает живые данные), special_groups и merge — режим спецгрупп.
func (h *Handler) Table(c *gin.Context) {
	tabIndex, err := strconv.Atoi(c.Param("tab"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный индекс вкладки"})
		return
	}

	req := service.Request{TabIndex: tabIndex}
	if key := c.Query("filter"); key != "" {
		req.Filter = report.ByCutKey(key)
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse(database.DateLayout, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "некорректная дата, ожидается ГГГГ-ММ-ДД"})
			return
		}
		req.Date = date
	}
	req.SpecialGroups = c.Query("special_groups") == "true"
	req.Merge = c.Query("merge") == "true"

	table, err := h.data.Table(req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrUnknownTab) {
			status = http.StatusNotFound
		}
		h.logger.Warn("таблица не построена", "tab", tabIndex, "error", err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"table": table})
}

// HistoryRange диапазон дат, за которые есть снимки
func (h *Handler) HistoryRange(c *gin.Context) {
	min, max, ok := h.data.DateRange()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"min_date": nil, "max_date": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"min_date": min.Format(database.DateLayout),
		"max_date": max.Format(database.DateLayout),
	})
}

// HistoryDates даты со снимками, от новых к старым
func (h *Handler) HistoryDates(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	dates := h.data.AvailableDates(limit)
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(database.DateLayout))
	}
	c.JSON(http.StatusOK, gin.H{"dates": out})
}

// HistoryManagers менеджеры, известные базе истории
func (h *Handler) HistoryManagers(c *gin.Context) {
	var date time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse(database.DateLayout, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "некорректная дата, ожидается ГГГГ-ММ-ДД"})
			return
		}
		date = parsed
	}
	names := h.data.Managers(date)
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"managers": names})
}

// ManagerHistory записи истории одного менеджера
func (h *Handler) ManagerHistory(c *gin.Context) {
	name := c.Param("name")
	var from, to time.Time
	if s := c.Query("from"); s != "" {
		parsed, err := time.Parse(database.DateLayout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "некорректная дата from"})
			return
		}
		from = parsed
	}
	if s := c.Query("to"); s != "" {
		parsed, err := time.Parse(database.DateLayout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "некорректная дата to"})
			return
		}
		to = parsed
	}
	records := h.data.ManagerHistory(name, from, to)
	if records == nil {
		records = []database.SalesRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"manager": name, "records": records})
}

// CompanyTotals итоги компании за дату
func (h *Handler) CompanyTotals(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не указана дата"})
		return
	}
	date, err := time.Parse(database.DateLayout, dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректная дата, ожидается ГГГГ-ММ-ДД"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":   dateStr,
		"totals": h.data.CompanyTotals(date),
	})
}
