package handler

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"

	"github.com/taskboard/taskboard-api/internal/domain"
	"github.com/taskboard/taskboard-api/internal/logger"
	"github.com/taskboard/taskboard-api/internal/query"
	"github.com/taskboard/taskboard-api/internal/service"
	"github.com/taskboard/taskboard-api/internal/service/serviceutils"
)

// ExportLayout is the optional YAML-configurable sheet layout.
type ExportLayout struct {
	SheetName   string             `yaml:"sheet_name"`
	ColumnWidth float64            `yaml:"column_width"`
	Widths      map[string]float64 `yaml:"widths"`
}

func defaultExportLayout() ExportLayout {
	return ExportLayout{SheetName: "Tasks", ColumnWidth: 18}
}

// LoadExportLayout reads the layout config, falling back to defaults when the
// path is unset or the file is unreadable.
func LoadExportLayout(path string) ExportLayout {
	layout := defaultExportLayout()
	if path == "" {
		return layout
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return layout
	}
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return defaultExportLayout()
	}
	if layout.SheetName == "" {
		layout.SheetName = "Tasks"
	}
	if layout.ColumnWidth <= 0 {
		layout.ColumnWidth = 18
	}
	return layout
}

type ExportHandler struct {
	svc    service.TaskService
	layout ExportLayout
}

func NewExportHandler(svc service.TaskService, layout ExportLayout) *ExportHandler {
	return &ExportHandler{svc: svc, layout: layout}
}

var fixedExportHeaders = []string{"Task ID", "Title", "Priority", "Status", "Created At", "Updated At"}

// ExportHandler handles GET /tasks/export: the whole filtered+sorted corpus
// as one xlsx sheet, fixed columns first, then one column per projected
// custom field.
func (h *ExportHandler) ExportHandler(c echo.Context) error {
	ctx := c.Request().Context()
	start := time.Now()

	q, err := query.Normalize(query.RawParams{
		SortBy: c.QueryParam("sortBy"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, err.Error(), nil)
	}

	tasks, err := h.svc.ListAll(ctx, q.Sort, q.Search)
	if err != nil {
		logger.ErrorLog(ctx, "failed to export tasks: %v", err)
		return respondServiceError(c, err, "failed to export tasks")
	}

	overview, err := h.svc.CustomFieldOverview(ctx)
	if err != nil {
		logger.ErrorLog(ctx, "failed to export tasks: %v", err)
		return respondServiceError(c, err, "failed to export tasks")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := h.layout.SheetName
	f.SetSheetName("Sheet1", sheet)

	headers := append([]string{}, fixedExportHeaders...)
	for _, col := range overview.CustomFieldsColumns {
		headers = append(headers, col.Name)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		width := h.layout.ColumnWidth
		if w, ok := h.layout.Widths[header]; ok {
			width = w
		}
		f.SetColWidth(sheet, colName, colName, width)
	}

	for r, t := range tasks {
		values := []interface{}{
			t.ID, t.Title, string(t.Priority), string(t.Status),
			t.CreatedAt.Format("Jan 2, 2006"),
			formatUpdatedAt(t.UpdatedAt),
		}
		for _, col := range overview.CustomFieldsColumns {
			values = append(values, service.ColumnValue(col, t))
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="tasks_export_%s.xlsx"`, time.Now().Format("20060102")))

	if err := f.Write(c.Response().Writer); err != nil {
		return err
	}

	logger.DebugLog(ctx, "exported %d tasks in %s", len(tasks), time.Since(start))
	return nil
}

func formatUpdatedAt(ts *time.Time) string {
	if ts == nil {
		return domain.DisplayPlaceholder
	}
	return ts.Format("Jan 2, 2006")
}
