package exporter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/config"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/exporter/common"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

// Sheet names of the catalog workbook
const (
	SheetOverview   = "Overview"
	SheetMethods    = "Methods"
	SheetParameters = "Parameters"
	SheetSchemas    = "Schemas"
)

// ExcelExporter writes the catalog as a workbook
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Name returns the format name
func (e *ExcelExporter) Name() string {
	return "xlsx"
}

// Export generates the workbook at <output.dir>/<output.file_name>.xlsx
func (e *ExcelExporter) Export(catalog *model.Catalog, summary *model.Summary, cfg *config.Config) error {
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	if err := e.writeOverview(f, styler, summary); err != nil {
		return err
	}
	if err := e.writeMethods(f, styler, catalog); err != nil {
		return err
	}
	if err := e.writeParameters(f, styler, catalog); err != nil {
		return err
	}
	if err := e.writeSchemas(f, styler, catalog); err != nil {
		return err
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}
	if err := f.SaveAs(cfg.GetOutputPath("xlsx")); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// --- Overview Sheet Logic ---

func (e *ExcelExporter) writeOverview(f *excelize.File, s *Styler, summary *model.Summary) error {
	if _, err := f.NewSheet(SheetOverview); err != nil {
		return err
	}

	e.writeRow(f, SheetOverview, 1, []string{"Metric", "Count"}, s.HeaderStyle)

	metrics := []struct {
		Key string
		Val int
	}{
		{"Total Methods", summary.TotalMethods},
		{"Async Methods", summary.AsyncMethods},
		{"Total Parameters", summary.TotalParams},
		{"Response Schemas", summary.TopLevelSchemas},
		{"Nested Schemas", summary.NestedSchemas},
	}

	row := 2
	for _, m := range metrics {
		f.SetCellValue(SheetOverview, fmt.Sprintf("A%d", row), m.Key)
		f.SetCellValue(SheetOverview, fmt.Sprintf("B%d", row), m.Val)
		f.SetCellStyle(SheetOverview, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), s.DefaultStyle)
		row++
	}

	row++
	f.SetCellValue(SheetOverview, fmt.Sprintf("A%d", row), "Generated")
	f.SetCellValue(SheetOverview, fmt.Sprintf("B%d", row), summary.GeneratedDate)

	f.SetColWidth(SheetOverview, "A", "A", 25)
	f.SetColWidth(SheetOverview, "B", "B", 15)
	return nil
}

// --- Methods Sheet Logic ---

func (e *ExcelExporter) writeMethods(f *excelize.File, s *Styler, catalog *model.Catalog) error {
	if _, err := f.NewSheet(SheetMethods); err != nil {
		return err
	}

	headers := []string{"No", "Method", "Async", "Since", "Required", "Optional", "Response Class", "Related", "Description"}
	e.writeRow(f, SheetMethods, 1, headers, s.HeaderStyle)
	freezeHeader(f, SheetMethods)

	for i, method := range catalog.Methods {
		row := i + 2
		async := ""
		style := s.DefaultStyle
		if method.Async {
			async = "yes"
			style = s.AsyncStyle
		}

		values := []interface{}{
			i + 1,
			method.Name,
			async,
			method.Since,
			method.RequiredCount,
			method.OptionalCount,
			method.ResponseClass,
			strings.Join(method.Related, ", "),
			method.Description,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(SheetMethods, cell, v)
		}
		f.SetCellStyle(SheetMethods, fmt.Sprintf("A%d", row), fmt.Sprintf("I%d", row), style)
	}

	f.SetColWidth(SheetMethods, "B", "B", 40)
	f.SetColWidth(SheetMethods, "G", "H", 40)
	f.SetColWidth(SheetMethods, "I", "I", 80)
	return nil
}

// --- Parameters Sheet Logic ---

func (e *ExcelExporter) writeParameters(f *excelize.File, s *Styler, catalog *model.Catalog) error {
	if _, err := f.NewSheet(SheetParameters); err != nil {
		return err
	}

	headers := []string{"Method", "Parameter", "Type", "Required", "Length", "Description"}
	e.writeRow(f, SheetParameters, 1, headers, s.HeaderStyle)
	freezeHeader(f, SheetParameters)

	row := 2
	for _, method := range catalog.Methods {
		for _, param := range method.Params {
			required := "no"
			if param.Required {
				required = "yes"
			}

			f.SetCellValue(SheetParameters, fmt.Sprintf("A%d", row), method.Name)
			f.SetCellValue(SheetParameters, fmt.Sprintf("B%d", row), param.Name)
			f.SetCellValue(SheetParameters, fmt.Sprintf("C%d", row), param.Type)
			f.SetCellValue(SheetParameters, fmt.Sprintf("D%d", row), required)
			if param.Length > 0 {
				f.SetCellValue(SheetParameters, fmt.Sprintf("E%d", row), param.Length)
			}
			f.SetCellValue(SheetParameters, fmt.Sprintf("F%d", row), param.Description)
			f.SetCellStyle(SheetParameters, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), s.MemberStyle)
			row++
		}
	}

	f.SetColWidth(SheetParameters, "A", "B", 35)
	f.SetColWidth(SheetParameters, "F", "F", 80)
	return nil
}

// --- Schemas Sheet Logic ---

func (e *ExcelExporter) writeSchemas(f *excelize.File, s *Styler, catalog *model.Catalog) error {
	if _, err := f.NewSheet(SheetSchemas); err != nil {
		return err
	}

	headers := []string{"Class", "Member", "Type", "Referenced Class", "Depth", "Description"}
	e.writeRow(f, SheetSchemas, 1, headers, s.HeaderStyle)
	freezeHeader(f, SheetSchemas)

	row := 2
	for _, method := range catalog.Methods {
		rows := common.FlattenSchema(catalog, method.ResponseClass)
		if len(rows) == 0 {
			continue
		}

		// Block header: the top-level response class
		f.SetCellValue(SheetSchemas, fmt.Sprintf("A%d", row), rows[0].Name)
		f.SetCellStyle(SheetSchemas, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), s.TopLevelStyle)
		row++

		// Members carry the class they belong to so the sheet can be filtered
		owners := []string{rows[0].Name}
		for _, member := range rows[1:] {
			owners = owners[:member.Depth]
			owner := owners[member.Depth-1]

			style := s.MemberStyle
			if member.Class != "" {
				style = s.NestedStyle
			}

			f.SetCellValue(SheetSchemas, fmt.Sprintf("A%d", row), owner)
			f.SetCellValue(SheetSchemas, fmt.Sprintf("B%d", row), member.Name)
			f.SetCellValue(SheetSchemas, fmt.Sprintf("C%d", row), member.Type)
			f.SetCellValue(SheetSchemas, fmt.Sprintf("D%d", row), member.Class)
			f.SetCellValue(SheetSchemas, fmt.Sprintf("E%d", row), member.Depth)
			f.SetCellValue(SheetSchemas, fmt.Sprintf("F%d", row), member.Description)
			f.SetCellStyle(SheetSchemas, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), style)
			row++

			owners = append(owners, member.Class)
		}
	}

	f.SetColWidth(SheetSchemas, "A", "B", 35)
	f.SetColWidth(SheetSchemas, "D", "D", 30)
	f.SetColWidth(SheetSchemas, "F", "F", 80)
	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

func freezeHeader(f *excelize.File, sheet string) {
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
