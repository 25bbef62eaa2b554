package workbook

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/rxlsgo/rxls/sharedstrings"
	"github.com/rxlsgo/rxls/style"
)

type xlsxWorkbookXML struct {
	Sheets struct {
		Sheet []xlsxSheetXML `xml:"sheet"`
	} `xml:"sheets"`
}

type xlsxSheetXML struct {
	Name  string `xml:"name,attr"`
	State string `xml:"state,attr"` // "visible" (default), "hidden", "veryHidden"
	RID   string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

// parseXLSX reads xl/workbook.xml, xl/sharedStrings.xml, and xl/styles.xml
// to build the sheet list, the shared-string table, and the style catalog
// for an .xlsx archive.
func (wb *Workbook) parseXLSX() error {
	rels, err := wb.readRels("xl/_rels/workbook.xml.rels")
	if err != nil {
		return fmt.Errorf("workbook: parse rels: %w", err)
	}

	data, err := wb.readZipEntry("xl/workbook.xml")
	if err != nil {
		return fmt.Errorf("workbook: read workbook.xml: %w", err)
	}
	var wbxml xlsxWorkbookXML
	if err := xml.Unmarshal(data, &wbxml); err != nil {
		return fmt.Errorf("workbook: parse workbook.xml: %w", err)
	}
	for _, s := range wbxml.Sheets.Sheet {
		target, ok := rels[s.RID]
		if !ok {
			continue
		}
		wb.sheets = append(wb.sheets, sheetEntry{
			name:       s.Name,
			target:     target,
			visibility: xlsxVisibility(s.State),
		})
	}

	if ssData, err := wb.readZipEntry("xl/sharedStrings.xml"); err == nil {
		shared, err := sharedstrings.NewFromXLSX(ssData, sharedstrings.DefaultNullPredicate)
		if err != nil {
			return fmt.Errorf("workbook: shared strings: %w", err)
		}
		wb.shared = shared
	}

	if styleData, err := wb.readZipEntry("xl/styles.xml"); err == nil {
		cat, err := style.NewFromXLSX(styleData)
		if err != nil {
			return fmt.Errorf("workbook: style catalog: %w", err)
		}
		wb.tags = cat
	}

	return nil
}

func xlsxVisibility(state string) int {
	switch strings.ToLower(state) {
	case "hidden":
		return SheetHidden
	case "veryhidden":
		return SheetVeryHidden
	default:
		return SheetVisible
	}
}

// xlsxSheetZipPath resolves a workbook.xml.rels target (e.g.
// "worksheets/sheet1.xml") to its full in-archive path.
func xlsxSheetZipPath(target string) string {
	target = strings.TrimPrefix(target, "/")
	if strings.HasPrefix(target, "xl/") {
		return target
	}
	return "xl/" + target
}
