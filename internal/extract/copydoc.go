package extract

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/prooflab/artcheck/internal/model"
)

// ReadCopyDoc parses an approved copy document workbook. Each sheet is
// one panel; the header row holds "Field" followed by one language code
// per column, and each following row carries a field name and its
// per-language values. Empty cells mean the field does not exist in that
// language.
func ReadCopyDoc(path string) ([]model.Field, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: opening copy doc %s", path)
	}
	defer f.Close()

	var fields []model.Field
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, eris.Wrapf(err, "extract: reading sheet %s", sheet)
		}
		if len(rows) < 2 {
			continue
		}

		header := rows[0]
		if len(header) < 2 {
			return nil, model.NewInputError("extract: sheet %s header has no language columns", sheet)
		}

		panel := model.Panel(strings.TrimSpace(sheet))
		languages := make([]model.Language, 0, len(header)-1)
		for _, h := range header[1:] {
			languages = append(languages, model.Language(strings.ToUpper(strings.TrimSpace(h))))
		}

		for _, row := range rows[1:] {
			if len(row) == 0 {
				continue
			}
			name := strings.TrimSpace(row[0])
			if name == "" {
				continue
			}
			for j, lang := range languages {
				col := j + 1
				if col >= len(row) {
					break
				}
				value := strings.TrimSpace(row[col])
				if value == "" {
					continue
				}
				fields = append(fields, model.Field{
					Name:     name,
					Language: lang,
					Panel:    panel,
					Value:    value,
					Source:   model.SourceCopyDoc,
				})
			}
		}
	}

	if len(fields) == 0 {
		return nil, model.NewInputError("extract: copy doc %s has no fields", path)
	}
	return fields, nil
}
