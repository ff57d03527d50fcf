package sections

import (
	"sort"
	"strings"

	"github.com/alnah/go-xlsx2pdf/internal/dateutil"
	"github.com/alnah/go-xlsx2pdf/internal/table"
)

// Column labels read by the extractors, after normalization.
const (
	colKey       = "key"
	colValue     = "value"
	colName      = "name"
	colRole      = "role"
	colStartDate = "start_date"
	colDate      = "date"
)

// TitleBlockFromTable reads header, subheader and date from a key/value sheet.
// Keys are matched trimmed and lowercased; the last row for a key wins. Rows
// with a Null key or value are skipped, so a blank cell keeps the default.
// When month is non-nil its label ("July 2025") always replaces the date.
func TitleBlockFromTable(t *table.Table, month *dateutil.Month) TitleBlock {
	tb := TitleBlock{
		Header:    DefaultHeader,
		Subheader: DefaultSubheader,
		Date:      DefaultDate,
	}

	if !t.Empty() && len(t.MissingColumns(colKey, colValue)) == 0 {
		for _, row := range t.Rows {
			key, value := row.Get(colKey), row.Get(colValue)
			if key.IsNull() || value.IsNull() {
				continue
			}
			val := strings.TrimSpace(value.String())
			switch strings.ToLower(strings.TrimSpace(key.String())) {
			case "header":
				tb.Header = val
			case "subheader":
				tb.Subheader = val
			case "date":
				tb.Date = val
			}
		}
	}

	if month != nil {
		tb.Date = month.Label()
	}
	return tb
}

// ContactInfoFromTable builds the contact mapping from a key/value sheet.
// Rows missing a key or a value are dropped. Keys are trimmed and lowercased,
// values trimmed; a repeated key overwrites the earlier value.
func ContactInfoFromTable(t *table.Table) (ContactInfo, error) {
	var info ContactInfo
	if t.Empty() {
		return info, nil
	}
	if missing := t.MissingColumns(colKey, colValue); len(missing) > 0 {
		return info, &MissingColumnsError{Columns: missing}
	}

	for _, row := range t.Rows {
		key, val := row.Get(colKey), row.Get(colValue)
		if key.IsNull() || val.IsNull() {
			continue
		}
		info.Set(table.NormalizeLabel(key.String()), strings.TrimSpace(val.String()))
	}
	return info, nil
}

// ExecSummaryFromTable takes the first non-null value of the value column as
// the summary body. Later rows are ignored.
func ExecSummaryFromTable(t *table.Table) ExecSummary {
	es := ExecSummary{Title: DefaultExecSummaryTitle}
	if t.Empty() || !t.HasColumn(colValue) {
		return es
	}

	for _, row := range t.Rows {
		if v := row.Get(colValue); !v.IsNull() {
			es.Body = strings.TrimSpace(v.String())
			break
		}
	}
	return es
}

// StaffingFromTable lists staff members in row order. Rows without a name or
// role are dropped. Start dates that cannot be parsed become "".
func StaffingFromTable(t *table.Table) ([]StaffingEntry, error) {
	if t.Empty() {
		return []StaffingEntry{}, nil
	}
	if missing := t.MissingColumns(colName, colRole, colStartDate); len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingColumnsError{Columns: missing}
	}

	entries := make([]StaffingEntry, 0, t.Len())
	for _, row := range t.Rows {
		name, role := row.Get(colName), row.Get(colRole)
		if name.IsNull() || role.IsNull() {
			continue
		}
		entries = append(entries, StaffingEntry{
			Name:      strings.TrimSpace(name.String()),
			Role:      strings.TrimSpace(role.String()),
			StartDate: startDate(row.Get(colStartDate)),
		})
	}
	return entries, nil
}

func startDate(v table.Value) string {
	if d, ok := v.Time(); ok {
		return dateutil.FormatISO(d)
	}
	if d, ok := dateutil.ParseDate(v.String()); ok {
		return dateutil.FormatISO(d)
	}
	return ""
}

// Logs passes rows through as records. When the table has a date column and
// prefix is non-empty, only rows whose date string starts with prefix are kept;
// the match is textual, so "20250715" matches "202507".
func Logs(t *table.Table, prefix string) []Record {
	records := make([]Record, 0, t.Len())
	if t.Empty() {
		return records
	}

	filter := prefix != "" && t.HasColumn(colDate)
	for _, row := range t.Rows {
		if filter && !strings.HasPrefix(row.Get(colDate).String(), prefix) {
			continue
		}
		records = append(records, Record(row.Clone()))
	}
	return records
}
