package render

import (
	"github.com/alnah/go-xlsx2pdf/internal/dateutil"
	"github.com/alnah/go-xlsx2pdf/internal/sections"
)

// Binding names visible to templates.
const (
	KeySummary          = "summary"
	KeySummaryColumns   = "summary_columns"
	KeyAllLogs          = "all_logs"
	KeyLogSheets        = "log_sheets"
	KeyTitleBlock       = "title_block"
	KeyContactInfo      = "contact_info"
	KeyContactEntries   = "contact_entries"
	KeyExecSummary      = "exec_summary"
	KeyTaskSummaryTitle = "task_summary_title"
	KeyStaffingInfo     = "staffing_info"
	KeyPersonLogsConfig = "person_logs_config"
	KeyMonth            = "month"
)

// Bindings flattens a report into the template data map. Every key is always
// present; month is nil when no month filter is active.
//
// all_logs and contact_info are maps and iterate in key order inside
// templates; log_sheets and contact_entries keep workbook order.
func Bindings(r *sections.Report, month *dateutil.Month) map[string]any {
	if r == nil {
		r = &sections.Report{}
	}

	allLogs := make(map[string][]sections.Record, len(r.Logs))
	logSheets := make([]sections.LogSheet, 0, len(r.Logs))
	for _, l := range r.Logs {
		allLogs[l.Name] = l.Records
		logSheets = append(logSheets, l)
	}

	contacts := r.ContactInfo.Entries()
	contactEntries := make([]map[string]any, 0, len(contacts))
	for _, e := range contacts {
		contactEntries = append(contactEntries, map[string]any{"key": e.Key, "value": e.Value})
	}

	staffing := make([]map[string]any, 0, len(r.Staffing))
	for _, s := range r.Staffing {
		staffing = append(staffing, map[string]any{
			"name":       s.Name,
			"role":       s.Role,
			"start_date": s.StartDate,
		})
	}

	summary := r.Summary
	if summary == nil {
		summary = []sections.Record{}
	}
	summaryColumns := r.SummaryColumns
	if summaryColumns == nil {
		summaryColumns = []string{}
	}
	logColumns := r.PersonLogs.Columns
	if logColumns == nil {
		logColumns = []string{}
	}

	var monthData any
	if month != nil {
		monthData = map[string]any{
			"name":   month.Name(),
			"year":   month.Year,
			"label":  month.Label(),
			"prefix": month.Prefix(),
		}
	}

	return map[string]any{
		KeySummary:        summary,
		KeySummaryColumns: summaryColumns,
		KeyAllLogs:        allLogs,
		KeyLogSheets:      logSheets,
		KeyTitleBlock: map[string]any{
			"header":    r.TitleBlock.Header,
			"subheader": r.TitleBlock.Subheader,
			"date":      r.TitleBlock.Date,
		},
		KeyContactInfo:    r.ContactInfo.Map(),
		KeyContactEntries: contactEntries,
		KeyExecSummary: map[string]any{
			"title": r.ExecSummary.Title,
			"body":  r.ExecSummary.Body,
		},
		KeyTaskSummaryTitle: r.TaskSummaryTitle,
		KeyStaffingInfo:     staffing,
		KeyPersonLogsConfig: map[string]any{
			"title":   r.PersonLogs.Title,
			"columns": logColumns,
		},
		KeyMonth: monthData,
	}
}
