// Package sections turns normalized sheet tables into the typed records bound
// into the report template.
//
// Each extractor is a pure, total transform over one table: given an empty
// table it returns a default or empty record, and it never returns a record
// that shares storage with its input. Only ContactInfo and StaffingInfo can
// fail, with a *MissingColumnsError, when a non-empty sheet lacks a required
// column.
//
// Split binds a whole workbook: config sheets feed the four fixed sections
// through a Provider, the first non-config sheet becomes the summary, and every
// other sheet becomes a log filtered by an optional date prefix.
package sections
