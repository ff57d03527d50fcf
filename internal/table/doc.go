// Package table models a workbook sheet as ordered rows of scalar cells.
//
// A Table is built once per sheet, normalized once with Normalize, and then
// handed to exactly one section extractor. Column lookups after normalization
// are case-insensitive and whitespace-insensitive because every label has been
// lowercased and trimmed.
package table
