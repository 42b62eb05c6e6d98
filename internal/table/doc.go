// Package table linearizes HTML tables into GitHub-flavored Markdown pipe tables.
//
// A Table is read from parsed markup with FromSelection and rendered with
// Render. Rendering is a flat walk over rows and cells:
//
//   - A row is a header row if its direct parent is <thead>, or if it is the
//     first row and holds at least one <th>.
//   - Each row becomes "| a | b | " with cell text trimmed and emitted verbatim.
//   - A header row is followed by a separator "| --- | --- |" where each field
//     has max(3, len(header text)) dashes.
//
// Known limitations, kept as observed behavior:
//   - Pipe characters and newlines inside cells are not escaped.
//   - Rows are not padded or truncated to the header width.
//   - colspan and rowspan are recorded but not expanded, so tables with merged
//     cells come out column-misaligned.
package table
