// Package logtail reads and highlights lair's log file.
//
// # Reading
//
// Read returns the last N lines of a file using a ring buffer, so memory is
// O(N) regardless of file size. A non-positive N returns the whole file. A
// missing file is not an error; it simply has no lines yet.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//
// # Levels
//
// lair logs with slog's text handler, so every record carries a
// "level=INFO" style token. Level extracts it and Filter drops records below
// a threshold while keeping continuation lines.
//
// # Colorization
//
// ColorizeLine styles the time, the level and attribute keys with lipgloss.
// The visible text never changes, and when the output has no color profile
// (a pipe, or a test) the line is returned byte for byte.
package logtail
