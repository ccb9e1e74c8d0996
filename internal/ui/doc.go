// Package ui provides semantic text formatting for ccrypt output.
//
// Formatters render with color when the terminal supports it and fall back
// to plain decorations when NO_COLOR is set or color is unavailable:
//
//	ui.Code.Sprint("ccrypt list")          // `ccrypt list` without color
//	ui.Path.Sprint("notes.ccrypt")         // file paths
//	ui.Success.Sprint("✓")                 // success indicators
//	ui.Error.Sprint("✗")                   // error indicators
//	ui.Warning.Sprint("!")                 // warnings
//	ui.Info.Sprint("→")                    // hints
//	ui.Highlight.Sprint("report.txt")      // 'report.txt' without color
//	ui.Muted.Sprint("no type")             // (no type) without color
//
// Size renders byte counts for people, and Table renders catalog listings.
package ui
