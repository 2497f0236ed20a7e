package errors

import (
	"strings"

	"github.com/fatih/color"
)

// Format renders the error for terminal output. When colored is false the
// output is plain text.
func Format(e *Error, colored bool) string {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.Faint)
	if !colored {
		red.DisableColor()
		yellow.DisableColor()
		dim.DisableColor()
	}

	var b strings.Builder
	b.WriteString(red.Sprintf("error[%s]", e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	b.WriteByte('\n')

	if e.Detail != "" {
		b.WriteString(dim.Sprint(e.Detail))
		b.WriteByte('\n')
	}
	if e.Wrapped != nil {
		b.WriteString(dim.Sprintf("caused by: %v", e.Wrapped))
		b.WriteByte('\n')
	}
	if e.Suggestion != "" {
		b.WriteString(yellow.Sprint("hint: "))
		b.WriteString(e.Suggestion)
		b.WriteByte('\n')
	}
	return b.String()
}
