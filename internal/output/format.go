// Package output provides formatters for CLI output.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"taskboard/internal/service"
)

// statusWidth fits the longest task status.
const statusWidth = len(service.TaskInProgress)

var (
	todoColor     = color.New(color.FgYellow)
	progressColor = color.New(color.FgCyan)
	doneColor     = color.New(color.FgGreen)
	pendingColor  = color.New(color.FgYellow)
	readyColor    = color.New(color.FgGreen, color.Bold)
	errorColor    = color.New(color.FgRed)
)

// FormatProject formats a project line.
// Format: "{ID:>4}  {NAME}\n"
func FormatProject(w io.Writer, p service.Project) {
	fmt.Fprintf(w, "%4d  %s\n", p.ID, normalizeTitle(p.Name))
}

// FormatTask formats a task line with a coloured status column.
// Format: "{ID:>4}  {STATUS:<11}  {TITLE}\n", followed by "@{ASSIGNEE}" when assigned.
func FormatTask(w io.Writer, t service.Task) {
	status := fmt.Sprintf("%-*s", statusWidth, t.Status)
	line := fmt.Sprintf("%4d  %s  %s", t.ID, taskStatusColor(t.Status).Sprint(status), normalizeTitle(t.Title))
	if t.AssigneeID != nil {
		line += fmt.Sprintf("  @%d", *t.AssigneeID)
	}
	fmt.Fprintln(w, line)
}

// FormatReport formats a report header and, when present, its content as indented JSON.
func FormatReport(w io.Writer, r service.Report) {
	kind := r.Type
	if kind == "" {
		kind = "report"
	}
	fmt.Fprintf(w, "%s #%d for project %d: %s\n", kind, r.ID, r.ProjectID, reportStatusColor(r.Status).Sprint(r.Status))

	content := bytes.TrimSpace(r.Content)
	if len(content) == 0 || bytes.Equal(content, []byte("null")) {
		return
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, content, "  ", "  "); err != nil {
		fmt.Fprintf(w, "  %s\n", content)
		return
	}
	fmt.Fprintf(w, "  %s\n", buf.String())
}

// FormatError formats an error message for stderr.
func FormatError(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", errorColor.Sprint("error:"), msg)
}

func taskStatusColor(s service.TaskStatus) *color.Color {
	switch s {
	case service.TaskTodo:
		return todoColor
	case service.TaskInProgress:
		return progressColor
	case service.TaskDone:
		return doneColor
	default:
		return color.New(color.Reset)
	}
}

func reportStatusColor(s service.ReportStatus) *color.Color {
	switch s {
	case service.ReportPending:
		return pendingColor
	case service.ReportReady:
		return readyColor
	default:
		return color.New(color.Reset)
	}
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
