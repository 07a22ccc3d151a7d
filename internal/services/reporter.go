package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/jobrunner/internal/models"
	"github.com/kubev2v/jobrunner/internal/store"
	"github.com/kubev2v/jobrunner/internal/util"
)

const (
	SheetJobs    = "Jobs"
	SheetTasks   = "Tasks"
	SheetHistory = "History"

	reportHistoryLimit = 10000
)

// HistoryLister reads persisted history.
type HistoryLister interface {
	List(ctx context.Context, opts ...store.ListOption) ([]models.HistoryEntry, error)
}

// Reporter renders the engine state and the recent history as an XLSX workbook.
type Reporter struct {
	monitor *Monitor
	history HistoryLister
}

// NewReporter creates a reporter. history may be nil, in which case the History sheet
// only carries its header.
func NewReporter(monitor *Monitor, history HistoryLister) *Reporter {
	return &Reporter{monitor: monitor, history: history}
}

func (r *Reporter) Write(ctx context.Context, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetSheetName("Sheet1", SheetJobs); err != nil {
		return err
	}
	if err := r.writeJobs(f, header); err != nil {
		return fmt.Errorf("failed to write jobs sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetTasks); err != nil {
		return err
	}
	if err := r.writeTasks(f, header); err != nil {
		return fmt.Errorf("failed to write tasks sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetHistory); err != nil {
		return err
	}
	if err := r.writeHistory(ctx, f, header); err != nil {
		return fmt.Errorf("failed to write history sheet: %w", err)
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func (r *Reporter) writeJobs(f *excelize.File, style int) error {
	rows := [][]any{{"ID", "Name", "User", "Mode", "Waiting For", "Cancelled", "Submitted", "Started", "Message"}}
	for _, j := range r.monitor.ListJobs(JobListParams{}) {
		rows = append(rows, []any{
			j.ID,
			j.Name,
			j.User,
			j.Mode,
			j.WaitingFor,
			j.Cancelled,
			formatTime(&j.SubmittedAt),
			formatTime(j.StartedAt),
			j.Message,
		})
	}
	return writeRows(f, SheetJobs, style, rows)
}

func (r *Reporter) writeTasks(f *excelize.File, style int) error {
	rows := [][]any{{"ID", "Name", "Priority", "Status", "Pending Since", "Started", "Finished", "Stop Requested", "Error"}}
	for _, t := range r.monitor.ListTasks(TaskListParams{}) {
		rows = append(rows, []any{
			t.ID,
			t.Name,
			t.Priority,
			t.Status,
			formatTime(&t.PendAt),
			formatTime(t.StartAt),
			formatTime(t.FinishAt),
			t.StopRequested,
			t.Error,
		})
	}
	return writeRows(f, SheetTasks, style, rows)
}

func (r *Reporter) writeHistory(ctx context.Context, f *excelize.File, style int) error {
	rows := [][]any{{"ID", "Kind", "Work ID", "Name", "User", "Status", "Submitted", "Started", "Finished", "Duration (s)", "Error"}}
	if r.history != nil {
		entries, err := r.history.List(ctx, store.WithDefaultSort(), store.WithLimit(reportHistoryLimit))
		if err != nil {
			return err
		}
		for _, e := range entries {
			rows = append(rows, []any{
				e.ID,
				string(e.Kind),
				e.WorkID,
				e.Name,
				e.User,
				string(e.Status),
				formatTime(&e.SubmittedAt),
				formatTime(e.StartedAt),
				formatTime(&e.FinishedAt),
				util.Seconds(e.Duration()),
				e.Error,
			})
		}
	}
	return writeRows(f, SheetHistory, style, rows)
}

func writeRows(f *excelize.File, sheet string, style int, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetRowStyle(sheet, 1, 1, style)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
