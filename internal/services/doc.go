// Package services implements the business logic layer of the jobrunner daemon.
//
// Services sit between the HTTP handlers and the engine or the history store.
// They translate engine state into API models and engine errors into the typed
// errors of pkg/errors.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints)
//	    │
//	    ▼
//	Services Layer
//	    ├── Monitor ─────────► Environment (job registry, task registry, pools, gates)
//	    ├── HistoryService ──► Store
//	    ├── HistoryRecorder ─► Environment hooks, HistoryWriter
//	    └── Reporter ────────► Monitor, HistoryLister
//
// # Monitor
//
// Monitor lists open jobs and registered tasks and acts on them.
//
//   - CancelJob cancels a job that is still registered. Finished jobs have left the
//     registry and yield ResourceNotFoundError.
//   - StopTask requests a stop. It yields TaskFinishedError when the task already
//     reached FINISHED or STOPPED.
//
// # HistoryRecorder
//
// The recorder subscribes to the scheduler finish hook and to the task registry stop
// events. Callbacks run on engine goroutines, so they only enqueue:
//
//	engine worker ──► enqueue ──► [buffered channel] ──► Run loop ──► HistoryWriter.Save
//	                     │                                   │
//	                     └── full: drop + count              └── retry with exponential backoff
//
// Run returns when its context is done, after flushing the queue with a short deadline.
// With a retention configured it also deletes old entries once an hour.
//
// # Reporter
//
// Reporter writes an XLSX workbook with three sheets: Jobs, Tasks and History.
//
//	err := reporter.Write(ctx, w)
package services
