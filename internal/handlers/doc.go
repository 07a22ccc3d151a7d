// Package handlers implements the HTTP API layer of the jobrunner daemon.
//
// Handlers delegate to the services layer and focus on parameter parsing, response
// formatting and HTTP semantics.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Query parsing (api/v1 params)                                │
//	│  - Error mapping to HTTP status codes                           │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  Monitor │ HistoryService │ Reporter                            │
//	└─────────────────────────────────────────────────────────────────┘
//
// Routes are registered on a router group with:
//
//	handlers.RegisterHandlers(router.Group("/api/v1"), handler)
//
// # API Endpoints
//
//	┌────────┬───────────────┬──────────────────────────────────────────────┐
//	│ Method │ Endpoint      │ Description                                  │
//	├────────┼───────────────┼──────────────────────────────────────────────┤
//	│ GET    │ /jobs         │ Open jobs (name, user, mode filters)         │
//	│ GET    │ /jobs/:id     │ One open job                                 │
//	│ DELETE │ /jobs/:id     │ Cancel a job                                 │
//	│ GET    │ /tasks        │ Registered tasks (status, name filters)      │
//	│ GET    │ /tasks/:id    │ One task                                     │
//	│ DELETE │ /tasks/:id    │ Request a task to stop                       │
//	│ GET    │ /history      │ Finished work, paginated                     │
//	│ GET    │ /history/:id  │ One history entry                            │
//	│ GET    │ /stats        │ Pool, gate and registry statistics           │
//	│ GET    │ /report       │ XLSX workbook of jobs, tasks and history     │
//	└────────┴───────────────┴──────────────────────────────────────────────┘
//
// # Error Mapping
//
//	┌───────────────────────────┬────────┐
//	│ Error                     │ Status │
//	├───────────────────────────┼────────┤
//	│ ResourceNotFoundError     │ 404    │
//	│ TaskFinishedError         │ 409    │
//	│ InvalidArgumentError      │ 400    │
//	│ invalid query parameters  │ 400    │
//	│ history disabled          │ 503    │
//	│ anything else             │ 500    │
//	└───────────────────────────┴────────┘
//
// Error bodies are {"error": "<message>"}.
package handlers
