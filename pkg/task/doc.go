// Package task runs fire-and-forget units as status-tracked records on bounded pools.
//
// A Record is created through a Registry (or a Factory) and handed to a
// BoundedWorkerPool. Its status moves along
//
//	PENDING ──► RUNNING ──► FINISHED
//	   │            │
//	   │            └──► STOPPED   (stop requested while running)
//	   └──────────────► STOPPED   (stop requested before running, body never runs)
//
// and every transition out of PENDING is broadcast to the registry's listeners as a
// start or stop Event. Listeners are called one at a time, in the order the events occurred.
//
// The registry keeps finished and stopped records for a retention window (30 minutes by
// default) so dashboards can still see them. Pruning happens on every registry access.
//
// A BoundedWorkerPool queues at most DefaultBacklog records while its workers are busy;
// Execute reports scheduler.ErrQueueFull instead of dropping a record.
package task
