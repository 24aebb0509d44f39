// Package scheduler provides a deferred-task worker pool.
//
// A Task is a unit of work executed asynchronously, exactly once per
// Schedule call, with no ordering guarantee relative to other tasks. A task
// may cooperatively yield by returning Reschedule from Run, in which case it
// is re-queued and run again later; a given task is never run concurrently
// with itself.
package scheduler
