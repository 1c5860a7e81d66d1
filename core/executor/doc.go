// Package executor runs batches of asynchronous tasks with a cap on how many
// are in flight at once.
//
// Results always come back in input order, independent of completion order,
// and a failing or panicking task is recorded in its own result slot without
// cancelling or affecting its siblings. The save-file monitor uses it to
// parse large character rosters in parallel without saturating disk I/O.
package executor
