// Package eventbus provides the in-process publish/subscribe dispatcher that
// decouples the save-file monitor, the detection service and outward-facing
// consumers such as the backup feature and the HTTP layer.
//
// Handlers for a topic run synchronously in registration order. A handler
// that panics or returns an error is logged and isolated; its siblings still
// run and the emitter never observes the failure. No ordering guarantee is
// given across distinct topics.
package eventbus
