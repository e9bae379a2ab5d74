// Package form composes the tab navigator, field validator and conditional
// revealer into a single controller that owns the questionnaire's field values.
//
// Every handler runs to completion under the controller's lock, which models a
// single-threaded event loop. The only deferred work is the simulated
// submission: its completion callback re-checks that it is still the active
// submission so a reset in between discards it.
package form
