// Package run provides the delivery Run aggregate: the batch of orders
// assigned to one courier at one time, with its completion clock and
// terminal completed state.
package run
