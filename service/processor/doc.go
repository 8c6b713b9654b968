// Package processor hosts the workers that consume messages from a
// messaging.Queue. Every worker receives messages (alarm first, as the queue
// dictates) and hands them to a caller supplied handler.
package processor
