// Package progress keeps aggregated queue traffic counters (sent, received,
// rejected, ...) for a single scenario run. The tracker travels in the context
// so producers and consumers can update it without a global registry.
package progress
