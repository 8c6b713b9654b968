// Package scenario runs demonstration workloads against an alarm queue.
//
// A Scenario lists producers, each publishing a sequence of normal and alarm
// messages with randomized pauses, and a pool of consumer workers receiving a
// fixed number of messages each. Scenarios are YAML documents loaded with
// Loader from any afs URL; a few are embedded and available by name:
//
//	loader := scenario.NewLoader()
//	aScenario, _ := loader.Resolve(ctx, "alarm-blocking")
//	report, _ := scenario.NewRunner(queue, scenario.WithLogger(logger)).Run(ctx, aScenario)
//
// Every publish and receive is logged, and the Report keeps the delivery
// order together with the final queue size.
package scenario
