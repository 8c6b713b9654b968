// Package alarmq provides a thread-safe message queue with two priority
// classes: at most one pending alarm message and an unbounded FIFO of normal
// messages. Receivers always get a pending alarm before any normal message;
// alarm senders block while the alarm slot is occupied.
//
// The queue itself lives in service/messaging/alarm. The root package exposes
// a small Service façade that loads configuration, builds the logger and
// optionally enables OpenTelemetry tracing:
//
//	cfg, _ := alarmq.LoadConfig(ctx, "config.yaml")
//	srv, _ := alarmq.New(alarmq.WithConfig(cfg))
//	queue, _ := alarmq.QueueOf[string](srv)
//	_ = queue.Publish(ctx, "disk full", messaging.Alarm)
//	msg, _ := queue.Consume(ctx)
//
// Demonstration scenarios live in the scenario package and can be run with
// cmd/aqdemo.
package alarmq
