// Package pipeline schedules per-file work under the run's concurrency
// policy and aggregates per-file outcomes into a final summary.
//
// One scheduler serves both hardware paths: it is parameterized by a
// concurrency degree, 1 when the encoder is an exclusive hardware resource
// (nvidia) and the configured batch size otherwise. Workers own one file
// end-to-end (probe, decide, invoke, install); the aggregator is the only
// writer of shared counters.
package pipeline
