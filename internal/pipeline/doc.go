// Package pipeline turns generated events into persisted truth records.
//
// A GeneratedEvent carries the generator event record and, optionally, the
// flux driver state it was drawn from. The Processor translates it into
// MCTruth, GTruth and MCFlux and saves the result to a storage sink.
//
// # Input format
//
// Events are read as JSON lines, one event per line:
//
//	{"run": 1, "event": 7, "record": { ... }, "flux": {"kind": "numi", "numi": { ... }}}
//
// The flux envelope is described in package mcflux.
//
// # Stages
//
// Each event passes three stages in order: decode, translate and save. A
// failure is reported as a *StageError naming the stage, and batch
// processing stops at the first failure.
package pipeline
