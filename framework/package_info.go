// Package framework contains the low-level implementation of test harness infrastructure
// that is not specific to the blog API being tested.
//
// The general model is:
//
// 1. The test harness talks to an API under test, whose base URL is given on the command
// line or in the configuration file. Before anything else runs, the harness probes one of
// its public resources to confirm that it is reachable.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. Tests form a tree: the suite, its groups, and the individual
// request checks within each group.
//
// 3. Tests run strictly one at a time, in the order they are declared. Nothing in this
// package starts a goroutine.
//
// The domain-specific code that knows what is being tested is responsible for building
// requests, deciding what counts as a pass, and recording the results it wants to report.
package framework
