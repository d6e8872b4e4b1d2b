// Package autotune discovers, once per kernel and before real work starts,
// the batch-size multiplier ("scale") per worker thread that maximizes the
// kernel's aggregate throughput.
//
// A host drives a kernel through the Tuner in two calls:
//
//	mult, err := tuner.Autotune(ctx, k, nil) // capture base batch, multiply by threads
//	err = k.Setup()
//	mult, err = tuner.Autotune(ctx, k, db)   // empirical search against db
//
// The search probes scales 1, 2, 4, 8, ... On each probe the benchmark
// harness tears the kernel down, provisions it for base*threads*scale items,
// loads synthetic keys, binds the most expensive salt within the cost cap and
// runs bulk computes for at least the sample time and at least as many
// operations as the previous probe. A probe wins only if it beats the best
// throughput so far by the required gain. The search stops once a probe runs
// longer than the trial cap or too many probes in a row fail to win; the
// kernel is then left provisioned for the winning scale.
//
// Tuning state is owned by the Tuner, keyed by kernel identity. A call made
// while that kernel's search is in flight (typically from the kernel's own
// Setup) answers from the current configuration without searching, and a
// call after tuning has finished returns the recorded multiplier.
package autotune
