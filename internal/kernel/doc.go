// Package kernel provides the salted-hash kernels kerntune tunes.
//
// Each kernel processes a batch of loaded keys against one bound salt: every
// key is hashed with the salt value and the digest rehashed Cost-1 more times,
// so a salt's cost scales the work per item. Buffers are sized to the
// kernel's maximum batch at Setup and dropped at Teardown; bulk computes
// split the batch across the worker threads.
package kernel
