// Package accuracy measures how closely approximation variants track a
// reference implementation over a sampled input range.
//
// [Evaluate] samples N points x_i = start + i·(end-start)/N for i in [0, N),
// compares each variant with the reference at every point and reports
// average, maximum, relative and RMS errors. [Trace] produces the dense,
// endpoint-inclusive series used for plotting curves and error profiles.
//
// Evaluation is synchronous and deterministic: identical inputs produce
// identical reports, and no state survives between calls.
package accuracy
