// Package pipeline provides a single-value pipeline type. A Pipeline runs stages
// in order (optionally with its own Source); each stage's output is the next
// stage's input and the first error stops the run.
//
// Optional pre/post hooks (Observer) report each run and stage: BeforePipeline,
// BeforeStage/AfterStage (input, output, duration), AfterPipeline (result or
// error). Pass RunOptions{Observer: obs} to Run or RunWithInput. Every observed
// run carries a RunID; one is generated when the caller leaves it empty.
//
// Stage errors are wrapped as "stage N: ..." with %w so callers can still match
// the underlying error with errors.As or errors.Is.
package pipeline
