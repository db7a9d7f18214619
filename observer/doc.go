// Package observer provides pipeline.Observer implementations.
//
//   - LogObserver: writes each pipeline run and its stages to a logr.Logger
//     (run id, stage name, duration, error). Everything is logged at
//     verbosity 1 so a default logger stays quiet and stdout stays clean.
package observer
