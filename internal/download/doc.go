package download

// Package download implements progressive HTTP downloads: a chunked reader
// that reports percent, elapsed time and ETA on a fixed tick, a saver that
// hands the assembled payload to the filesystem, and a task manager that runs
// several downloads under a parallelism limit and propagates progress to UI.
