package model

// Package model defines domain data structures shared by the sampler, the
// downloader and the UI: catalog items, sample specs and thumbnail sets,
// download progress snapshots, tasks and status enums.
