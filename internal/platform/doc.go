package platform

// Package platform contains OS integration helpers: download directory
// discovery, safe file naming, and opening or revealing saved files.
