package thumbnail

// Package thumbnail extracts preview frames from a remote video at fixed
// relative positions. A run loads the media duration, then seeks and
// captures one frame at a time, strictly in order, and delivers the whole
// set once. Runs superseded by a newer URL never deliver.
