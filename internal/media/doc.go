package media

// Package media wraps the ffprobe/ffmpeg command line tools as a seekable
// player: probe the duration of a remote file, seek to a timestamp and
// decode the single frame found there.
