// Package catalog lists the media files stored under a folder prefix of an
// S3 bucket and signs short-lived GET URLs for them.
package catalog
