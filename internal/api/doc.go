// Package api exposes the catalog listing and server-side thumbnail sampling
// over HTTP with fiber.
package api
