// Package types defines the data model shared by the deployment pipeline:
// template entries and their operation keys, build configurations, boards
// with their active configuration, and the per-invocation Session.
package types
