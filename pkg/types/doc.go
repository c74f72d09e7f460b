// Package types defines the link Record, the Storage port that record
// stores persist through, configuration, and the standard error values
// for rflinks.
package types
