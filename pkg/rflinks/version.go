// Package rflinks holds build metadata for the rflinks tool.
package rflinks

// Version is the release version reported by `rflinks version`.
const Version = "0.1.0"
