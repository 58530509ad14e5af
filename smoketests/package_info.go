// Package smoketests contains the KAI API smoke tests themselves and their supporting API.
//
// Test harness infrastructure that is not specific to the KAI domain, such as running
// subtests, recording results, and reporting them, is in the lower-level framework package.
// Requests to the service go through the client package.
package smoketests
