// Package apitests contains the blog API contract tests themselves and their supporting API.
//
// Harness infrastructure that is not specific to the blog API, such as the test tree, debug
// logging and filtering, is in the lower-level framework package. Requests are made with the
// client package and recorded with the report package.
package apitests
