// Package views holds the derived queries over a warranty snapshot:
// upcoming and expired records, text search, category filter, per-record
// status and the dashboard summary.
//
// All functions are pure. They never modify their input and return
// results in input order. A Date is turned into an instant at midnight in
// the caller-supplied location before comparing it with now.
package views
