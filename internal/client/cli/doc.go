// Package cli provides the interactive WarrantyKeeper command-line client.
//
// It wires configuration, logging, local storage, the warranty store and
// the preferences service, then runs a read-eval-print loop over stdin.
//
// Commands:
//   - add / edit / delete / show: manage single warranties
//   - list [all|active|expired], search, category: browse the collection
//   - upcoming [days], expired, summary: expiry views and the dashboard
//   - categories, prefs, toggle <name>: reference data and preferences
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// and flushes the store on the way out. Prompts are only printed when stdin
// is a terminal, so commands can also be piped in.
package cli
