// Package retrieval ranks chunks against a query embedding and
// assembles the retrieved chunks into a prompt-ready context.
// Search is exact brute force: every eligible chunk is scored on
// every query.
package retrieval
