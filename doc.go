// Package rebalance provides a set of functions and types for tracking tax
// lots and rebalancing a personal investment portfolio. It is designed to be
// local-first and auditable: all state lives in a human-readable ledger, and
// every report is recomputed from it on demand.
//
// The core functionalities include:
//   - Ledger Management: Recording security declarations, target weights,
//     cash movements and trades in an append-only, chronological record.
//   - Lot Accounting: Reconstructing tax lots from the trade history and
//     matching sales to open lots from the highest cost basis down, with
//     transaction fees amortized into the basis.
//   - Allocation Analysis: Comparing the portfolio's current allocation per
//     asset class against its target weights and measuring the drift.
//   - Trade Recommendations: Proposing whole-share buys and sells that move
//     the portfolio toward its targets, with the tax impact of every
//     recommended sale spelled out lot by lot.
//   - Cash Deployment: Allocating a fresh cash deposit across the most
//     underweight asset classes without selling anything.
//
// This package serves as the foundational logic for the `rbl` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package rebalance
