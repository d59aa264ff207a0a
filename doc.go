// Package depot turns a raw brokerage transaction export into portfolio
// valuation history and performance figures, and optionally compares them
// against a buy-and-hold benchmark index.
//
// The core functionalities include:
//   - Event Normalization: Parsing raw broker rows (deposits, withdrawals,
//     buys, sells, locale-specific labels included) into typed, validated
//     events.
//   - Position Ledger: Tracking cash, positions, weighted-average cost
//     basis, fees and realized profit through the full event stream, with
//     exact decimal arithmetic.
//   - Valuation History: One immutable snapshot per trading date, taken
//     after every event of that date has been applied.
//   - Performance Solving: Simple return, money-weighted return (XIRR via
//     Newton-Raphson) and time-weighted return (TWR chained across capital
//     flows), plus annualization.
//   - Benchmark Simulation: Replaying the capital-flow schedule against an
//     index price series to answer "what if the same money had bought the
//     index", including alpha against the real portfolio.
//
// This package serves as the foundational logic for the `dpt` command-line
// tool; it performs no I/O of its own beyond the loaders and quote
// fetchers, and keeps no state between runs.
package depot
