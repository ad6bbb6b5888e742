// Package stockwatch implements the valuation engine behind the stockwatch
// command: it fetches quotes and FX rates for a set of holdings concurrently,
// converts everything into a single display currency, and aggregates the
// results into immutable portfolio snapshots.
//
// All market access goes through the MarketProvider interface, implemented
// for Yahoo Finance in the yahoo subpackage, so the engine itself never
// depends on a specific provider.
package stockwatch
