// Package batch reconstructs many events concurrently.
//
// A Runner fans events out to a bounded pool of workers (errgroup with
// SetLimit). Each event draws from its own RNG stream, reco.Stream(seed,
// index), so results are identical for any worker count. Outcomes are
// re-sequenced and handed to the Sink one at a time in ascending event
// index order.
//
// The Summary counts outcomes per status and reason and fills hbook
// histograms of the accepted events, which can be written as YODA.
// Prometheus metrics are optional.
package batch
