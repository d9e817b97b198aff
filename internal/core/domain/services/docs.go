// Package services provides the dispatch domain services: logic that spans
// the courier and order aggregates and belongs to neither of them.
//
// The package includes:
//   - DispatchScorer: ranks candidate couriers for a drop-off point
//   - OrderStatusLedger: the order status transitions dispatch may perform
//   - OrderDispatcher: binds an order to a courier and back, keeping the
//     order stamps and the courier load consistent
//
// All services are stateless values and safe for concurrent use.
package services
