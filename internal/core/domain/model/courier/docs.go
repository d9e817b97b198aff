// Package courier implements the courier registry aggregate: identity,
// optional last known location, rating, the availability state machine and
// the active order counter used for load balancing.
//
// The package includes:
//   - Courier: the aggregate root
//   - Status: Available, EnRoute, Busy, OffDuty with their wire labels
//   - ReleaseReason: why a carried order stops counting towards load
//
// Key business rules:
//   - Only active couriers that are Available or EnRoute accept new orders
//   - The first assignment moves an Available courier to EnRoute
//   - The last release moves an EnRoute courier back to Available
//   - Load cannot be decremented below zero
package courier
