// Package kernel provides the value objects shared by the dispatch domain:
//   - UUID: identifier of couriers and orders, wrapping github.com/google/uuid
//   - Location: a validated latitude/longitude pair
//
// Both are immutable and must be created through their constructors; zero
// values fail Validate.
package kernel
