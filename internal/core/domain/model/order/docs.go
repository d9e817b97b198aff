// Package order holds the dispatch projection of an order: the drop-off
// point, the lifecycle status reported by the order service and the
// assignment stamps (courier, assignment time, ETA) written by dispatch.
//
// The order service owns the rest of the order (items, payment, address
// text). Dispatch never creates orders on its own behalf; it mirrors them
// and stamps assignments.
package order
