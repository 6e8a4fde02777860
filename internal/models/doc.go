// Package models defines the core domain models for the lunch
// coordination service.
//
// # Models
//
//   - Group: a private, password-protected circle of users who plan
//     meals together
//   - Event: a single planned meal/outing belonging to exactly one group
//
// Users have no model of their own: a user is an opaque identifier
// handed to us by the transport (chat network id, API caller id). A
// user exists only as an entry in group member sets and as creator
// attribution on events.
//
// # Design Principles
//
//  1. **Group name is the key**: groups are addressed by their
//     human-assigned name, normalized with NormalizeGroupName before it
//     is used as a storage key.
//  2. **Events are immutable**: once created an event is never updated,
//     only deleted as a whole record.
//  3. **Member sets only grow**: there is no leave-group operation.
package models
