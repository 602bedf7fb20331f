// Package delivery implements the Delivery aggregate: the lifecycle state
// machine of a single parcel delivery together with the proof collected along
// the way.
//
// The package includes:
//   - Status: the closed set of lifecycle states and the per-edge transition methods
//   - Step, Proof and Progress: the two ordered verification sequences (pickup, delivery)
//   - Actor and the transition table deciding who may move a delivery along which edge
//   - Dispute: the frozen branch that only an external resolution leaves
//   - Timeline: the append-only history of status changes
//   - Snapshot/Restore: persistence mapping with an integrity check on load
//
// Key business rules:
//   - Every status change appends exactly one timeline entry; timestamps never go backwards
//   - awaiting_pickup -> in_transit requires the full pickup sequence (code, goods photo,
//     driver ID photo, driver selfie); in_transit -> awaiting_buyer_confirmation requires
//     the delivery photo
//   - Driver and vehicle can change only in assigned or awaiting_pickup
//   - A rejected proof artifact freezes the delivery until it is resubmitted
//   - A disputed delivery accepts no submissions and no transitions except resolution
//   - Every failed operation leaves the aggregate exactly as it was
package delivery
