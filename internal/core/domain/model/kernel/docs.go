// Package kernel provides the shared domain primitives of the parceltrack service.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - GeoPoint: a validated latitude/longitude pair with great-circle distance
//   - Contact: a named party with a validated phone number
//   - MediaRef: an opaque reference to an uploaded photo held by media storage
//   - Money: an amount in minor units with an ISO 4217 currency
//   - Event: the contract every domain event satisfies
//
// All value objects are immutable, embed a guard.ConstructorGuard and reject
// their zero value in Validate, so an unmapped column never reaches the domain.
package kernel
