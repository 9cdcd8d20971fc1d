// Package app composes the storefront services into a running application.
//
// # Package Structure
//
//	internal/app/
//	├── application.go      # Application struct, wiring, seeding, lifecycle
//	├── domain/             # Domain models (pure data structures)
//	│   ├── user/           # Users and roles
//	│   ├── catalog/        # Products and the stock seed catalog
//	│   ├── cart/           # Carts and denormalized cart items
//	│   └── order/          # Immutable orders built from cart snapshots
//	├── storage/            # Store interfaces and the in-memory implementation
//	├── services/           # Business rules over the store interfaces
//	│   ├── auth/           # Registration, login, JWT issue/verify
//	│   ├── users/          # Admin-driven user management
//	│   ├── catalogsvc/     # Catalog reads and seeding
//	│   ├── cartsvc/        # Cart mutations with per-user serialization
//	│   └── orders/         # Checkout, order listing, notifier
//	├── httpapi/            # REST surface, middleware, audit log
//	├── system/             # Service lifecycle interface and manager
//	└── metrics/            # Prometheus collectors and HTTP instrumentation
package app
