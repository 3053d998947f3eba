// Package shop holds the state and business rules of a group-buy storefront.
//
// It has no HTTP or rendering dependencies. The web package drives it, the
// export package reads from it, and tests use it directly.
//
// # State
//
// A [Shop] owns everything an operator configures and everything customers
// submit during one process lifetime:
//
//   - the [Storefront] appearance (title, description, colors, background)
//   - the catalog, an ordered list of [Product]
//   - the append-only list of [Order]
//   - the admin credential, behind the [Verifier] interface
//   - image blobs referenced by products and the storefront
//
// Nothing is persisted. All methods are safe for concurrent use.
//
// # Orders
//
// [Shop.PlaceOrder] prices a cart with [QuoteOrder], validates the request
// and appends the order in one step under the store lock. Validation stops at
// the first failing rule:
//
//  1. customer name and phone present ([ErrMissingContactInfo])
//  2. product subtotal above zero ([ErrEmptyCart])
//  3. store name present for store pickup delivery ([ErrMissingStoreInfo])
//  4. address present for home delivery ([ErrMissingAddress])
//
// Shipping fees are fixed per [ShippingMethod] and do not depend on the cart.
//
// # Errors
//
// Every rule violation is a sentinel error. [MapError] turns any of them
// into a [UserMessage] with a support code for inline display.
package shop
