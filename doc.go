// Package commerce implements the storefront backend: catalog and order
// persistence over Bun repositories, plus the credential issuance and
// verification flow used by every protected route.
//
// Session model:
//   - Login mints a short-lived access token and a longer-lived refresh
//     token, both HS256-signed with distinct secrets. Tokens are stateless;
//     nothing is persisted server-side between requests.
//   - Clients present both tokens in a single Authorization header,
//     "Bearer <access> <refresh>". The three-part layout is a wire convention
//     inherited from the previous implementation and is kept for client
//     compatibility; header.go is the only place that knows about it.
//   - middleware/jwtware gates protected routes by validating the access
//     token and exposing its claims through the request context.
//
// Credential strategies:
//   - LocalStrategy owns password hashing and verification. Accounts
//     provisioned through an external identity provider carry no password
//     hash and no strategy capable of verifying one, so a local login against
//     them fails before any hashing work happens.
package commerce
