// Package hood implements the Hood.de marketplace protocol.
//
// It is split into a pure request builder and a transport client:
//
//   - RequestBuilder turns a Product or a lookup key into the marketplace's
//     XML envelope (itemDetail, itemInsert, itemUpdate). Documents are built
//     as structured element trees and rendered by the XML encoder, so
//     escaping is correct by construction. Product name and description are
//     wrapped in CDATA sections.
//   - HTTPClient posts the documents as application/xml, parses responses,
//     and classifies the outcome.
//
// # Existence Semantics
//
// ItemExists returns one of three outcomes: Found, NotFound, or CheckFailed.
// CheckFailed covers everything where the check itself broke (transport
// failure, non-success status, unparsable body). The client reports it as-is;
// the sync orchestrator maps it to "treat as absent" so a flaky check can
// only cause an extra insert attempt, never a silently dropped listing.
//
// # Authentication
//
// The marketplace expects the account password as a single MD5 round over the
// UTF-8 plaintext in lower-case hex. That digest is a wire-protocol contract
// inherited from the marketplace, not a security mechanism of this service.
package hood
