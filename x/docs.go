/*
Package x contains the standard extensions of custody.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together to construct an application.

This package holds the small interfaces shared by all of them,
most notably the Authenticator that every state changing handler
receives in its constructor. Sub-packages implement the ledger
(cash), signature verification (sigs), transaction utilities
(utils) and the two custody primitives: escrow and savings.

Protobuf types in exported code will be prefixed by the package,
so follow standard go naming conventions and avoid stutter. Use
`escrow.CreateMsg` in place of `escrow.CreateEscrowMsg`.
*/
package x
