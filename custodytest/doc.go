/*
Package custodytest provides mocks and helpers shared by the tests of all
extensions: authenticators, handlers, decorators, transactions, random
conditions and addresses, and an ABCI runner that drives a whole
application block by block.
*/
package custodytest
