/*
Package custody defines all common interfaces to tie together the
various subpackages of the custody state machine, as well as
implementations of some of the simpler components (when interfaces
would be too much overhead).

Two ledgers are built on top of it: x/escrow holds time-locked
deposits and x/savings runs rotating savings pools. Both rely on
x/cash to move funds, on an x.Authenticator to learn who authorized a
transaction and on the orm package to persist their records.

We pass context through context.Context between app, middleware, and
handlers. To do so, custody defines some common keys to store info,
such as block height, block time and chain id. Each extension may add
its own keys to enrich the context with specific data.

There should exist two functions for every XYZ of type T that we want
to support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).
*/
package custody
