/*
Package errors implements custom error interfaces for custody.

Reuse the root errors declared in this package whenever possible. An extension
that needs its own category registers it once, at startup, with
Register(code, description). Error codes are exposed through ABCI so that a
client can act on the category of a failure.

Always create errors at the point of failure with ErrXyz.New("...") or
errors.Wrap(ErrXyz, "...") so that a stacktrace is attached. Wrapping multiple
times records only the first stacktrace.

Once you have an error, use fmt formatting to get more context

	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
