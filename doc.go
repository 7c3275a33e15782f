/*
Package ledger defines the interfaces shared by the campus escrow ledger:
storage, transactions, handlers, identities and the ABCI result types.

Extensions living under x/ implement Handlers and Decorators on top of
these interfaces. The app package glues them into an abci.Application.
*/
package ledger
