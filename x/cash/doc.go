/*
Package cash keeps the balances of the ledger accounts.

There is a single currency and no logic in it, except that the balance
of any wallet may not go below zero. Thus, this implementation is
referred to as cash. Simple and safe.
*/
package cash
