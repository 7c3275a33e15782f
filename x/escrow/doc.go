/*
Package escrow implements a single slot escrow.

Every escrow instance is a named slot installed at genesis. A payer locks
a fixed amount for a receiver by creating an escrow in an empty slot. The
receiver may claim the funds, or the payer may cancel and get them back,
as long as the escrow is still active. Claimed and cancelled escrows are
kept as inert records.

The state transitions are implemented by Machine, which never touches the
storage. The handlers load the record, run the machine with the signer of
the transaction, move the funds as instructed and store the new record.
*/
package escrow
