/*
Package escrow implements a time-locked Escrow.

An escrow holds a deposit made by its creator in a custody account derived
from the escrow id. Funds leave the custody account exactly once:

  - the recipient can claim them once the deadline is reached
    (block time >= deadline),
  - the creator can refund them once the deadline has passed
    (block time > deadline).

At the deadline itself only the release is allowed. After any of the two
transfers the escrow is marked as released and cannot be used again. Escrows
are never deleted so that their history stays queryable.
*/
package escrow
