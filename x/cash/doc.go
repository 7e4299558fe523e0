/*
Package cash keeps the coin balance of every address.

Balances never go below zero. SendMsg lets a wallet owner move coins, and
the Controller moves value in and out of the custody accounts of the
escrow and savings extensions.
*/
package cash
