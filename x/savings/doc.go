/*
Package savings implements rotating savings pools.

A pool is created with an ordered, fixed list of members and a contribution
unit. Members contribute funds that are kept in the custody account of the
pool. Once the payout interval has elapsed since the last payout, anyone can
trigger a distribution that sends contribution * len(members) to the member
whose turn it is. Turns rotate through the members in their original order,
so that during every full cycle each member is paid exactly once.

Contributions are only accounted as the pool total. A member can contribute
more than once per round and an amount different from the contribution unit.
*/
package savings
