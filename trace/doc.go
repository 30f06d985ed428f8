// Package trace defines the observable steps of a closest-pair solve and the
// append-only sink / immutable trace that carry them to playback.
//
// A traced solve emits one Step per algorithmic decision, in exactly the order
// the recursion visits them (pre-order: divide, left subtree, right subtree,
// combine, strip, final), framed by a leading Start and a trailing Summary.
// The resulting Trace is the single source of truth for playback: it is never
// mutated after the solve returns, so any prefix of it can be replayed
// deterministically.
//
// Step variants:
//
//	Start      the x-sorted input
//	Divide     split at midX into left and right halves
//	BaseCase   recursion bottomed out (≤3 points)
//	Compare    one pairwise distance check (brute force or strip)
//	Result     brute-force subproblem solved
//	Combine    two subresults merged
//	Strip      candidate band around the divide line
//	Final      refined result of one recursive call
//	Summary    terminal step with elapsed time and step count
//
// Steps reference the solver's Point values; they never own new geometry and
// must be treated as read-only by every consumer.
//
// Invariant: the running minimum (Best) carried by Result, Combine, Final and
// Summary steps is non-increasing across the whole trace.
package trace
