// Package dst implements Dempster-Shafer evidence theory over a frame of
// discernment of at most MaxHypotheses mutually exclusive hypotheses.
//
// A Universe registers caller-supplied hypothesis ids and assigns each a
// stable bit position. Evidence minted by a Universe holds focal sets
// (mass assigned to exactly one subset of the frame), combines with other
// evidence of the same Universe using Dempster's rule, and answers belief,
// plausibility and best-hypothesis queries.
//
// Hypothesis ids that a Universe does not know are dropped silently when a
// set of ids is resolved. Callers can rely on this: evidence about
// hypotheses outside the frame contributes nothing to the resolved subset.
//
// Focal sets with identical subsets are never folded implicitly. Use
// Evidence.Merged when a compact assignment is wanted.
//
// None of the types lock. A Universe must be fully registered before
// evidence is built against it; after that Universe and Evidence values may
// be read concurrently. Mutating an Evidence requires exclusive access.
package dst
