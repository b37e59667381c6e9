// Package sentiment assigns polarity buckets to item text.
//
// The scorer is a bag-of-words polarity lexicon; the classifier only
// depends on the ScoreFunc contract (deterministic, pure), so the lexicon
// can be swapped without touching classification.
package sentiment
