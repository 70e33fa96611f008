package ratelimit

import (
	"iter"
	"strconv"

	"github.com/tidwall/gjson"
)

// Bucket is a structurally valid rate-limit category.
type Bucket struct {
	Name      string `json:"bucket" yaml:"bucket"`
	Remaining int64  `json:"remaining" yaml:"remaining"`
	Reset     int64  `json:"reset" yaml:"reset"`
}

// Exhausted reports whether the bucket has no calls left.
func (b Bucket) Exhausted() bool {
	return b.Remaining == 0
}

// Buckets yields every structurally valid entry of resources in document
// order. Entries that are not objects, or whose remaining/reset fields are
// not JSON integers, are skipped. A bucket name listed twice is yielded once,
// at its first position, with its last value.
func Buckets(resources Resources) iter.Seq[Bucket] {
	return func(yield func(Bucket) bool) {
		for _, m := range members(resources.doc) {
			bucket, ok := parseBucket(m.key, m.value)
			if !ok {
				continue
			}
			if !yield(bucket) {
				return
			}
		}
	}
}

// ConsideredBuckets yields the buckets eligible for selection. Unless
// includeAll is set only exhausted buckets are yielded.
func ConsideredBuckets(resources Resources, includeAll bool) iter.Seq[Bucket] {
	return func(yield func(Bucket) bool) {
		for bucket := range Buckets(resources) {
			if !includeAll && !bucket.Exhausted() {
				continue
			}
			if !yield(bucket) {
				return
			}
		}
	}
}

// Latest returns the bucket with the greatest reset. Among equal resets the
// first one seen wins. ok is false when seq yields nothing.
func Latest(seq iter.Seq[Bucket]) (selected Bucket, ok bool) {
	for bucket := range seq {
		if !ok || bucket.Reset > selected.Reset {
			selected = bucket
			ok = true
		}
	}
	return selected, ok
}

func parseBucket(name string, value gjson.Result) (Bucket, bool) {
	if !value.IsObject() {
		return Bucket{}, false
	}
	remaining, ok := integerField(value, "remaining")
	if !ok {
		return Bucket{}, false
	}
	reset, ok := integerField(value, "reset")
	if !ok {
		return Bucket{}, false
	}
	return Bucket{Name: name, Remaining: remaining, Reset: reset}, true
}

// integerField accepts only integral JSON number literals; strings, floats,
// exponents, and booleans are rejected.
func integerField(obj gjson.Result, field string) (int64, bool) {
	value := lastValue(obj, field)
	if value.Type != gjson.Number {
		return 0, false
	}
	n, err := strconv.ParseInt(value.Raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
