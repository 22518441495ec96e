package simhash

import (
	"hash/fnv"
	"math/bits"
	"strings"
)

// ChangeThreshold is the Hamming distance below which two page snapshots
// are considered the same content. Tuned for word-level fingerprints of
// cleaned page text, where small edits shift only a few bits.
const ChangeThreshold = 6

// Fingerprint computes a 64-bit SimHash of cleaned page text.
// Tokens are lowercased words hashed with FNV-64a and accumulated into a
// per-bit vote vector, so reordered boilerplate and minor wording changes
// land close in Hamming space.
func Fingerprint(text string) uint64 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}

	var vector [64]int

	for _, word := range words {
		h := fnv.New64a()
		h.Write([]byte(word))
		hash := h.Sum64()

		for i := 0; i < 64; i++ {
			if hash&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	var fingerprint uint64
	for i := 0; i < 64; i++ {
		if vector[i] > 0 {
			fingerprint |= 1 << uint(i)
		}
	}

	return fingerprint
}

// Distance returns the Hamming distance between two fingerprints.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Changed reports whether two snapshots differ enough to count as new
// content. A zero fingerprint means no prior snapshot, which always counts
// as changed.
func Changed(previous, current uint64) bool {
	if previous == 0 {
		return true
	}
	return Distance(previous, current) > ChangeThreshold
}
