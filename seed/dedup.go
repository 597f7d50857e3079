package seed

import (
	"fmt"

	"github.com/minio/highwayhash"

	"github.com/viant/scanexr/step"
)

// hashKey is fixed and arbitrary; it only needs to be stable within one
// process so equal Step keys hash equal, the way inspector/graph.Hash uses
// a fixed key for content hashing.
var hashKey = []byte("scanexr-step-dedup-key-012345678")

// seenSet tracks first-seen Steps (ignoring Context, per step.Step.Equal)
// across a project that may span many thousands of files, hashing each
// candidate's key instead of formatting it into a string map key.
type seenSet struct {
	seen map[uint64][]step.Key
}

func newSeenSet() *seenSet {
	return &seenSet{seen: make(map[uint64][]step.Key)}
}

// add reports whether s is newly seen; it records s's key either way is
// unnecessary — only new steps are recorded.
func (set *seenSet) add(s step.Step) bool {
	key := s.AsKey()
	h := hashStepKey(key)
	for _, existing := range set.seen[h] {
		if existing == key {
			return false
		}
	}
	set.seen[h] = append(set.seen[h], key)
	return true
}

func hashStepKey(key step.Key) uint64 {
	hasher, err := highwayhash.New64(hashKey)
	if err != nil {
		// hashKey is fixed at the 32 bytes New64 requires; New64 can only
		// fail on a key of any other length.
		panic(fmt.Sprintf("seed: invalid highwayhash key: %v", err))
	}
	fmt.Fprintf(hasher, "%s\x00%d\x00%d\x00%d\x00%d", key.Path, key.Start.Line, key.Start.Character, key.End.Line, key.End.Character)
	return hasher.Sum64()
}
