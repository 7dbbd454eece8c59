// Package task defines how a unit of work is identified: the
// (type, tag, name) descriptor triple and the short content-derived
// hash used as a durable task ID.
package task

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/big"
)

// hashModulus reduces the digest to a 6-digit decimal ID.
const hashModulus = 1_000_000

// Descriptor identifies what is being worked on.
type Descriptor struct {
	Type string
	Tag  string
	Name string
}

// Valid reports whether the descriptor is complete. All three fields
// must be non-empty; blank records are not worth tracking.
func (d Descriptor) Valid() bool {
	return d.Type != "" && d.Tag != "" && d.Name != ""
}

// Hash returns the 6-digit identity hash for this descriptor.
func (d Descriptor) Hash() string {
	return HashOf(d.Type, d.Tag, d.Name)
}

// HashOf derives a deterministic 6-digit decimal ID from a task's
// fields: MD5 of the concatenated fields, taken as an integer modulo
// one million, zero-padded. MD5 is used purely as a stable short-ID
// generator, not for security.
//
// The fields are concatenated with no separator, so ("a","b","cd") and
// ("ab","","cd") collide. Kept as-is for compatibility with existing
// data files.
func HashOf(taskType, taskTag, taskName string) string {
	sum := md5.Sum([]byte(taskType + taskTag + taskName))
	digest := hex.EncodeToString(sum[:])

	n := new(big.Int)
	n.SetString(digest, 16)
	n.Mod(n, big.NewInt(hashModulus))

	return fmt.Sprintf("%06d", n.Int64())
}
