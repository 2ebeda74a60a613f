// Package digest is the uniform hash contract ft-ssl's HMAC layer is
// built against (spec §4.1): block size, digest size, and an
// init/update/finalize cycle. The primitives themselves (MD5, the
// SHA-2 family, Whirlpool) are explicitly out of scope for this
// toolkit — they are consumed through this interface, not
// reimplemented.
//
// Go's standard hash.Hash already expresses exactly this contract
// (Reset/Write/Sum plus BlockSize/Size), so Digest is defined as an
// alias rather than a parallel type: every stdlib hash and the
// third-party Whirlpool implementation satisfy it without adapters.
package digest

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/jzelinskie/whirlpool"
)

// Digest is the init/update/finalize contract HMAC depends on.
type Digest = hash.Hash

// New constructs a fresh Digest of one algorithm; Lookup maps an
// algorithm name to its New.
type New func() Digest

// Algorithm names, matching the CLI subcommand names in spec.md §6.
const (
	MD5        = "md5"
	SHA224     = "sha224"
	SHA256     = "sha256"
	SHA384     = "sha384"
	SHA512     = "sha512"
	Whirlpool  = "whirlpool"
)

// Lookup returns the constructor for a named digest algorithm.
func Lookup(name string) (New, error) {
	switch name {
	case MD5:
		return md5.New, nil
	case SHA224:
		return sha256.New224, nil
	case SHA256:
		return sha256.New, nil
	case SHA384:
		return sha512.New384, nil
	case SHA512:
		return sha512.New, nil
	case Whirlpool:
		return func() Digest { return whirlpool.New() }, nil
	default:
		return nil, fmt.Errorf("unsupported digest algorithm: %s", name)
	}
}

// Sum computes the digest of data in one call.
func Sum(newHash New, data []byte) []byte {
	h := newHash()
	h.Write(data)
	return h.Sum(nil)
}
