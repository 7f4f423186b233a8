package deploy

import "hash/fnv"

// BucketFor deterministically maps (salt, userId) to a value in [0,1):
// FNV-1a 64-bit (offset 14695981039346656037, prime 1099511628211, per the
// standard library's fnv.New64a) over the UTF-8 bytes of salt+"|"+userId,
// taken mod 10000 and divided by 10000. Any reimplementation must use
// these exact constants to reproduce the same bucket assignments.
func BucketFor(salt, userID string) float64 {
	h := fnv.New64a()
	h.Write([]byte(salt + "|" + userID))
	return float64(h.Sum64()%10000) / 10000
}
