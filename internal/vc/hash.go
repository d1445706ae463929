package vc

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashCredential computes the content hash of a signed credential over its
// canonical form including the proof. The hash is the integrity reference
// handed to the backend alongside encrypted blobs.
func HashCredential(c *Credential) (string, error) {
	canonical, err := CanonicalForm(c, true)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256(canonical)
	return hex.EncodeToString(digest[:]), nil
}
