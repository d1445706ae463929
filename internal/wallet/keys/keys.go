// Package keys derives the wallet's two keypairs from a BIP39 seed.
//
// Derivation uses BIP32 hardened paths of the form
//
//	m/44'/1453'/account'/entity/branch
//
// where branch 0 yields the identifier key (the DID anchor) and branch 1 the
// signing key. The two branches are siblings differing in a single path
// segment, so the keys are cryptographically independent while remaining
// recoverable from one phrase.
package keys

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil/hdkeychain"
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"

	dErrors "dcert/pkg/domain-errors"
)

const (
	purposeIndex  = 44
	coinTypeIndex = 1453

	// BranchIdentifier and BranchSigning are the final path segment for the
	// two derived keys. The identifier key never signs; the signing key may
	// rotate in a future version without changing the DID.
	BranchIdentifier uint32 = 0
	BranchSigning    uint32 = 1
)

// KeyPair couples a secp256k1 private key with its public point.
type KeyPair struct {
	Private *secp256k1.PrivateKey
	Public  *secp256k1.PublicKey
}

// PublicKeyHex returns the compressed public key as lowercase hex, the format
// published in DID documents.
func (k KeyPair) PublicKeyHex() string {
	return hex.EncodeToString(k.Public.SerializeCompressed())
}

// Ring holds the two keypairs of one wallet identity.
type Ring struct {
	Identifier KeyPair
	Signing    KeyPair
}

// Derive expands a seed into the identifier and signing keypairs for the
// given account and entity discriminator. Deterministic: the same inputs
// always produce the same ring.
func Derive(seed []byte, account, entity uint32) (*Ring, error) {
	if len(seed) < hdkeychain.MinSeedBytes || len(seed) > hdkeychain.MaxSeedBytes {
		return nil, dErrors.New(dErrors.CodeInvalidSeed,
			fmt.Sprintf("seed must be between %d and %d bytes, got %d",
				hdkeychain.MinSeedBytes, hdkeychain.MaxSeedBytes, len(seed)))
	}

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidSeed, "master key derivation failed")
	}

	branchRoot, err := deriveBranchRoot(master, account, entity)
	if err != nil {
		return nil, err
	}

	identifier, err := deriveLeaf(branchRoot, BranchIdentifier)
	if err != nil {
		return nil, err
	}
	signing, err := deriveLeaf(branchRoot, BranchSigning)
	if err != nil {
		return nil, err
	}

	return &Ring{Identifier: identifier, Signing: signing}, nil
}

// deriveBranchRoot walks m/44'/1453'/account'/entity.
func deriveBranchRoot(master *hdkeychain.ExtendedKey, account, entity uint32) (*hdkeychain.ExtendedKey, error) {
	key := master
	for _, step := range []uint32{
		hdkeychain.HardenedKeyStart + purposeIndex,
		hdkeychain.HardenedKeyStart + coinTypeIndex,
		hdkeychain.HardenedKeyStart + account,
		entity,
	} {
		child, err := key.Derive(step)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidSeed, "child key derivation failed")
		}
		key = child
	}
	return key, nil
}

func deriveLeaf(branchRoot *hdkeychain.ExtendedKey, branch uint32) (KeyPair, error) {
	leaf, err := branchRoot.Derive(branch)
	if err != nil {
		return KeyPair{}, dErrors.Wrap(err, dErrors.CodeInvalidSeed, "leaf key derivation failed")
	}
	ecPriv, err := leaf.ECPrivKey()
	if err != nil {
		return KeyPair{}, dErrors.Wrap(err, dErrors.CodeInvalidSeed, "private key extraction failed")
	}
	priv := secp256k1.PrivKeyFromBytes(ecPriv.Serialize())
	return KeyPair{Private: priv, Public: priv.PubKey()}, nil
}

// ParsePublicKeyHex parses a compressed secp256k1 public key from hex.
func ParsePublicKeyHex(pubHex string) (*secp256k1.PublicKey, error) {
	raw, err := hex.DecodeString(pubHex)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryptionFailed, "public key is not valid hex")
	}
	pub, err := secp256k1.ParsePubKey(raw)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryptionFailed, "public key is not a valid curve point")
	}
	return pub, nil
}
