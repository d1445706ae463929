// Package crypt hybrid-encrypts wallet payloads under a recipient's public
// key: ephemeral secp256k1 key agreement, HKDF-SHA256 key expansion, and
// ChaCha20-Poly1305 sealing. The issuer encrypts ledger records under its own
// key, which keeps them confidential against the storage backend operator.
package crypt

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"dcert/internal/wallet/keys"
	dErrors "dcert/pkg/domain-errors"
)

// hkdfInfo binds derived keys to this scheme; changing it invalidates all
// existing envelopes.
const hkdfInfo = "dcert-ecies-v1"

// Envelope is the serialized result of Encrypt. The ephemeral public key is
// compressed hex; nonce and ciphertext are standard base64.
type Envelope struct {
	EphemeralPublicKey string `json:"ephemeral_public_key"`
	Nonce              string `json:"nonce"`
	Ciphertext         string `json:"ciphertext"`
}

// Encrypt serializes payload as JSON and seals it for the holder of the
// private key matching recipientPublicKeyHex (compressed secp256k1, hex).
// A malformed recipient key is fatal: callers abort before any network write.
func Encrypt(payload any, recipientPublicKeyHex string) (*Envelope, error) {
	recipient, err := keys.ParsePublicKeyHex(recipientPublicKeyHex)
	if err != nil {
		return nil, err
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryptionFailed, "payload serialization failed")
	}

	ephemeral, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryptionFailed, "ephemeral key generation failed")
	}
	ephemeralPub := ephemeral.PubKey().SerializeCompressed()

	aead, err := deriveAEAD(secp256k1.GenerateSharedSecret(ephemeral, recipient), ephemeralPub)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryptionFailed, "nonce generation failed")
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, ephemeralPub)

	return &Envelope{
		EphemeralPublicKey: hex.EncodeToString(ephemeralPub),
		Nonce:              base64.StdEncoding.EncodeToString(nonce),
		Ciphertext:         base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// Decrypt opens an envelope with the recipient's private key and unmarshals
// the plaintext into out. Opening with any other key fails.
func Decrypt(env *Envelope, priv *secp256k1.PrivateKey, out any) error {
	if env == nil {
		return dErrors.New(dErrors.CodeEncryptionFailed, "nil envelope")
	}
	ephemeralPub, err := hex.DecodeString(env.EphemeralPublicKey)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeEncryptionFailed, "ephemeral key is not valid hex")
	}
	ephemeral, err := secp256k1.ParsePubKey(ephemeralPub)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeEncryptionFailed, "ephemeral key is not a valid curve point")
	}
	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeEncryptionFailed, "nonce is not valid base64")
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeEncryptionFailed, "ciphertext is not valid base64")
	}

	aead, err := deriveAEAD(secp256k1.GenerateSharedSecret(priv, ephemeral), ephemeralPub)
	if err != nil {
		return err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, ephemeralPub)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeEncryptionFailed, "envelope authentication failed")
	}

	if err := json.Unmarshal(plaintext, out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeEncryptionFailed, "payload deserialization failed")
	}
	return nil
}

func deriveAEAD(sharedSecret, ephemeralPub []byte) (cipher.AEAD, error) {
	info := append([]byte(hkdfInfo), ephemeralPub...)
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, sharedSecret, nil, info), key); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryptionFailed, "key derivation failed")
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeEncryptionFailed, "cipher construction failed")
	}
	return aead, nil
}
