// Package mnemonic wraps BIP39 recovery phrase handling. Pure, no I/O.
package mnemonic

import (
	"strings"

	bip39 "github.com/tyler-smith/go-bip39"

	dErrors "dcert/pkg/domain-errors"
)

// Supported entropy sizes in bits. 256 bits yields a 24-word phrase.
const (
	EntropyBits128 = 128
	EntropyBits160 = 160
	EntropyBits192 = 192
	EntropyBits224 = 224
	EntropyBits256 = 256

	DefaultEntropyBits = EntropyBits256
)

// SeedBytes is the length of the stretched seed produced by Seed.
const SeedBytes = 64

// Generate produces a new recovery phrase from the given entropy size.
// The word count follows the BIP39 table (128 bits -> 12 words, 256 -> 24).
func Generate(bits int) (string, error) {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidMnemonic, "unsupported entropy size")
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidMnemonic, "mnemonic generation failed")
	}
	return phrase, nil
}

// Validate reports whether the phrase has a known length, uses only word-list
// words, and carries a correct checksum. It never returns an error so callers
// can render a plain validation failure.
func Validate(phrase string) bool {
	return bip39.IsMnemonicValid(normalize(phrase))
}

// Seed stretches a valid phrase into a 64-byte seed with an empty passphrase.
// The wallet never persists the phrase or the seed.
func Seed(phrase string) ([]byte, error) {
	phrase = normalize(phrase)
	if !bip39.IsMnemonicValid(phrase) {
		return nil, dErrors.New(dErrors.CodeInvalidMnemonic, "mnemonic failed word-list or checksum validation")
	}
	return bip39.NewSeed(phrase, ""), nil
}

func normalize(phrase string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(phrase)), " ")
}
