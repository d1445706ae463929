// Package identity builds decentralized identifiers from derived key material
// and defines the capability through which services obtain the session's keys.
package identity

import (
	"context"
	"encoding/base64"
	"sync"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"dcert/internal/wallet/keys"
	"dcert/internal/wallet/mnemonic"
	id "dcert/pkg/domain"
	dErrors "dcert/pkg/domain-errors"
)

// Method is the DID method name of this wallet.
const Method = "dcert"

// EntityType is the single-character tag embedded after the method prefix.
type EntityType byte

const (
	EntityPerson      EntityType = 'p'
	EntityInstitution EntityType = 'i'
)

// Valid reports whether the entity type is a known tag.
func (e EntityType) Valid() bool {
	return e == EntityPerson || e == EntityInstitution
}

// DerivationIndex maps the entity type onto the derivation path discriminator.
func (e EntityType) DerivationIndex() uint32 {
	if e == EntityInstitution {
		return 1
	}
	return 0
}

// DIDFromPublicKey builds the DID string for an identifier public key.
// Pure function: regenerating from the same phrase always yields the same DID.
func DIDFromPublicKey(pub *secp256k1.PublicKey, entity EntityType) id.DID {
	encoded := base64.RawURLEncoding.EncodeToString(pub.SerializeCompressed())
	return id.DID("did:" + Method + ":" + string(entity) + encoded)
}

// Identity is the in-memory wallet identity for one session. The mnemonic and
// seed are dropped after derivation; only the keypairs and DID remain.
type Identity struct {
	DID    id.DID
	Entity EntityType
	Name   string
	Keys   *keys.Ring
}

// FromMnemonic derives a full identity from a recovery phrase.
func FromMnemonic(phrase string, entity EntityType, account uint32, name string) (*Identity, error) {
	if !entity.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown entity type")
	}
	seed, err := mnemonic.Seed(phrase)
	if err != nil {
		return nil, err
	}
	ring, err := keys.Derive(seed, account, entity.DerivationIndex())
	if err != nil {
		return nil, err
	}
	return &Identity{
		DID:    DIDFromPublicKey(ring.Identifier.Public, entity),
		Entity: entity,
		Name:   name,
		Keys:   ring,
	}, nil
}

// Provider hands the current session identity to services that need key
// material. Abstracting this behind an interface keeps key handling swappable
// for a hardware-backed or non-extractable implementation.
type Provider interface {
	Current(ctx context.Context) (*Identity, error)
}

// SessionProvider is the default Provider: one identity held in memory for
// the lifetime of a session, exclusively owned by it.
type SessionProvider struct {
	mu      sync.RWMutex
	current *Identity
}

// NewSessionProvider returns an empty provider. Set installs an identity.
func NewSessionProvider() *SessionProvider {
	return &SessionProvider{}
}

// Set installs the session identity, replacing any previous one.
func (p *SessionProvider) Set(ident *Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = ident
}

// Clear drops the session identity.
func (p *SessionProvider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = nil
}

// Current returns the session identity or a missing_key_material error.
func (p *SessionProvider) Current(ctx context.Context) (*Identity, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return nil, dErrors.New(dErrors.CodeMissingKeyMaterial, "no identity loaded in this session")
	}
	return p.current, nil
}
