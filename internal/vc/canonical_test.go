package vc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalFormSortsKeysAtEveryDepth(t *testing.T) {
	doc := map[string]any{
		"zeta":  1,
		"alpha": map[string]any{"nine": 9, "one": 1},
	}
	out, err := CanonicalForm(doc, true)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":{"nine":9,"one":1},"zeta":1}`, string(out))
}

func TestCanonicalFormPreservesNumberDigits(t *testing.T) {
	doc := map[string]any{"amount": 10.50, "big": int64(9007199254740993)}
	out, err := CanonicalForm(doc, true)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"big":9007199254740993`)
}

func TestCanonicalFormExcludesProof(t *testing.T) {
	cred := &Credential{
		Context: []string{CredentialContext},
		ID:      "urn:test:1",
		Proof:   &Proof{Type: ProofTypeDataIntegrity, ProofValue: "xxx"},
	}
	withProof, err := CanonicalForm(cred, true)
	require.NoError(t, err)
	withoutProof, err := CanonicalForm(cred, false)
	require.NoError(t, err)

	assert.Contains(t, string(withProof), `"proof"`)
	assert.NotContains(t, string(withoutProof), `"proof"`)
}

func TestCanonicalFormStableAcrossEquivalentInputs(t *testing.T) {
	a := map[string]any{"b": 2, "a": 1}
	b := map[string]any{"a": 1, "b": 2}

	ca, err := CanonicalForm(a, true)
	require.NoError(t, err)
	cb, err := CanonicalForm(b, true)
	require.NoError(t, err)
	assert.Equal(t, ca, cb)
}
