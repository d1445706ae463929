// Package main provides a CLI tool for wallet key material: generating
// recovery phrases, deriving identities, and minting dev bearer tokens for the
// backend API. Derived keys are printed to stdout; treat the output as secret.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"dcert/internal/backend/token"
	"dcert/internal/wallet/identity"
	"dcert/internal/wallet/mnemonic"
	id "dcert/pkg/domain"
)

// Dev signing key - matches config.go when DCERT_JWT_SIGNING_KEY is not set.
const devSigningKey = "dev-secret-key-change-in-production"

type identityOutput struct {
	DID          string `json:"did"`
	Entity       string `json:"entity"`
	Name         string `json:"name,omitempty"`
	SigningKey   string `json:"signing_public_key_hex"`
	AgreementKey string `json:"agreement_public_key_hex"`
}

func main() {
	phraseCmd := flag.NewFlagSet("phrase", flag.ExitOnError)
	phraseBits := phraseCmd.Int("bits", 256, "Entropy bits (128, 160, 192, 224 or 256)")

	deriveCmd := flag.NewFlagSet("derive", flag.ExitOnError)
	derivePhrase := deriveCmd.String("phrase", "", "Recovery phrase (required)")
	deriveEntity := deriveCmd.String("entity", "person", "Entity type: person or institution")
	deriveAccount := deriveCmd.Uint("account", 0, "Account index")
	deriveName := deriveCmd.String("name", "", "Display name for the identity")
	deriveJSON := deriveCmd.Bool("json", false, "Output as JSON")
	deriveDoc := deriveCmd.Bool("document", false, "Print the publishable DID document")

	tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
	tokenDID := tokenCmd.String("did", "", "DID the token authenticates (required)")
	tokenTTL := tokenCmd.Duration("ttl", time.Hour, "Token time-to-live")
	tokenKey := tokenCmd.String("signing-key", devSigningKey, "Backend JWT signing key")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "phrase":
		phraseCmd.Parse(os.Args[2:])
		generatePhrase(*phraseBits)
	case "derive":
		deriveCmd.Parse(os.Args[2:])
		deriveIdentity(*derivePhrase, *deriveEntity, uint32(*deriveAccount), *deriveName, *deriveJSON, *deriveDoc)
	case "token":
		tokenCmd.Parse(os.Args[2:])
		generateToken(*tokenDID, *tokenKey, *tokenTTL)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`keygen - Wallet key material tool

Usage:
  keygen <command> [flags]

Commands:
  phrase    Generate a new recovery phrase
  derive    Derive an identity (DID + keys) from a recovery phrase
  token     Mint a dev bearer token for the backend API

Examples:
  # 24-word recovery phrase
  keygen phrase

  # Derive a personal identity
  keygen derive -phrase "abandon abandon ..." -entity person -name "Alex Doe"

  # Derive an institutional identity and print its DID document
  keygen derive -phrase "abandon abandon ..." -entity institution -document

  # Dev token for local walletd
  keygen token -did "did:dcert:p..."

Use "keygen <command> -h" for more information about a command.`)
}

func generatePhrase(bits int) {
	phrase, err := mnemonic.Generate(bits)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating phrase: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(phrase)
}

func deriveIdentity(phrase, entity string, account uint32, name string, jsonOutput, printDocument bool) {
	if phrase == "" {
		fmt.Fprintln(os.Stderr, "-phrase is required")
		os.Exit(1)
	}

	var entityType identity.EntityType
	switch entity {
	case "person":
		entityType = identity.EntityPerson
	case "institution":
		entityType = identity.EntityInstitution
	default:
		fmt.Fprintf(os.Stderr, "Unknown entity type: %s (want person or institution)\n", entity)
		os.Exit(1)
	}

	ident, err := identity.FromMnemonic(phrase, entityType, account, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error deriving identity: %v\n", err)
		os.Exit(1)
	}

	if printDocument {
		printJSON(identity.NewDocument(ident))
		return
	}

	if jsonOutput {
		printJSON(identityOutput{
			DID:          ident.DID.String(),
			Entity:       entity,
			Name:         ident.Name,
			SigningKey:   ident.Keys.Signing.PublicKeyHex(),
			AgreementKey: ident.Keys.Identifier.PublicKeyHex(),
		})
		return
	}

	fmt.Println("Wallet Identity")
	fmt.Println("===============")
	fmt.Printf("DID:            %s\n", ident.DID)
	fmt.Printf("Entity:         %s\n", entity)
	if ident.Name != "" {
		fmt.Printf("Name:           %s\n", ident.Name)
	}
	fmt.Printf("Signing key:    %s\n", ident.Keys.Signing.PublicKeyHex())
	fmt.Printf("Agreement key:  %s\n", ident.Keys.Identifier.PublicKeyHex())
}

func generateToken(did, signingKey string, ttl time.Duration) {
	if did == "" {
		fmt.Fprintln(os.Stderr, "-did is required")
		os.Exit(1)
	}

	svc := token.NewService(signingKey, "dcert-backend", "dcert-wallet")
	accessToken, err := svc.GenerateAccessToken(id.DID(did), "keygen-session", ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(accessToken)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" http://localhost:8080/v1/...")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
