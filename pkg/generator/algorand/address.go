// Package algorand provides Algorand address generation for the search
// engine. Key derivation and mnemonic encoding are delegated to the
// Algorand SDK.
package algorand

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/Amr-9/algohunter/pkg/search"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
)

// Source generates random Algorand accounts. The candidate secret is the
// 64-byte Ed25519 private key.
type Source struct {
	entropy io.Reader
}

// NewSource creates a source reading key entropy from crypto/rand.
func NewSource() *Source {
	return &Source{entropy: rand.Reader}
}

// NewSourceFromReader creates a source reading key entropy from r.
// Only useful for reproducible tests.
func NewSourceFromReader(r io.Reader) *Source {
	return &Source{entropy: r}
}

// Generate creates one account and returns its address.
func (s *Source) Generate() (search.Candidate, error) {
	_, privKey, err := ed25519.GenerateKey(s.entropy)
	if err != nil {
		return search.Candidate{}, fmt.Errorf("generate ed25519 key: %w", err)
	}

	account, err := crypto.AccountFromPrivateKey(privKey)
	if err != nil {
		return search.Candidate{}, fmt.Errorf("derive account: %w", err)
	}

	return search.Candidate{
		Address: account.Address.String(),
		Secret:  privKey,
	}, nil
}

// Mnemonic converts a candidate secret into the 25-word recovery phrase.
func Mnemonic(secret []byte) (string, error) {
	if len(secret) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("secret is %d bytes, want %d", len(secret), ed25519.PrivateKeySize)
	}
	phrase, err := mnemonic.FromPrivateKey(ed25519.PrivateKey(secret))
	if err != nil {
		return "", fmt.Errorf("encode mnemonic: %w", err)
	}
	return phrase, nil
}

// AddressFromMnemonic recovers the address for a recovery phrase.
func AddressFromMnemonic(phrase string) (string, error) {
	sk, err := mnemonic.ToPrivateKey(phrase)
	if err != nil {
		return "", fmt.Errorf("decode mnemonic: %w", err)
	}
	account, err := crypto.AccountFromPrivateKey(sk)
	if err != nil {
		return "", fmt.Errorf("derive account: %w", err)
	}
	return account.Address.String(), nil
}
