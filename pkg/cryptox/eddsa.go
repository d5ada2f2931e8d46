package cryptox

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// GenerateEd25519Key returns a new Ed25519 private key as a PKCS8 PEM block.
func GenerateEd25519Key() ([]byte, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate Ed25519 key: %w", err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to marshal PKCS8 key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// LoadOrCreateEd25519Key returns the PEM key stored at path, generating and
// persisting a new one on first use.
func LoadOrCreateEd25519Key(path string) ([]byte, error) {
	data, err := LoadOrCreateFile(path, GenerateEd25519Key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: signing key: %w", err)
	}
	return data, nil
}

// ParseEd25519PrivateKey decodes a PKCS8 PEM block holding an Ed25519 key.
func ParseEd25519PrivateKey(pemBytes []byte) (ed25519.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("cryptox: no PEM block found")
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("cryptox: parse PKCS8: %w", err)
	}

	priv, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("cryptox: key is %T, not Ed25519", key)
	}
	return priv, nil
}
