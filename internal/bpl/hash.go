package bpl

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed hashes. The version suffix allows
// algorithm migration.
const (
	DomainProgram = "bct/program/v1"
	DomainInput   = "bct/input/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ProgramHash returns the content hash of p's canonical JSON form.
func ProgramHash(p *Program) (string, error) {
	canonical, err := MarshalCanonical(p)
	if err != nil {
		return "", fmt.Errorf("ProgramHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainProgram, canonical), nil
}

// InputHash identifies a translation input: the raw assembly description
// bytes together with the translator and IR versions, so a cached output is
// never served across versions.
func InputHash(source []byte) string {
	data := make([]byte, 0, len(source)+32)
	data = append(data, TranslatorVersion...)
	data = append(data, 0x00)
	data = append(data, IRVersion...)
	data = append(data, 0x00)
	data = append(data, source...)
	return hashWithDomain(DomainInput, data)
}
