package config

import (
	"archivuelo/checksum"
	"encoding/json"
	"fmt"
	"strings"
)

// HashType names the digest algorithm stored next to every import.
type HashType string

func ParseHashType(hashTypeStr string) (HashType, error) {
	h := strings.ToLower(strings.TrimSpace(hashTypeStr))
	if !checksum.IsSupported(h) {
		return "", fmt.Errorf("invalid hash type: %s. supported hash types: %s",
			hashTypeStr, strings.Join(checksum.SupportedTypes(), ", "))
	}
	return HashType(h), nil
}

func (hashType *HashType) UnmarshalJSON(data []byte) error {
	var maybeHashType string
	err := json.Unmarshal(data, &maybeHashType)
	if err != nil {
		return err
	}
	h, err := ParseHashType(maybeHashType)
	if err != nil {
		return err
	}
	*hashType = h
	return nil
}
