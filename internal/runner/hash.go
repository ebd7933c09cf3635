package runner

import (
	"fmt"

	"github.com/mitchellh/hashstructure/v2"
)

// AnnotationConfigHash is the pod template annotation carrying Hash.
const AnnotationConfigHash = "config-hash"

// Hash returns a stable hash of the logical document. It does not depend on
// map iteration order or on the TOML encoding.
func Hash(c *Config) (string, error) {
	h, err := hashstructure.Hash(c, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("failed to hash runner config: %w", err)
	}
	return fmt.Sprintf("%016x", h), nil
}
