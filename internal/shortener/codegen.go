package shortener

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

// CodeGenerator generates short codes.
type CodeGenerator func() string

// Supported code formats.
const (
	CodeFormatNanoID    = "nanoid"
	CodeFormatUUID      = "uuid"
	CodeFormatShortUUID = "uuid8"
)

const shortUUIDLength = 8

// NewCodeGenerator returns a generator for the given format. length only
// applies to nanoid codes.
func NewCodeGenerator(format string, length int) (CodeGenerator, error) {
	switch format {
	case "", CodeFormatNanoID:
		gen, err := nanoid.Standard(length)
		if err != nil {
			return nil, fmt.Errorf("nanoid generator: %w", err)
		}

		return gen, nil
	case CodeFormatUUID:
		return uuid.NewString, nil
	case CodeFormatShortUUID:
		return func() string {
			return uuid.NewString()[:shortUUIDLength]
		}, nil
	default:
		return nil, fmt.Errorf("unknown code format %q", format)
	}
}
