package catalog

import (
	"time"

	"github.com/ccrypt/ccrypt/internal/keystream"
)

// Record describes one artifact produced by the encrypt workflow.
type Record struct {
	OriginalName string           `toml:"original_name"`
	ArtifactName string           `toml:"artifact_name"`
	OriginalSize int64            `toml:"original_size"`
	ArtifactSize int64            `toml:"artifact_size"`
	SequenceID   uint64           `toml:"sequence_id"`
	Method       keystream.Method `toml:"method"`
	Compressed   bool             `toml:"compressed"`
	Checksum     string           `toml:"checksum"`
	FileType     string           `toml:"file_type,omitempty"`
	CreatedAt    time.Time        `toml:"created_at"`
}
