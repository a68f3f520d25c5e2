package sqlite

import (
	"encoding/binary"
	"errors"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

var errCorruptPositions = errors.New("corrupt position list")

// encodePositions stores ascending positions as uvarint deltas.
// An empty list is stored as NULL.
func encodePositions(positions []domain.Position) []byte {
	if len(positions) == 0 {
		return nil
	}
	buf := make([]byte, 0, len(positions)*2)
	var prev domain.Position
	for _, p := range positions {
		buf = binary.AppendUvarint(buf, uint64(p-prev))
		prev = p
	}
	return buf
}

func decodePositions(blob []byte) ([]domain.Position, error) {
	positions := []domain.Position{}
	var prev uint64
	for len(blob) > 0 {
		delta, n := binary.Uvarint(blob)
		if n <= 0 {
			return nil, errCorruptPositions
		}
		prev += delta
		positions = append(positions, domain.Position(prev))
		blob = blob[n:]
	}
	return positions, nil
}
