package pagination

import (
	"encoding/json"
	"fmt"
)

// Sealer turns pager state into an opaque token and back.
type Sealer interface {
	Seal(plaintext []byte) (string, error)
	Open(token string) ([]byte, error)
}

func EncodeState(s Sealer, st State) (string, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("failed to encode page state: %w", err)
	}
	return s.Seal(data)
}

func DecodeState(s Sealer, token string) (State, error) {
	data, err := s.Open(token)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return st, nil
}
