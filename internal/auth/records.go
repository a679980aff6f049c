package auth

import (
	"context"
	"encoding/json"
	"fmt"
)

// decodeError reports a bucket record that is not valid JSON for its type.
type decodeError struct {
	key string
	err error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.key, e.err)
}

func (e *decodeError) Unwrap() error { return e.err }

// loadJSON decodes the record under key into v. It reports false when the
// key is absent, leaving v untouched.
func (s *Service) loadJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, err := s.bucket.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, &decodeError{key: key, err: err}
	}
	return true, nil
}

func (s *Service) saveJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.bucket.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
