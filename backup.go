package aurora

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// Keys lists the storage key of every feature.
var Keys = []string{KeySchedule, KeyExpenses, KeyChecklist}

// Backup writes the blobs of st as a single JSON object keyed by storage key.
// Keys never saved are omitted.
func Backup(w io.Writer, st Storage) error {
	dump := make(map[string]json.RawMessage, len(Keys))
	for _, key := range Keys {
		blob, err := st.Load(key)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("cannot back up %q: %w", key, err)
		}
		if !json.Valid(blob) {
			return fmt.Errorf("cannot back up %q: stored data is not JSON", key)
		}
		dump[key] = blob
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dump)
}

// Restore reads a backup and saves every feature it holds into st, it
// returns the restored keys. Values may also be JSON strings holding the
// blob, as in a dump of a browser storage.
//
// Nothing is saved unless every value decodes, unknown keys are ignored.
func Restore(r io.Reader, st Storage) ([]string, error) {
	var dump map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("invalid backup: %w", err)
	}

	var keys []string
	var writes []func() error
	for _, key := range Keys {
		raw, ok := dump[key]
		if !ok {
			continue
		}
		blob, err := unquote(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid backup of %q: %w", key, err)
		}
		write, err := restorer(st, key, blob)
		if err != nil {
			return nil, fmt.Errorf("invalid backup of %q: %w", key, err)
		}
		keys = append(keys, key)
		writes = append(writes, write)
	}
	for i, write := range writes {
		if err := write(); err != nil {
			return keys[:i], err
		}
	}
	return keys, nil
}

// unquote returns the blob inside a JSON string, or raw itself.
func unquote(raw json.RawMessage) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return raw, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// restorer decodes the blob of key and returns the function saving it in its
// canonical form.
func restorer(st Storage, key string, blob []byte) (func() error, error) {
	switch key {
	case KeySchedule:
		v, err := DecodeSchedule(bytes.NewReader(blob))
		return func() error { return save(st, key, EncodeSchedule, v) }, err
	case KeyExpenses:
		v, err := DecodeExpenses(bytes.NewReader(blob))
		return func() error { return save(st, key, EncodeExpenses, v) }, err
	case KeyChecklist:
		v, err := DecodeChecklist(bytes.NewReader(blob))
		return func() error { return save(st, key, EncodeChecklist, v) }, err
	default:
		return nil, fmt.Errorf("unknown key %q", key)
	}
}
