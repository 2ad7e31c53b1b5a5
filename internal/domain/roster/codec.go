package roster

import (
	"bytes"
	"encoding/json"
	"io"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

type rawField struct {
	key   string
	value []byte
}

// DecodeCollection parses a players.json document, keeping each record's key order and raw values.
func DecodeCollection(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, crerr.New("roster document is empty")
	}

	var items []json.RawMessage
	if err := sonic.Unmarshal(trimmed, &items); err != nil {
		return nil, crerr.Wrap(err, "roster document must be a JSON array")
	}

	out := make([]Record, 0, len(items))
	for i, item := range items {
		var rec Record
		if err := rec.UnmarshalJSON(item); err != nil {
			return nil, crerr.Wrapf(err, "record[%d]", i)
		}
		out = append(out, rec)
	}
	return out, nil
}

// EncodeCollection renders records the way the curator file is kept: a two-space indented array.
func EncodeCollection(records []Record) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('[')
	for i, rec := range records {
		if i > 0 {
			compact.WriteByte(',')
		}
		encoded, err := rec.MarshalJSON()
		if err != nil {
			return nil, crerr.Wrapf(err, "encode record[%d]", i)
		}
		compact.Write(encoded)
	}
	compact.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, crerr.Wrap(err, "indent roster document")
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func (r *Record) UnmarshalJSON(data []byte) error {
	fields, err := decodeOrderedObject(data)
	if err != nil {
		return err
	}

	type view Record
	var v view
	if err := sonic.Unmarshal(data, &v); err != nil {
		return crerr.Wrap(err, "decode player record")
	}

	*r = Record(v)
	r.fields = fields
	r.dirty = nil
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	fields := r.fields
	if fields == nil {
		typed, err := r.typedFields()
		if err != nil {
			return nil, err
		}
		return writeObject(typed)
	}

	out := make([]rawField, 0, len(fields)+len(r.dirty))
	written := make(map[string]bool, len(fields))
	for _, f := range fields {
		if !r.isDirty(f.key) {
			out = append(out, f)
			continue
		}
		if written[f.key] {
			continue
		}
		written[f.key] = true
		value, ok, err := r.ownedValue(f.key)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rawField{key: f.key, value: value})
		}
	}
	for _, key := range r.dirty {
		if written[key] {
			continue
		}
		value, ok, err := r.ownedValue(key)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rawField{key: key, value: value})
		}
	}

	return writeObject(out)
}

func (r Record) ownedValue(key string) ([]byte, bool, error) {
	var value any
	switch key {
	case FieldAPITeamID:
		if r.APITeamID == nil {
			return nil, false, nil
		}
		value = *r.APITeamID
	case FieldAPIPlayerID:
		if r.APIPlayerID == nil {
			return nil, false, nil
		}
		value = *r.APIPlayerID
	case FieldLastClubGame:
		if r.LastClubGame == nil {
			return nil, false, nil
		}
		value = r.LastClubGame
	default:
		return nil, false, crerr.Newf("field %q is not owned by the enrichment jobs", key)
	}

	encoded, err := sonic.Marshal(value)
	if err != nil {
		return nil, false, crerr.Wrapf(err, "encode %s", key)
	}
	return encoded, true, nil
}

// typedFields serializes a record built in code rather than decoded from disk.
func (r Record) typedFields() ([]rawField, error) {
	out := make([]rawField, 0, 8)
	add := func(key string, value any) error {
		encoded, err := sonic.Marshal(value)
		if err != nil {
			return crerr.Wrapf(err, "encode %s", key)
		}
		out = append(out, rawField{key: key, value: encoded})
		return nil
	}

	if !r.ID.IsZero() {
		idValue, err := r.ID.MarshalJSON()
		if err != nil {
			return nil, err
		}
		out = append(out, rawField{key: "id", value: idValue})
	}
	if err := add("name", r.Name); err != nil {
		return nil, err
	}
	if r.Position != "" {
		if err := add("position", r.Position); err != nil {
			return nil, err
		}
	}
	if r.Number != nil {
		if err := add("number", *r.Number); err != nil {
			return nil, err
		}
	}
	if r.ClubTeam != "" {
		if err := add("clubTeam", r.ClubTeam); err != nil {
			return nil, err
		}
	}
	for _, key := range PipelineOwnedFields {
		value, ok, err := r.ownedValue(key)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rawField{key: key, value: value})
		}
	}
	return out, nil
}

func writeObject(fields []rawField) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := sonic.Marshal(f.key)
		if err != nil {
			return nil, crerr.Wrapf(err, "encode key %q", f.key)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(f.value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func decodeOrderedObject(data []byte) ([]rawField, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, crerr.Wrap(err, "read player record")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, crerr.New("player record must be a JSON object")
	}

	fields := make([]rawField, 0, 12)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, crerr.Wrap(err, "read record key")
		}
		key, ok := tok.(string)
		if !ok {
			return nil, crerr.Newf("unexpected record key token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, crerr.Wrapf(err, "read value of %q", key)
		}
		fields = append(fields, rawField{key: key, value: []byte(raw)})
	}

	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, crerr.Wrap(err, "read end of player record")
	}
	return fields, nil
}
