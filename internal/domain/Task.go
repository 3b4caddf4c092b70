package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrNotObject = errors.New("task must be a JSON object")

// Task is the record held by the store.
//
// A task decoded from JSON keeps every member it was decoded from, in the
// order received, and marshals back to exactly those members. ID, Title,
// Completed and Extra are read views over them: a known member with an
// unexpected type is kept but leaves its view at the zero value. Change the
// completed flag of a decoded task with SetCompleted.
//
// A task built in code has no members and marshals from its fields.
type Task struct {
	ID        int64
	Title     string
	Completed bool

	Extra map[string]json.RawMessage

	members []member
}

type member struct {
	key   string
	value json.RawMessage
}

func (t *Task) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrNotObject
	}

	members := make([]member, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}

		members = setMember(members, key, compact.Bytes())
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	out := Task{members: members}
	for _, m := range members {
		switch m.key {
		case "id":
			out.ID, _ = numericID(m.value)
		case "title":
			_ = json.Unmarshal(m.value, &out.Title)
		case "completed":
			_ = json.Unmarshal(m.value, &out.Completed)
		default:
			if out.Extra == nil {
				out.Extra = make(map[string]json.RawMessage)
			}
			out.Extra[m.key] = m.value
		}
	}

	*t = out
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	if t.members != nil {
		return t.marshalMembers()
	}

	var buf bytes.Buffer
	buf.WriteByte('{')

	if err := writeMember(&buf, "id", t.ID); err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	if err := writeMember(&buf, "title", t.Title); err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	if err := writeMember(&buf, "completed", t.Completed); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(t.Extra))
	for k := range t.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		buf.WriteByte(',')
		if err := writeMember(&buf, k, t.Extra[k]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (t Task) marshalMembers() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range t.members {
		if i > 0 {
			buf.WriteByte(',')
		}
		// values are stored compacted; writing them raw keeps the echo byte for byte
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(m.key); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
		buf.WriteByte(':')
		buf.Write(m.value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// HasID reports whether the task's id is a number equal to id. A decoded
// task whose id member is missing or not a number never matches.
func (t Task) HasID(id int64) bool {
	if t.members == nil {
		return t.ID == id
	}
	raw, ok := t.member("id")
	if !ok {
		return false
	}
	v, ok := numericID(raw)
	return ok && v == id
}

// SetCompleted overwrites the completed flag. On a decoded task the member is
// replaced in place, or appended when the task was posted without one.
func (t *Task) SetCompleted(completed bool) {
	t.Completed = completed
	if t.members == nil {
		return
	}
	raw, _ := json.Marshal(completed)
	t.members = setMember(t.members, "completed", raw)
}

// Clone returns a copy that shares no map or slice with t.
func (t Task) Clone() Task {
	if t.Extra != nil {
		extra := make(map[string]json.RawMessage, len(t.Extra))
		for k, v := range t.Extra {
			extra[k] = append(json.RawMessage(nil), v...)
		}
		t.Extra = extra
	}
	if t.members != nil {
		members := make([]member, len(t.members))
		for i, m := range t.members {
			members[i] = member{key: m.key, value: append(json.RawMessage(nil), m.value...)}
		}
		t.members = members
	}
	return t
}

func (t Task) member(key string) (json.RawMessage, bool) {
	for _, m := range t.members {
		if m.key == key {
			return m.value, true
		}
	}
	return nil, false
}

// setMember keeps the position of the first occurrence of key.
func setMember(members []member, key string, value json.RawMessage) []member {
	for i := range members {
		if members[i].key == key {
			members[i].value = value
			return members
		}
	}
	return append(members, member{key: key, value: value})
}

// numericID reads an integral JSON number. Strings, null and fractions are
// not ids.
func numericID(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 || raw[0] == '"' || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
