package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Goden-Gun/httpcall-lib/pkg/codes"
)

const (
	DefaultCodeField    = "returnCode"
	DefaultMessageField = "message"
	DefaultDataField    = "data"
)

// Fields names the gjson paths of the envelope members.
// Nested paths such as "meta.code" are allowed.
type Fields struct {
	Code    string `yaml:"code" mapstructure:"code"`
	Message string `yaml:"message" mapstructure:"message"`
	Data    string `yaml:"data" mapstructure:"data"`
}

// ApplyDefaults fills empty paths.
func (f *Fields) ApplyDefaults() {
	if strings.TrimSpace(f.Code) == "" {
		f.Code = DefaultCodeField
	}
	if strings.TrimSpace(f.Message) == "" {
		f.Message = DefaultMessageField
	}
	if strings.TrimSpace(f.Data) == "" {
		f.Data = DefaultDataField
	}
}

// DefaultFields returns returnCode/message/data.
func DefaultFields() Fields {
	var f Fields
	f.ApplyDefaults()
	return f
}

// Envelope is the decoded business wrapper of a response body.
type Envelope struct {
	ReturnCode codes.ReturnCode
	// HasCode is false when the body carried no (or a null) return code.
	HasCode bool
	Message string
	Data    json.RawMessage
	Raw     []byte
}

// DecodeError reports a body that could not be decoded. Raw keeps the
// original payload for diagnostics.
type DecodeError struct {
	Raw    []byte
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode envelope: %s: %v", e.Reason, e.Err)
	}
	return "decode envelope: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode extracts the envelope members from body. A numeric return code is
// rendered in its literal form, so 0 becomes "0". A null message decodes to "".
func Decode(body []byte, f Fields) (*Envelope, error) {
	f.ApplyDefaults()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &DecodeError{Raw: body, Reason: "empty body"}
	}
	if !gjson.ValidBytes(body) {
		return nil, &DecodeError{Raw: body, Reason: "invalid json"}
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, &DecodeError{Raw: body, Reason: "envelope is not an object"}
	}

	env := &Envelope{Raw: body}
	if code := root.Get(f.Code); code.Exists() && code.Type != gjson.Null {
		env.HasCode = true
		env.ReturnCode = codes.ReturnCode(strings.TrimSpace(code.String()))
	}
	if msg := root.Get(f.Message); msg.Exists() && msg.Type != gjson.Null {
		env.Message = msg.String()
	}
	if data := root.Get(f.Data); data.Exists() && data.Type != gjson.Null {
		env.Data = json.RawMessage(data.Raw)
	}
	return env, nil
}

// Bind decodes the data member into v, resetting v first so a reused target
// keeps nothing from an earlier call. A missing or null data member leaves v
// at its zero value; null strings inside it decode to "".
func (e *Envelope) Bind(v any) error {
	if e == nil || v == nil {
		return nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv.Elem().SetZero()
	}
	if len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return &DecodeError{Raw: e.Raw, Reason: "bind data", Err: err}
	}
	return nil
}

// EmptyData reports whether the data member is absent, null, or an empty
// object, array, or string.
func (e *Envelope) EmptyData() bool {
	if e == nil || len(e.Data) == 0 {
		return true
	}
	res := gjson.ParseBytes(e.Data)
	switch {
	case res.Type == gjson.Null:
		return true
	case res.Type == gjson.String:
		return res.Str == ""
	case res.IsArray():
		return len(res.Array()) == 0
	case res.IsObject():
		return len(res.Map()) == 0
	}
	return false
}
