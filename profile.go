package vitae

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

var (
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrStorageWrite    = errors.New("storage write failed")
	ErrProfileNotFound = errors.New("profile not found")
)

// Field every profile document must carry with a truthy value.
const basicInfoField = "basicInfo"

// ProfileDocument is a validated profile serialized with 2-space indentation.
// Besides the basic info section its content is opaque.
type ProfileDocument []byte

// ParseProfileDocument validates body and re-serializes it with stable
// 2-space indentation. Key order and number literals are preserved.
func ParseProfileDocument(body []byte) (ProfileDocument, error) {
	body = bytes.TrimSpace(body)
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("%w: invalid utf-8", ErrInvalidPayload)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidPayload)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: document is not an object", ErrInvalidPayload)
	}
	if !truthy(lastField(root, basicInfoField)) {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidPayload, basicInfoField)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return nil, fmt.Errorf("%w: indent: %s", ErrInvalidPayload, err)
	}
	return buf.Bytes(), nil
}

// lastField returns the last occurrence of a repeated key, as json decoders do.
func lastField(object gjson.Result, name string) gjson.Result {
	var field gjson.Result
	object.ForEach(func(key, value gjson.Result) bool {
		if key.String() == name {
			field = value
		}
		return true
	})
	return field
}

// null, false, 0, "" and missing values are falsy, everything else
// (including empty objects and arrays) is truthy.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True, gjson.JSON:
		return true
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return false
	}
}

// ProfileStore holds the single current profile document.
type ProfileStore interface {
	// Save replaces the stored document. Errors wrap ErrStorageWrite.
	Save(ctx context.Context, doc ProfileDocument) error

	// Load returns the stored document or ErrProfileNotFound.
	Load(ctx context.Context) (ProfileDocument, error)
}
