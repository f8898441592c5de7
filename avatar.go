package vitae

import (
	"context"
	"errors"
	"mime"
	"path"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingFile     = errors.New("no file uploaded")
	ErrPayloadTooLarge = errors.New("file too large")
	ErrStorageUpload   = errors.New("storage upload failed")
)

// MaxAvatarSize is the upper bound (inclusive) of an uploaded avatar in bytes.
const MaxAvatarSize = 5 << 20

const (
	avatarKeyPrefix    = "avatars/"
	defaultAvatarExt   = ".png"
	defaultContentType = "application/octet-stream"
)

// Avatar is an uploaded image buffered in memory for the duration of a request.
type Avatar struct {
	// Original file name declared by the client.
	Name        string
	ContentType string
	Data        []byte
}

type AvatarStore interface {
	// Upload stores avatar under key and returns the object location reported
	// by the backend. Errors wrap ErrStorageUpload.
	Upload(ctx context.Context, key string, avatar Avatar) (string, error)
}

// AvatarKey returns the object key for an avatar uploaded at now:
// avatars/<unix millis><extension of name, .png if none>.
func AvatarKey(name string, now time.Time) string {
	return avatarKeyPrefix + strconv.FormatInt(now.UnixMilli(), 10) + avatarExt(name)
}

func avatarExt(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	ext := path.Ext(base)
	// ".bashrc" style names have no extension
	if ext == "" || ext == base {
		return defaultAvatarExt
	}
	return ext
}

// PublicURL prefers the cdn domain when configured, otherwise the location
// reported by the storage backend is used as is.
func PublicURL(cdnDomain string, key string, location string) string {
	if cdnDomain != "" {
		return "https://" + cdnDomain + "/" + key
	}
	return location
}

// AvatarContentType resolves the content type stored with the object.
// A declared type wins unless it is the generic octet-stream.
func AvatarContentType(declared string, name string) string {
	if declared != "" && declared != defaultContentType {
		return declared
	}
	if byExt := mime.TypeByExtension(avatarExt(name)); byExt != "" {
		return byExt
	}
	return defaultContentType
}
