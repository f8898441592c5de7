package rest

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/buzkaaclicker/vitae"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const (
	avatarFormField     = "file"
	messageFileTooLarge = "File too large"
)

type AvatarController struct {
	Store      vitae.AvatarStore
	Activities vitae.ActivityStore
	// Host of public urls, storage location is used if empty.
	CdnDomain string
	// Clock used for object keys, time.Now if nil.
	Now func() time.Time
}

func (c *AvatarController) InstallTo(app *fiber.App) {
	app.Post("/api/upload", c.serveUpload)
}

func (c *AvatarController) serveUpload(ctx *fiber.Ctx) error {
	avatar, err := readAvatar(ctx)
	if err != nil {
		requestLog(ctx).WithError(err).Debugln("Avatar rejected.")
		switch {
		case errors.Is(err, vitae.ErrMissingFile):
			return fiber.NewError(fiber.StatusBadRequest, "no file uploaded")
		case errors.Is(err, vitae.ErrPayloadTooLarge):
			return fiber.NewError(fiber.StatusBadRequest, messageFileTooLarge)
		default:
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	key := vitae.AvatarKey(avatar.Name, c.now())
	location, err := c.Store.Upload(ctx.Context(), key, avatar)
	if err != nil {
		requestLog(ctx).WithError(err).WithField("key", key).Errorln("Could not upload avatar.")
		return fiber.NewError(fiber.StatusInternalServerError, "upload to storage failed")
	}
	url := vitae.PublicURL(c.CdnDomain, key, location)

	recordActivity(ctx, c.Activities, vitae.Activity{
		Name: vitae.ActivityAvatarUploaded,
		Data: map[string]interface{}{
			"key":  key,
			"url":  url,
			"size": len(avatar.Data),
			"name": avatar.Name,
		},
	})
	return ctx.JSON(Response{Success: true, Url: url})
}

// readAvatar buffers the first file of the avatar form field.
func readAvatar(ctx *fiber.Ctx) (vitae.Avatar, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		if errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return vitae.Avatar{}, vitae.ErrMissingFile
		}
		return vitae.Avatar{}, err
	}
	files := form.File[avatarFormField]
	if len(files) == 0 {
		return vitae.Avatar{}, vitae.ErrMissingFile
	}
	header := files[0]
	if header.Size > vitae.MaxAvatarSize {
		return vitae.Avatar{}, vitae.ErrPayloadTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return vitae.Avatar{}, fmt.Errorf("open form file: %w", err)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, vitae.MaxAvatarSize+1))
	if err != nil {
		return vitae.Avatar{}, fmt.Errorf("read form file: %w", err)
	}
	if len(data) > vitae.MaxAvatarSize {
		return vitae.Avatar{}, vitae.ErrPayloadTooLarge
	}

	return vitae.Avatar{
		Name:        header.Filename,
		ContentType: vitae.AvatarContentType(header.Header.Get(fiber.HeaderContentType), header.Filename),
		Data:        data,
	}, nil
}

func (c *AvatarController) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
