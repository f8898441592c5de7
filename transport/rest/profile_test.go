package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/buzkaaclicker/vitae"
	"github.com/buzkaaclicker/vitae/inmem"
	"github.com/buzkaaclicker/vitae/mock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func postJson(path string, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestProfileControllerSave(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := inmem.NewProfileStore()
	activities := inmem.NewActivityStore()
	app := NewRouter(ServerConfig{}, &ProfileController{Store: store, Activities: activities})

	resp, body, err := testRequest(app, postJson("/api/save", `{"basicInfo":{"name":"A"}}`))
	if !assert.NoError(err) {
		return
	}
	assert.Equal(fiber.StatusOK, resp.StatusCode)
	assert.Equal(`{"success":true,"message":"saved"}`, body)
	assertCorsHeaders(assert, resp)

	doc, err := store.Load(ctx)
	if assert.NoError(err) {
		assert.Equal("{\n  \"basicInfo\": {\n    \"name\": \"A\"\n  }\n}", string(doc))
	}

	logs, err := activities.Recent(ctx, 0)
	if assert.NoError(err) && assert.Equal(1, len(logs)) {
		assert.Equal(vitae.ActivityProfileSaved, logs[0].Name)
		assert.Equal(len(doc), logs[0].Data["size"])
	}
}

func TestProfileControllerInvalidBody(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := inmem.NewProfileStore()
	activities := inmem.NewActivityStore()
	app := NewRouter(ServerConfig{}, &ProfileController{Store: store, Activities: activities})

	_, _, err := testRequest(app, postJson("/api/save", `{"basicInfo":"kept"}`))
	if !assert.NoError(err) {
		return
	}

	bodies := []string{
		"not json",
		"",
		`{"basicInfo":`,
		`{"name":"A"}`,
		`{"basicInfo":null}`,
		`{"basicInfo":false}`,
		`{"basicInfo":""}`,
		`{"basicInfo":0}`,
		`[{"basicInfo":true}]`,
		`{"basicInfo":{"name":"A"},"basicInfo":null}`,
		"{\"basicInfo\":\"\xff\"}",
	}
	for _, b := range bodies {
		resp, body, err := testRequest(app, postJson("/api/save", b))
		if !assert.NoError(err) {
			return
		}
		assert.Equal(fiber.StatusBadRequest, resp.StatusCode, b)
		assert.Equal(`{"success":false,"message":"invalid data format"}`, body, b)
	}

	doc, err := store.Load(ctx)
	if assert.NoError(err) {
		assert.Equal("{\n  \"basicInfo\": \"kept\"\n}", string(doc))
	}
	logs, err := activities.Recent(ctx, 0)
	if assert.NoError(err) {
		assert.Equal(1, len(logs))
	}
}

func TestProfileControllerWriteFailure(t *testing.T) {
	assert := assert.New(t)

	store := mock.ProfileStore{
		SaveFn: func(ctx context.Context, doc vitae.ProfileDocument) error {
			return errors.New("disk full")
		},
	}
	activities := mock.ActivityStore{
		AddLogFn: func(ctx context.Context, activity vitae.Activity) error {
			assert.Fail("activity recorded for failed save")
			return nil
		},
	}
	app := NewRouter(ServerConfig{}, &ProfileController{Store: store, Activities: activities})

	resp, body, err := testRequest(app, postJson("/api/save", `{"basicInfo":1}`))
	if !assert.NoError(err) {
		return
	}
	assert.Equal(fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(`{"success":false,"message":"write failed"}`, body)
}

func TestProfileControllerActivityFailure(t *testing.T) {
	assert := assert.New(t)

	store := inmem.NewProfileStore()
	activities := mock.ActivityStore{
		AddLogFn: func(ctx context.Context, activity vitae.Activity) error {
			return errors.New("bunt closed")
		},
	}
	app := NewRouter(ServerConfig{}, &ProfileController{Store: store, Activities: activities})

	resp, body, err := testRequest(app, postJson("/api/save", `{"basicInfo":[]}`))
	if !assert.NoError(err) {
		return
	}
	assert.Equal(fiber.StatusOK, resp.StatusCode)
	assert.Equal(`{"success":true,"message":"saved"}`, body)
}
