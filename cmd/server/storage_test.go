package main

import (
	"testing"

	"github.com/buzkaaclicker/vitae/persistent"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func warnings(hook *test.Hook) []string {
	messages := make([]string, 0)
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			messages = append(messages, entry.Message)
		}
	}
	return messages
}

func TestOpenAvatarStoreWithoutCredentials(t *testing.T) {
	assert := assert.New(t)
	hook := test.NewGlobal()
	defer hook.Reset()

	store := openAvatarStore(storageConfig{
		minio: persistent.MinioConfig{
			Endpoint: "cos.ap-guangzhou.myqcloud.com",
			Region:   "ap-guangzhou",
			UseSSL:   true,
		},
		bucket: "vitae-1250000000",
	})

	avatarStore, ok := store.(*persistent.AvatarStore)
	if assert.True(ok) {
		assert.Equal("vitae-1250000000", avatarStore.Bucket)
	}
	assert.Equal([]string{
		"STORAGE_SECRET_ID or STORAGE_SECRET_KEY not set, uploads will fail.",
	}, warnings(hook))
}

func TestOpenAvatarStoreWithoutBucket(t *testing.T) {
	assert := assert.New(t)
	hook := test.NewGlobal()
	defer hook.Reset()

	store := openAvatarStore(storageConfig{
		minio: persistent.MinioConfig{
			Endpoint:        "cos.ap-guangzhou.myqcloud.com",
			AccessKeyId:     "id",
			SecretAccessKey: "key",
			Region:          "ap-guangzhou",
			UseSSL:          true,
		},
	})

	assert.NotNil(store)
	assert.Equal([]string{
		"STORAGE_BUCKET not set, uploads will fail.",
	}, warnings(hook))
}
