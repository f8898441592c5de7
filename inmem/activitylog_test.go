package inmem

import (
	"context"
	"testing"

	"github.com/buzkaaclicker/vitae"
	"github.com/stretchr/testify/assert"
)

func TestActivityStore(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := NewActivityStore()
	{
		logs, err := s.Recent(ctx, 5)
		if assert.NoError(err) {
			assert.Equal(0, len(logs))
		}
	}

	err := s.AddLog(ctx, vitae.Activity{Name: vitae.ActivityProfileSaved, Data: map[string]interface{}{"size": 21}})
	if !assert.NoError(err) {
		return
	}
	err = s.AddLog(ctx, vitae.Activity{Name: vitae.ActivityAvatarUploaded})
	if !assert.NoError(err) {
		return
	}

	{
		logs, err := s.Recent(ctx, 1)
		if assert.NoError(err) && assert.Equal(1, len(logs)) {
			assert.Equal(vitae.ActivityAvatarUploaded, logs[0].Name)
		}
	}

	{
		logs, err := s.Recent(ctx, 0)
		if !assert.NoError(err) || !assert.Equal(2, len(logs)) {
			return
		}
		assert.Equal(vitae.ActivityAvatarUploaded, logs[0].Name)
		assert.Equal(vitae.ActivityProfileSaved, logs[1].Name)
		assert.Equal(map[string]interface{}{"size": 21}, logs[1].Data)
	}
}
