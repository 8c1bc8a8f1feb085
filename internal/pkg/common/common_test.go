package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func TestCustomErrorWrap(t *testing.T) {
	cause := fmt.Errorf("meals per day 4")
	err := ErrConfiguration.Wrap(cause)

	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "unsupported plan configuration: meals per day 4", err.Error())

	// 包裝不修改預定義錯誤
	assert.Nil(t, ErrConfiguration.Err)
}

func TestCustomErrorResponse(t *testing.T) {
	err := ErrInvalidRequest.Wrap(errors.New("bad date"))

	assert.Equal(t, ErrorResponse{Code: ErrCodeInvalidRequest, Message: "invalid request"}, err.Response(false))
	assert.Equal(t, "bad date", err.Response(true).Details)
}

func TestAsCustomError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", ErrNotFound.Wrap(errors.New("plan x")))
	assert.Equal(t, ErrCodeNotFound, AsCustomError(wrapped).Code)

	plain := AsCustomError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternalError, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	require.NoError(t, DecodeJSON(strings.NewReader(`{"name":"oats"}`), &v))
	assert.Equal(t, "oats", v.Name)

	err := DecodeJSON(strings.NewReader(`{"name":"a"} {"name":"b"}`), &v)
	assert.EqualError(t, err, "unexpected extra JSON data")

	assert.Error(t, ParseJSONBytes([]byte(`{"name":`), &v))
}

func TestHashAndUUID(t *testing.T) {
	assert.Equal(t, HashString("week"), HashString("week"))
	assert.NotEqual(t, HashString("week"), HashString("day"))
	assert.Len(t, HashString(""), 64)

	id := GenerateUUID()
	assert.True(t, IsUUID(id))
	assert.False(t, IsUUID("not-a-uuid"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestLogCacheHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogCacheHit("week", "k1")
	LogCacheMiss("day", "k2")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "k1", entries[0].ContextMap()["key"])
	assert.Equal(t, "day", entries[1].ContextMap()["type"])
}
