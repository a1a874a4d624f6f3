package pixels

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnknownMethod(t *testing.T) {
	extractor, err := New(Method("sharpen"), NewArgs{})
	require.Error(t, err)
	assert.Nil(t, extractor)
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods {
		parsed, err := ParseMethod(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseMethod("Direct")
	assert.Error(t, err, "method names are case sensitive")
}

func TestLayoutFor(t *testing.T) {
	for channels, want := range map[int]Layout{1: Grayscale, 3: Color, 4: ColorAlpha} {
		layout, err := LayoutFor(channels)
		require.NoError(t, err)
		assert.Equal(t, want, layout)
		assert.Equal(t, channels, layout.Channels())
	}

	_, err := LayoutFor(2)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Equal(t, "color with alpha", string(ColorAlpha))
}

func TestErrorKinds(t *testing.T) {
	err := kindError(ErrRead, errStub, "unable to read the image")

	assert.True(t, errors.Is(err, ErrRead))
	assert.False(t, errors.Is(err, ErrDependency))
	assert.True(t, errors.Is(err, errStub), "the cause stays reachable")
	assert.Equal(t, "read error: unable to read the image: model weights unavailable", err.Error())

	var kinded *Error
	require.True(t, errors.As(err, &kinded))
	assert.Equal(t, ErrRead, kinded.Kind)
}
