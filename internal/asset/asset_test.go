package asset

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/rocketrun/internal/field"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load(Embedded())
	require.NoError(t, err)

	for s := field.Shape(0); s < field.ShapeCount; s++ {
		assert.GreaterOrEqual(t, len(c.Mesh(s).Radii), minMeshVertices, s.String())
		assert.Greater(t, c.Texture(s).Shade, float32(0), s.String())
	}
	assert.Len(t, c.Mesh(field.ShapeJagged).Radii, 12)
	assert.Equal(t, float32(0.5), c.Texture(field.ShapeJagged).Shade)
}

func validFS() fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, p := range TexturePaths {
		fsys[p] = &fstest.MapFile{Data: []byte("shade 0.5\n")}
	}
	for _, p := range MeshPaths {
		fsys[p] = &fstest.MapFile{Data: []byte("# comment\n1\n0.8\n\n1.2\n")}
	}
	return fsys
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(fstest.MapFS)
		wantErr error
	}{
		{"missing texture", func(m fstest.MapFS) { delete(m, TexturePaths[1]) }, ErrMissingAsset},
		{"missing mesh", func(m fstest.MapFS) { delete(m, MeshPaths[2]) }, ErrMissingAsset},
		{"bad radius", func(m fstest.MapFS) {
			m[MeshPaths[0]] = &fstest.MapFile{Data: []byte("1\nabc\n1\n")}
		}, ErrMalformedAsset},
		{"negative radius", func(m fstest.MapFS) {
			m[MeshPaths[0]] = &fstest.MapFile{Data: []byte("1\n-1\n1\n")}
		}, ErrMalformedAsset},
		{"nan radius", func(m fstest.MapFS) {
			m[MeshPaths[0]] = &fstest.MapFile{Data: []byte("1\nNaN\n1\n")}
		}, ErrMalformedAsset},
		{"infinite radius", func(m fstest.MapFS) {
			m[MeshPaths[0]] = &fstest.MapFile{Data: []byte("1\n+Inf\n1\n")}
		}, ErrMalformedAsset},
		{"too few vertices", func(m fstest.MapFS) {
			m[MeshPaths[0]] = &fstest.MapFile{Data: []byte("1\n1\n")}
		}, ErrMalformedAsset},
		{"shade out of range", func(m fstest.MapFS) {
			m[TexturePaths[0]] = &fstest.MapFile{Data: []byte("shade 1.5\n")}
		}, ErrMalformedAsset},
		{"nan shade", func(m fstest.MapFS) {
			m[TexturePaths[0]] = &fstest.MapFile{Data: []byte("shade NaN\n")}
		}, ErrMalformedAsset},
		{"unknown directive", func(m fstest.MapFS) {
			m[TexturePaths[0]] = &fstest.MapFile{Data: []byte("albedo 1\n")}
		}, ErrMalformedAsset},
		{"empty texture", func(m fstest.MapFS) {
			m[TexturePaths[0]] = &fstest.MapFile{Data: []byte("# nothing\n")}
		}, ErrMalformedAsset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := validFS()
			tt.mutate(fsys)
			c, err := Load(fsys)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUnknownShapeFallsBack(t *testing.T) {
	c, err := Load(validFS())
	require.NoError(t, err)
	assert.Equal(t, c.Mesh(field.ShapeRound), c.Mesh(field.Shape(7)))
	assert.Equal(t, c.Texture(field.ShapeRound), c.Texture(field.Shape(-1)))
}

func TestOpen(t *testing.T) {
	c, err := Open("")
	require.NoError(t, err)
	assert.NotEmpty(t, c.Mesh(field.ShapeShard).Radii)

	_, err = Open(t.TempDir())
	assert.ErrorIs(t, err, ErrMissingAsset)
}
