// Package asset resolves the asteroid meshes and textures once at startup.
//
// A mesh is a silhouette profile: one vertex radius (relative to the unit
// asteroid) per line. A texture is a single "shade" value in [0, 1] that sets
// how densely the silhouette is filled.
package asset

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/tomz197/rocketrun/internal/field"
)

//go:embed data
var embedded embed.FS

// ErrMissingAsset is returned when a listed asset cannot be read.
var ErrMissingAsset = errors.New("missing asset")

// ErrMalformedAsset is returned when an asset cannot be parsed.
var ErrMalformedAsset = errors.New("malformed asset")

// Texture and mesh paths, indexed by field.Shape.
var (
	TexturePaths = [field.ShapeCount]string{
		"asteroids/asteroid1/color.txt",
		"asteroids/asteroid2/color.txt",
		"asteroids/asteroid3/color.txt",
	}
	MeshPaths = [field.ShapeCount]string{
		"asteroids/asteroid1/mesh.txt",
		"asteroids/asteroid2/mesh.txt",
		"asteroids/asteroid3/mesh.txt",
	}
)

// minMeshVertices is the smallest polygon a mesh may describe.
const minMeshVertices = 3

// Mesh is an asteroid silhouette.
type Mesh struct {
	Radii []float32 // Vertex distance from the center, evenly spaced around it
}

// Texture is an asteroid surface.
type Texture struct {
	Shade float32 // Fill density, 0 = outline only, 1 = solid
}

// Catalog holds the resolved asset for every shape. Read-only after Load.
type Catalog struct {
	meshes   [field.ShapeCount]Mesh
	textures [field.ShapeCount]Texture
}

// Embedded returns the asset tree compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // data is a compile-time directory
	}
	return sub
}

// Load resolves every texture and mesh path from fsys. Any failure is returned;
// callers treat it as fatal.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{}

	for i, path := range TexturePaths {
		tex, err := loadTexture(fsys, path)
		if err != nil {
			return nil, err
		}
		c.textures[i] = tex
	}

	for i, path := range MeshPaths {
		mesh, err := loadMesh(fsys, path)
		if err != nil {
			return nil, err
		}
		c.meshes[i] = mesh
	}

	return c, nil
}

// Open loads the catalog from dir, or from the embedded tree when dir is empty.
func Open(dir string) (*Catalog, error) {
	if dir == "" {
		return Load(Embedded())
	}
	c, err := Load(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("asset dir %s: %w", dir, err)
	}
	return c, nil
}

// Mesh returns the mesh for a shape. Unknown shapes fall back to the first mesh.
func (c *Catalog) Mesh(s field.Shape) Mesh {
	if s < 0 || int(s) >= len(c.meshes) {
		return c.meshes[0]
	}
	return c.meshes[s]
}

// Texture returns the texture for a shape. Unknown shapes fall back to the first texture.
func (c *Catalog) Texture(s field.Shape) Texture {
	if s < 0 || int(s) >= len(c.textures) {
		return c.textures[0]
	}
	return c.textures[s]
}

func loadMesh(fsys fs.FS, path string) (Mesh, error) {
	var mesh Mesh
	err := readLines(fsys, path, func(line string) error {
		r, err := strconv.ParseFloat(line, 32)
		if err != nil {
			return err
		}
		if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
			return fmt.Errorf("radius %v must be positive and finite", r)
		}
		mesh.Radii = append(mesh.Radii, float32(r))
		return nil
	})
	if err != nil {
		return Mesh{}, err
	}
	if len(mesh.Radii) < minMeshVertices {
		return Mesh{}, fmt.Errorf("%w: mesh %q has %d vertices, need %d", ErrMalformedAsset, path, len(mesh.Radii), minMeshVertices)
	}
	return mesh, nil
}

func loadTexture(fsys fs.FS, path string) (Texture, error) {
	var (
		tex   Texture
		found bool
	)
	err := readLines(fsys, path, func(line string) error {
		key, value, ok := strings.Cut(line, " ")
		if !ok || key != "shade" {
			return fmt.Errorf("unknown directive %q", line)
		}
		shade, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
		if err != nil {
			return err
		}
		if math.IsNaN(shade) || shade < 0 || shade > 1 {
			return fmt.Errorf("shade %v out of range [0, 1]", shade)
		}
		tex.Shade = float32(shade)
		found = true
		return nil
	})
	if err != nil {
		return Texture{}, err
	}
	if !found {
		return Texture{}, fmt.Errorf("%w: texture %q has no shade", ErrMalformedAsset, path)
	}
	return tex, nil
}

// readLines calls fn for every non-empty, non-comment line of the file.
func readLines(fsys fs.FS, path string, fn func(line string) error) error {
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMissingAsset, path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(line); err != nil {
			return fmt.Errorf("%w: %s:%d: %w", ErrMalformedAsset, path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
