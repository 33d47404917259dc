package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/scanline/pkg/math3d"
)

// ErrMalformedOBJ marks OBJ input that cannot be turned into triangles.
var ErrMalformedOBJ = errors.New("malformed obj")

// LoadOBJ reads a Wavefront OBJ file. Positions are multiplied by scale.
func LoadOBJ(path string, scale float64) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return ParseOBJ(f, filepath.Base(path), scale)
}

// ParseOBJ reads OBJ text from r. It understands v, vt and f records and
// ignores everything else. Faces are fan-triangulated from their first
// vertex, texture coordinates have V flipped so image row 0 is the top,
// and every vertex is white. A face vertex without a texture coordinate
// gets (0,0).
func ParseOBJ(r io.Reader, name string, scale float64) (*Mesh, error) {
	var (
		positions []math3d.Vec3
		uvs       []math3d.Vec2
		tris      []Triangle
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		malformed := func(format string, args ...any) error {
			return fmt.Errorf("%s:%d: %w: %s", name, line, ErrMalformedOBJ, fmt.Sprintf(format, args...))
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, malformed("vertex needs 3 coordinates")
			}
			xyz, err := parseFloats(fields[1:4])
			if err != nil {
				return nil, malformed("%v", err)
			}
			positions = append(positions, math3d.V3(xyz[0], xyz[1], xyz[2]).Scale(scale))

		case "vt":
			if len(fields) < 2 {
				return nil, malformed("texture coordinate needs a value")
			}
			n := min(len(fields)-1, 2)
			uv, err := parseFloats(fields[1 : 1+n])
			if err != nil {
				return nil, malformed("%v", err)
			}
			v := 0.0
			if n == 2 {
				v = uv[1]
			}
			uvs = append(uvs, math3d.V2(uv[0], 1-v))

		case "f":
			if len(fields) < 4 {
				return nil, malformed("face needs at least 3 vertices, got %d", len(fields)-1)
			}
			verts := make([]Vertex, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				v, err := resolveFaceVertex(ref, positions, uvs)
				if err != nil {
					return nil, malformed("%v", err)
				}
				verts = append(verts, v)
			}
			for i := 1; i+1 < len(verts); i++ {
				tris = append(tris, Triangle{A: verts[0], B: verts[i], C: verts[i+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(tris) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyMesh)
	}

	return NewMesh(name, tris), nil
}

// resolveFaceVertex turns "p", "p/t", "p/t/n" or "p//n" into a vertex.
func resolveFaceVertex(ref string, positions []math3d.Vec3, uvs []math3d.Vec2) (Vertex, error) {
	parts := strings.Split(ref, "/")

	pi, err := resolveIndex(parts[0], len(positions))
	if err != nil {
		return Vertex{}, fmt.Errorf("position %q: %w", ref, err)
	}
	v := Vertex{Position: positions[pi], Color: White}

	if len(parts) > 1 && parts[1] != "" {
		ti, err := resolveIndex(parts[1], len(uvs))
		if err != nil {
			return Vertex{}, fmt.Errorf("texture coordinate %q: %w", ref, err)
		}
		v.UV = uvs[ti]
	}

	return v, nil
}

// resolveIndex converts a 1-based or negative relative OBJ index.
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, fmt.Errorf("index %d out of range (have %d)", n, count)
	}
	return idx, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
