package models

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/scanline/pkg/math3d"
)

// ErrNoMeshes is returned when a glTF document holds no triangle primitives.
var ErrNoMeshes = errors.New("gltf has no triangle meshes")

// GLTFLoader loads glTF/GLB files into a Mesh.
type GLTFLoader struct {
	// LoadTexture attaches the first base-color texture found.
	LoadTexture bool
}

// NewGLTFLoader creates a new glTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{LoadTexture: true}
}

// LoadGLTF loads a .gltf or .glb file with default options.
func LoadGLTF(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a glTF or GLB file and returns a Mesh. Positions stay in the
// asset's own axes; callers convert with math3d.YUpBasis.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	var (
		tris    []Triangle
		texture = -1
	)
	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			t, tex, err := processPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
			}
			tris = append(tris, t...)
			if texture < 0 {
				texture = tex
			}
		}
	}
	if len(tris) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoMeshes)
	}

	mesh := NewMesh(filepath.Base(path), tris)
	if l.LoadTexture && texture >= 0 {
		img, err := decodeImage(doc, texture, filepath.Dir(path))
		if err != nil {
			return nil, fmt.Errorf("texture %d: %w", texture, err)
		}
		mesh.Texture = TextureFromImage(img)
	}

	return mesh, nil
}

// processPrimitive extracts triangles from one primitive and reports the
// image index of its base-color texture, or -1.
func processPrimitive(doc *gltf.Document, prim *gltf.Primitive) ([]Triangle, int, error) {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		// Skip non-triangle primitives (lines, points, etc)
		return nil, -1, nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, -1, nil
	}
	positions, err := readVec3Accessor(doc, posIdx)
	if err != nil {
		return nil, -1, fmt.Errorf("read positions: %w", err)
	}

	var uvs []math3d.Vec2
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err = readVec2Accessor(doc, uvIdx)
		if err != nil {
			return nil, -1, fmt.Errorf("read uvs: %w", err)
		}
	}

	var colors []Color
	if colIdx, ok := prim.Attributes[gltf.COLOR_0]; ok {
		colors, err = readColorAccessor(doc, colIdx)
		if err != nil {
			return nil, -1, fmt.Errorf("read colors: %w", err)
		}
	}

	base, imgIdx := materialBase(doc, prim)

	verts := make([]Vertex, len(positions))
	for i, p := range positions {
		v := Vertex{Position: p, Color: base}
		if i < len(uvs) {
			// glTF puts V=0 at the top row, which is how Texture stores texels.
			v.UV = uvs[i]
		}
		if i < len(colors) {
			v.Color = Color{colors[i].R * base.R / 255, colors[i].G * base.G / 255, colors[i].B * base.B / 255}
		}
		verts[i] = v
	}

	var indices []int
	if prim.Indices != nil {
		indices, err = readIndices(doc, *prim.Indices)
		if err != nil {
			return nil, -1, fmt.Errorf("read indices: %w", err)
		}
	} else {
		// No indices, assume sequential triangles
		indices = make([]int, len(verts))
		for i := range indices {
			indices[i] = i
		}
	}

	tris := make([]Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if a >= len(verts) || b >= len(verts) || c >= len(verts) {
			return nil, -1, fmt.Errorf("index out of range at triangle %d", i/3)
		}
		tris = append(tris, Triangle{A: verts[a], B: verts[b], C: verts[c]})
	}

	return tris, imgIdx, nil
}

// materialBase returns the primitive's base color factor in 0-255 and the
// image index of its base-color texture (or -1).
func materialBase(doc *gltf.Document, prim *gltf.Primitive) (Color, int) {
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return White, -1
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil {
		return White, -1
	}

	f := pbr.BaseColorFactorOrDefault()
	base := Color{f[0] * 255, f[1] * 255, f[2] * 255}

	img := -1
	if ti := pbr.BaseColorTexture; ti != nil && ti.Index < len(doc.Textures) {
		if src := doc.Textures[ti.Index].Source; src != nil {
			img = *src
		}
	}
	return base, img
}

// decodeImage decodes an image stored in a buffer view, a data URI or a
// file next to the document. The decoder follows the MIME type, falling
// back to the URI.
func decodeImage(doc *gltf.Document, index int, dir string) (image.Image, error) {
	if index < 0 || index >= len(doc.Images) {
		return nil, fmt.Errorf("image index %d out of range", index)
	}
	img := doc.Images[index]

	var (
		data   []byte
		err    error
		format = ImageFormat(img.MimeType)
	)
	switch {
	case img.BufferView != nil:
		data, err = bufferViewBytes(doc, *img.BufferView)
	case img.IsEmbeddedResource():
		data, err = img.MarshalData()
		if format == "" {
			mime, _, _ := strings.Cut(strings.TrimPrefix(img.URI, "data:"), ";")
			format = ImageFormat(mime)
		}
	case img.URI != "":
		data, err = os.ReadFile(filepath.Join(dir, filepath.FromSlash(img.URI)))
		if format == "" {
			format = ImageFormat(img.URI)
		}
	default:
		return nil, fmt.Errorf("image has no source")
	}
	if err != nil {
		return nil, err
	}
	if format == "" {
		return nil, ErrUnknownImageFormat
	}

	decoded, err := DecodeImage(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return decoded, nil
}

// bufferViewBytes returns the bytes a buffer view covers.
func bufferViewBytes(doc *gltf.Document, index int) ([]byte, error) {
	if index < 0 || index >= len(doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", index)
	}
	bv := doc.BufferViews[index]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", bv.Buffer)
	}
	buf := doc.Buffers[bv.Buffer]
	if buf.Data == nil {
		return nil, fmt.Errorf("buffer has no data")
	}
	if end := bv.ByteOffset + bv.ByteLength; bv.ByteOffset < 0 || bv.ByteLength < 0 || end > len(buf.Data) {
		return nil, fmt.Errorf("buffer view overruns buffer (%d > %d)", end, len(buf.Data))
	}
	return buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength], nil
}

// lookupAccessor returns the accessor at index.
func lookupAccessor(doc *gltf.Document, index int) (*gltf.Accessor, error) {
	if index < 0 || index >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", index)
	}
	return doc.Accessors[index], nil
}

// readVec3Accessor reads Vec3 data from a glTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor, err := lookupAccessor(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	floats, err := readFloatAccessor(doc, accessor, 3)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		result[i] = math3d.V3(f[0], f[1], f[2])
	}
	return result, nil
}

// readVec2Accessor reads Vec2 data from a glTF accessor.
func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	accessor, err := lookupAccessor(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}

	floats, err := readFloatAccessor(doc, accessor, 2)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec2, len(floats))
	for i, f := range floats {
		result[i] = math3d.V2(f[0], f[1])
	}
	return result, nil
}

// readColorAccessor reads float RGB or RGBA vertex colors in 0-1 and
// scales them to 0-255. Alpha is dropped.
func readColorAccessor(doc *gltf.Document, accessorIdx int) ([]Color, error) {
	accessor, err := lookupAccessor(doc, accessorIdx)
	if err != nil {
		return nil, err
	}

	var width int
	switch accessor.Type {
	case gltf.AccessorVec3:
		width = 3
	case gltf.AccessorVec4:
		width = 4
	default:
		return nil, fmt.Errorf("expected VEC3 or VEC4 colors, got %v", accessor.Type)
	}

	floats, err := readFloatAccessor(doc, accessor, width)
	if err != nil {
		return nil, err
	}

	result := make([]Color, len(floats))
	for i, f := range floats {
		result[i] = Color{f[0] * 255, f[1] * 255, f[2] * 255}
	}
	return result, nil
}

// readIndices reads index data from a glTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor, err := lookupAccessor(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	data, start, stride, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
	}
	if stride == 0 {
		stride = size
	}
	if need := start + (accessor.Count-1)*stride + size; accessor.Count > 0 && need > len(data) {
		return nil, fmt.Errorf("accessor overruns buffer (%d > %d)", need, len(data))
	}

	result := make([]int, accessor.Count)
	for i := range accessor.Count {
		b := data[start+i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return result, nil
}

// readFloatAccessor reads count elements of width float32 components.
// Only float components are supported.
func readFloatAccessor(doc *gltf.Document, accessor *gltf.Accessor, width int) ([][4]float64, error) {
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("unsupported component type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}
	if stride == 0 {
		stride = width * 4
	}
	if need := start + (accessor.Count-1)*stride + width*4; accessor.Count > 0 && need > len(data) {
		return nil, fmt.Errorf("accessor overruns buffer (%d > %d)", need, len(data))
	}

	result := make([][4]float64, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		for j := range width {
			result[i][j] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[offset+j*4:])))
		}
	}
	return result, nil
}

// accessorBytes returns the backing buffer, first byte offset and byte
// stride (0 when tightly packed) for an accessor.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}

	if *accessor.BufferView < 0 || *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) {
		return nil, 0, 0, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	return buffer.Data, bufferView.ByteOffset + accessor.ByteOffset, bufferView.ByteStride, nil
}
