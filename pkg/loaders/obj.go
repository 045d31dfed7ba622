package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lmarchetti/heropath/pkg/geometry"
	hm "github.com/lmarchetti/heropath/pkg/math"
)

// LoadOBJ reads a Wavefront OBJ file and returns a geometry.Mesh of
// triangulated position/normal/uv data, per spec §6's "Wavefront OBJ for
// meshes (positions, normals, uvs, triangulated)". Adapted from the
// teacher's streaming PLYHeader/readBinary* parser idiom
// (pkg/loaders/ply.go) — a single scan over the file accumulating typed
// records — narrowed to OBJ's plain-text `v`/`vn`/`vt`/`f` directives, with
// n-gon faces triangulated as a fan and OBJ's independent position/
// normal/uv index triples "unwelded" into the single shared-index scheme
// geometry.Mesh expects.
func LoadOBJ(filename string) (*geometry.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	return parseOBJ(file)
}

// objVertexKey identifies one unique (position, uv, normal) index triple
// as they appear in `f` directives; OBJ indexes each attribute
// independently, but geometry.Mesh shares one index per vertex, so equal
// triples collapse to the same output vertex and differing triples fork a
// new one even if they share a position.
type objVertexKey struct{ v, vt, vn int }

func parseOBJ(r io.Reader) (*geometry.Mesh, error) {
	var positions []hm.Point3[hm.Local]
	var normals []hm.Normal3[hm.Local]
	var uvs []hm.Point2

	mesh := &geometry.Mesh{}
	vertexIndex := make(map[objVertexKey]int32)
	hasNormals, hasUVs := false, false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			positions = append(positions, hm.NewPoint3[hm.Local](p[0], p[1], p[2]))
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			normals = append(normals, hm.NewNormal3[hm.Local](n[0], n[1], n[2]))
			hasNormals = true
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("obj line %d: vt needs u and v", lineNo)
			}
			u, err1 := strconv.ParseFloat(fields[1], 64)
			v, err2 := strconv.ParseFloat(fields[2], 64)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("obj line %d: invalid vt coordinates", lineNo)
			}
			uvs = append(uvs, hm.Point2{X: u, Y: v})
			hasUVs = true
		case "f":
			faceIndices := make([]int32, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				key, err := parseOBJVertexRef(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
				}
				idx, ok := vertexIndex[key]
				if !ok {
					idx = int32(len(mesh.Positions))
					vertexIndex[key] = idx
					mesh.Positions = append(mesh.Positions, positions[key.v])
					if hasNormals {
						if key.vn >= 0 {
							mesh.Normals = append(mesh.Normals, normals[key.vn])
						} else {
							mesh.Normals = append(mesh.Normals, hm.Normal3[hm.Local]{})
						}
					}
					if hasUVs {
						if key.vt >= 0 {
							mesh.UVs = append(mesh.UVs, uvs[key.vt])
						} else {
							mesh.UVs = append(mesh.UVs, hm.Point2{})
						}
					}
				}
				faceIndices = append(faceIndices, idx)
			}
			// Fan-triangulate n-gons: (0,1,2), (0,2,3), ...
			for i := 1; i+1 < len(faceIndices); i++ {
				mesh.Indices = append(mesh.Indices, faceIndices[0], faceIndices[i], faceIndices[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ file: %w", err)
	}
	if len(mesh.Positions) == 0 {
		return nil, fmt.Errorf("obj file has no vertices")
	}

	if hasUVs {
		mesh.ComputeTangents()
	}

	return mesh, nil
}

func parseVec3(fields []string) ([3]float64, error) {
	if len(fields) < 3 {
		return [3]float64{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var out [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return [3]float64{}, fmt.Errorf("invalid float %q: %w", fields[i], err)
		}
		out[i] = v
	}
	return out, nil
}

// parseOBJVertexRef parses one `f` token ("v", "v/vt", "v//vn" or
// "v/vt/vn"), resolving OBJ's 1-based (and possibly negative, relative-to-
// end) indices to 0-based ones. -1 means "not present".
func parseOBJVertexRef(tok string, numV, numVT, numVN int) (objVertexKey, error) {
	parts := strings.Split(tok, "/")
	key := objVertexKey{v: -1, vt: -1, vn: -1}

	v, err := resolveOBJIndex(parts[0], numV)
	if err != nil {
		return key, fmt.Errorf("invalid vertex index %q: %w", tok, err)
	}
	key.v = v

	if len(parts) > 1 && parts[1] != "" {
		vt, err := resolveOBJIndex(parts[1], numVT)
		if err != nil {
			return key, fmt.Errorf("invalid uv index %q: %w", tok, err)
		}
		key.vt = vt
	}
	if len(parts) > 2 && parts[2] != "" {
		vn, err := resolveOBJIndex(parts[2], numVN)
		if err != nil {
			return key, fmt.Errorf("invalid normal index %q: %w", tok, err)
		}
		key.vn = vn
	}
	return key, nil
}

func resolveOBJIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i = count + i
	} else {
		i--
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index %d out of range [0,%d)", i, count)
	}
	return i, nil
}
