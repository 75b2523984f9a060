package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
)

// ErrMalformedOBJ is wrapped by every OBJ parsing error
var ErrMalformedOBJ = errors.New("malformed OBJ")

// DefaultGroup receives the faces declared before any o or g line
const DefaultGroup = "default"

// LoadOBJ loads the triangle groups of a Wavefront OBJ file
func LoadOBJ(filename string) (map[string]*geometry.CompoundShape, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("while opening OBJ file: %w", err)
	}
	defer file.Close()

	groups, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("while loading %s: %w", filename, err)
	}
	return groups, nil
}

// ParseOBJ reads vertices (v) and faces (f) and groups the faces by the most
// recent o or g line. Faces with more than three vertices are split into a
// fan of triangles. Other directives are ignored.
func ParseOBJ(r io.Reader) (map[string]*geometry.CompoundShape, error) {
	var vertices []core.Vec3
	groups := make(map[string]*geometry.CompoundShape)
	current := DefaultGroup
	triangles := 0

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			vertex, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJ, lineNumber, err)
			}
			vertices = append(vertices, vertex)

		case "f":
			face, err := parseFace(fields[1:], len(vertices))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJ, lineNumber, err)
			}
			group, ok := groups[current]
			if !ok {
				group = geometry.NewCompoundShape()
				groups[current] = group
			}
			// Fan triangulation around the first vertex
			for i := 1; i+1 < len(face); i++ {
				group.Add(geometry.NewTriangle(vertices[face[0]], vertices[face[i]], vertices[face[i+1]]))
				triangles++
			}

		case "o", "g":
			if len(fields) < 2 {
				current = DefaultGroup
			} else {
				current = strings.Join(fields[1:], " ")
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("while reading OBJ: %w", err)
	}

	glog.V(1).Infof("Loaded OBJ: %d vertices, %d triangles in %d groups", len(vertices), triangles, len(groups))
	return groups, nil
}

// parseVertex reads the x y z coordinates of a v line, ignoring an optional w
func parseVertex(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}
	var coords [3]float64
	for i := range coords {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid coordinate %q", fields[i])
		}
		coords[i] = value
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// parseFace returns 0-based vertex indices. Only the position index before
// the first slash is used.
func parseFace(fields []string, numVertices int) ([]int, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(fields))
	}
	face := make([]int, len(fields))
	for i, field := range fields {
		position, _, _ := strings.Cut(field, "/")
		index, err := strconv.Atoi(position)
		if err != nil {
			return nil, fmt.Errorf("invalid vertex index %q", field)
		}
		if index < 1 || index > numVertices {
			return nil, fmt.Errorf("vertex index %d out of range [1, %d]", index, numVertices)
		}
		face[i] = index - 1
	}
	return face, nil
}
