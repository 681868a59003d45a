// Package stl reads and writes triangle meshes in the STL format
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/mesh"
)

// ErrEmpty is returned for input without any facet
var ErrEmpty = errors.New("stl: no facets")

// record is one binary facet, 50 bytes on disk
type record struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attributes uint16
}

// ReadFile decodes the STL file at filename
func ReadFile(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	m, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// Decode reads an ASCII or binary STL stream. Input starting with "solid"
// is read as ASCII.
func Decode(r io.Reader) (*mesh.Mesh, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(5)
	if err != nil && len(head) == 0 {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var m *mesh.Mesh
	if string(head) == "solid" {
		m, err = decodeASCII(br)
	} else {
		m, err = decodeBinary(br)
	}
	if err != nil {
		return nil, err
	}
	if m.TriangleCount() == 0 {
		return nil, ErrEmpty
	}
	return m, nil
}

func decodeASCII(r io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(r)
	m := mesh.New("")

	var normal geometry.Vector3
	var vertices []geometry.Vector3
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			m.Name = strings.Join(fields[1:], " ")
		case "facet":
			if len(fields) != 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("line %d: malformed facet", line)
			}
			v, err := parseVector(fields[2:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			normal = v
		case "vertex":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: malformed vertex", line)
			}
			v, err := parseVector(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vertices = append(vertices, v)
		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices", line, len(vertices))
			}
			m.AddTriangle(geometry.NewTriangle(normal, vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return m, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var xyz [3]float64
	for i, f := range fields[:3] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid number %q", f)
		}
		xyz[i] = v
	}
	return geometry.NewVector3(xyz[0], xyz[1], xyz[2]), nil
}

func decodeBinary(r io.Reader) (*mesh.Mesh, error) {
	var header [80]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	m := mesh.New(string(bytes.TrimRight(header[:], "\x00 ")))

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}
	for i := uint32(0); i < count; i++ {
		var rec record
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		m.AddTriangle(geometry.NewTriangle(toVector(rec.Normal), toVector(rec.V1), toVector(rec.V2), toVector(rec.V3)))
	}
	return m, nil
}

// Encode writes m as binary STL
func Encode(w io.Writer, m *mesh.Mesh) error {
	var header [80]byte
	copy(header[:], m.Name)

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(m.TriangleCount())); err != nil {
		return err
	}
	for _, tri := range m.Triangles {
		rec := record{
			Normal: fromVector(tri.CalculateNormal()),
			V1:     fromVector(tri.V1),
			V2:     fromVector(tri.V2),
			V3:     fromVector(tri.V3),
		}
		if err := binary.Write(bw, binary.LittleEndian, &rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes m as binary STL to filename
func WriteFile(filename string, m *mesh.Mesh) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Encode(file, m); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return file.Close()
}

func toVector(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}

func fromVector(v geometry.Vector3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
