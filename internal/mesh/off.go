package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// LoadOFF reads an Object File Format mesh from disk.
func LoadOFF(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open off: %w", err)
	}
	defer f.Close()

	m, err := ParseOFF(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// ParseOFF parses the OFF format: an "OFF" header line, vertex/face/edge
// counts, vertex coordinate lines, then face lines each starting with the
// vertex count of that face. Tokens may be split across lines arbitrarily.
func ParseOFF(r io.Reader) (*Mesh, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return sc.Text(), nil
	}
	nextInt := func() (int, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", tok)
		}
		return n, nil
	}
	nextFloat := func() (float64, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, fmt.Errorf("expected number, got %q", tok)
		}
		return v, nil
	}

	header, err := next()
	if err != nil {
		return nil, err
	}
	if header != "OFF" {
		return nil, fmt.Errorf("missing OFF header, got %q", header)
	}

	numVertices, err := nextInt()
	if err != nil {
		return nil, err
	}
	numFaces, err := nextInt()
	if err != nil {
		return nil, err
	}
	if _, err := nextInt(); err != nil { // edge count, unused
		return nil, err
	}
	if numVertices < 0 || numFaces < 0 {
		return nil, fmt.Errorf("negative counts in header")
	}

	m := &Mesh{}
	for i := 0; i < numVertices; i++ {
		var v [3]float64
		for j := 0; j < 3; j++ {
			if v[j], err = nextFloat(); err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
		}
		m.Vertices = append(m.Vertices, v)
	}

	for i := 0; i < numFaces; i++ {
		sides, err := nextInt()
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		if sides < 3 {
			return nil, fmt.Errorf("face %d: %d sides", i, sides)
		}
		face := make([]int, sides)
		for j := 0; j < sides; j++ {
			idx, err := nextInt()
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			if idx < 0 || idx >= numVertices {
				return nil, fmt.Errorf("face %d: vertex index %d out of range", i, idx)
			}
			face[j] = idx
		}
		m.Faces = append(m.Faces, face)
	}

	m.ComputeBounds()
	m.ComputeNormals()
	return m, nil
}
