package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/crystalz/pkg/crystal"
	cmath "github.com/Faultbox/crystalz/pkg/math"
)

// XYZ format errors.
var (
	ErrMalformedRecord    = errors.New("malformed XYZ record")
	ErrLatticeVectorCount = errors.New("XYZ file must define exactly 3 lattice vectors")
)

// XYZ record keywords.
const (
	xyzLatticeVector = "lattice_vector"
	xyzAtom          = "atom"
)

// XYZExt is the file extension of structure files.
const XYZExt = ".xyz"

// ParseXYZ parses a structure file from raw bytes.
//
// Two records are recognised:
//
//	lattice_vector <x> <y> <z>
//	atom <x> <y> <z> <element>
//
// Every other line (blank, comment, unknown keyword) is skipped. The three
// lattice vectors become the rows of the lattice matrix in file order.
func ParseXYZ(data []byte) (crystal.Structure, error) {
	return ReadXYZ(bytes.NewReader(data))
}

// ReadXYZ parses a structure file from a reader.
func ReadXYZ(r io.Reader) (crystal.Structure, error) {
	var (
		vectors []r3.Vec
		atoms   []crystal.Atom
	)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case xyzLatticeVector:
			if len(fields) != 4 {
				return crystal.Structure{}, fmt.Errorf("line %d: %w: lattice_vector needs 3 coordinates, got %d",
					line, ErrMalformedRecord, len(fields)-1)
			}
			v, err := parseVec(fields[1:4])
			if err != nil {
				return crystal.Structure{}, fmt.Errorf("line %d: %w", line, err)
			}
			vectors = append(vectors, v)

		case xyzAtom:
			if len(fields) != 5 {
				return crystal.Structure{}, fmt.Errorf("line %d: %w: atom needs 3 coordinates and a kind, got %d fields",
					line, ErrMalformedRecord, len(fields)-1)
			}
			center, err := parseVec(fields[1:4])
			if err != nil {
				return crystal.Structure{}, fmt.Errorf("line %d: %w", line, err)
			}
			atom, err := crystal.NewAtom(fields[4], center)
			if err != nil {
				return crystal.Structure{}, fmt.Errorf("line %d: %w", line, err)
			}
			atoms = append(atoms, atom)
		}
	}
	if err := sc.Err(); err != nil {
		return crystal.Structure{}, fmt.Errorf("reading XYZ data: %w", err)
	}

	if len(vectors) != 3 {
		return crystal.Structure{}, fmt.Errorf("%w: got %d", ErrLatticeVectorCount, len(vectors))
	}

	return crystal.NewStructure(atoms, cmath.FromRows(vectors[0], vectors[1], vectors[2]))
}

func parseVec(fields []string) (r3.Vec, error) {
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
		c[i] = v
	}
	return r3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

// ParseXYZFile parses a structure file from disk.
func ParseXYZFile(path string) (crystal.Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return crystal.Structure{}, fmt.Errorf("reading XYZ file: %w", err)
	}
	return ParseXYZ(data)
}

// ListXYZ returns the sorted base names of the .xyz files directly under dir.
func ListXYZ(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != XYZExt {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
