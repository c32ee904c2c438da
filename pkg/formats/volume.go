package formats

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/crystalz/pkg/voxel"
)

// Volume errors.
var (
	ErrVolumeSize   = errors.New("raw volume size does not match header")
	ErrVolumeHeader = errors.New("invalid volume header")
)

// Volume layout constants.
const (
	VolumeAxisOrder = "zyx"
	VolumeDType     = "float32le"
)

// VolumeHeader is the YAML descriptor written next to a raw volume.
type VolumeHeader struct {
	ID        string        `yaml:"id,omitempty"` // Random per written volume
	Method    string        `yaml:"method"`
	Shape     [3]int        `yaml:"shape,flow"`
	Extent    [3][2]float64 `yaml:"extent,flow"`
	AxisOrder string        `yaml:"axis_order"`
	DType     string        `yaml:"dtype"`
	DataFile  string        `yaml:"data_file"`
}

// NewVolumeHeader describes g stored in dataFile.
func NewVolumeHeader(g *voxel.Grid, dataFile string) VolumeHeader {
	return VolumeHeader{
		Method: g.Method,
		Shape:  g.Shape(),
		Extent: [3][2]float64{
			{0, g.Extent[0]},
			{0, g.Extent[1]},
			{0, g.Extent[2]},
		},
		AxisOrder: VolumeAxisOrder,
		DType:     VolumeDType,
		DataFile:  dataFile,
	}
}

// Validate checks the header describes a layout this package can read.
func (h VolumeHeader) Validate() error {
	if h.AxisOrder != VolumeAxisOrder {
		return fmt.Errorf("%w: axis_order %q", ErrVolumeHeader, h.AxisOrder)
	}
	if h.DType != VolumeDType {
		return fmt.Errorf("%w: dtype %q", ErrVolumeHeader, h.DType)
	}
	n := h.Shape[0]
	if n <= 0 || h.Shape[1] != n || h.Shape[2] != n {
		return fmt.Errorf("%w: shape %v", ErrVolumeHeader, h.Shape)
	}
	if n > voxel.MaxResolution {
		return fmt.Errorf("%w: shape %v exceeds %d per axis", ErrVolumeHeader, h.Shape, voxel.MaxResolution)
	}
	if h.DataFile == "" {
		return fmt.Errorf("%w: missing data_file", ErrVolumeHeader)
	}
	if h.ID != "" {
		if _, err := uuid.Parse(h.ID); err != nil {
			return fmt.Errorf("%w: id: %v", ErrVolumeHeader, err)
		}
	}
	return nil
}

// WriteVolume writes g as <name>.raw (little-endian float32, [k][j][i]
// order) and <name>.yaml under dir.
func WriteVolume(dir, name string, g *voxel.Grid) (VolumeHeader, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return VolumeHeader{}, err
	}

	hdr := NewVolumeHeader(g, name+".raw")
	hdr.ID = uuid.NewString()

	if err := writeRaw(filepath.Join(dir, hdr.DataFile), g.Values); err != nil {
		return VolumeHeader{}, err
	}

	data, err := yaml.Marshal(hdr)
	if err != nil {
		return VolumeHeader{}, err
	}
	if err := os.WriteFile(filepath.Join(dir, name+".yaml"), data, 0644); err != nil {
		return VolumeHeader{}, err
	}
	return hdr, nil
}

func writeRaw(path string, values []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var buf [4]byte
	for _, v := range values {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(v)))
		if _, err := w.Write(buf[:]); err != nil {
			return fmt.Errorf("writing raw volume: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing raw volume: %w", err)
	}
	return f.Close()
}

// ReadVolume loads a volume from its YAML descriptor. The raw data file is
// resolved relative to the descriptor.
func ReadVolume(headerPath string) (*voxel.Grid, VolumeHeader, error) {
	data, err := os.ReadFile(headerPath)
	if err != nil {
		return nil, VolumeHeader{}, fmt.Errorf("reading volume header: %w", err)
	}

	var hdr VolumeHeader
	if err := yaml.Unmarshal(data, &hdr); err != nil {
		return nil, VolumeHeader{}, fmt.Errorf("%w: %v", ErrVolumeHeader, err)
	}
	if err := hdr.Validate(); err != nil {
		return nil, VolumeHeader{}, err
	}

	raw, err := os.ReadFile(filepath.Join(filepath.Dir(headerPath), hdr.DataFile))
	if err != nil {
		return nil, VolumeHeader{}, fmt.Errorf("reading raw volume: %w", err)
	}

	n := hdr.Shape[0]
	if want := 4 * int64(n) * int64(n) * int64(n); int64(len(raw)) != want {
		return nil, VolumeHeader{}, fmt.Errorf("%w: got %d bytes, want %d", ErrVolumeSize, len(raw), want)
	}

	g := voxel.NewGrid(n, [3]float64{hdr.Extent[0][1], hdr.Extent[1][1], hdr.Extent[2][1]})
	g.Method = hdr.Method
	for i := range g.Values {
		g.Values[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:])))
	}
	return g, hdr, nil
}
