// Package formats reads crystal structure files and reads and writes voxel
// volumes.
package formats

// Note: structure files are parsed in xyz.go
// Note: raw volumes and their YAML descriptors are handled in volume.go
