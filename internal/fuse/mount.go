//go:build !linux
// +build !linux

package fuse

import (
	"fmt"

	"github.com/ostafen/vfatfs/internal/vfat"
)

func Mount(mountpoint string, mounted *vfat.FileSystem) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}
