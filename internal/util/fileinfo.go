package util

import (
	"os"

	"golang.org/x/sys/unix"
)

// FileInfo identifies one version of a file on disk.
type FileInfo struct {
	ModTime int64  // Modification time in nanoseconds
	Size    int64  // File size in bytes
	Inode   uint64 // Inode number, changes when the file is replaced
}

// GetFileInfo stats path. Inode lookup goes through unix.Stat so editors that
// save by rename are noticed even when size and mtime happen to match.
func GetFileInfo(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var sys unix.Stat_t
	if err := unix.Stat(path, &sys); err != nil {
		return nil, err
	}

	return &FileInfo{
		ModTime: stat.ModTime().UnixNano(),
		Size:    stat.Size(),
		Inode:   uint64(sys.Ino),
	}, nil
}
