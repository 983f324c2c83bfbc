package util

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

const fingerprintWindow = 4096

// CalculateFileFingerprint returns the CRC32 of the first and last 4KB of a file.
// Spreadsheets rewrite their zip directory at the tail, so the tail alone catches
// most edits; the head covers small CSV files.
func CalculateFileFingerprint(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", err
	}

	hash := crc32.NewIEEE()
	if _, err := io.CopyN(hash, file, fingerprintWindow); err != nil && err != io.EOF {
		return "", err
	}

	if size := stat.Size(); size > fingerprintWindow {
		tail := int64(fingerprintWindow)
		if size-tail < fingerprintWindow {
			tail = size - fingerprintWindow
		}
		if _, err := file.Seek(-tail, io.SeekEnd); err != nil {
			return "", err
		}
		if _, err := io.CopyN(hash, file, tail); err != nil && err != io.EOF {
			return "", err
		}
	}

	return fmt.Sprintf("%08x", hash.Sum32()), nil
}
