package file_io

import (
	L "archivuelo/logger"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type FilesInfo struct {
	TotalFileCount uint64
	SizeInBytes    uint64
}

// ComputeFilesInfo walks inputPath and sums up the regular files below it.
func ComputeFilesInfo(ctx context.Context, inputPath string) (*FilesInfo, error) {
	filesInfo := &FilesInfo{}
	err := filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, walkError error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if walkError != nil {
			if path == inputPath {
				return walkError
			}
			L.Debugf("ComputeFilesInfo: skipping %s: %v", path, walkError)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		filesInfo.TotalFileCount++
		filesInfo.SizeInBytes += uint64(info.Size())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return filesInfo, nil
}

func IsReadable(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()
	return true, nil
}

func IsWritable(inputPath string) (bool, error) {

	info, err := os.Stat(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("path does not exist: %s", inputPath)
		}
		return false, fmt.Errorf("failed to stat path: %s", inputPath)
	}

	if info.IsDir() {
		return isDirWritable(inputPath)
	} else {
		return isFileWritable(inputPath)
	}
}

func isDirWritable(inputDirPath string) (bool, error) {
	tempFilePath := filepath.Join(inputDirPath, ".write-test-"+strconv.Itoa(int(time.Now().UnixNano())))
	tempFile, err := os.Create(tempFilePath)
	if err != nil {
		return false, err
	}
	_ = tempFile.Close()
	_ = os.Remove(tempFilePath)
	return true, nil
}

func isFileWritable(inputFilePath string) (bool, error) {
	inputFile, err := os.OpenFile(inputFilePath, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return false, err
	}
	_ = inputFile.Close()
	return true, nil
}

// Exists reports whether a regular file is present at inputFilePath.
// A directory at that path is an error.
func Exists(inputFilePath string) (bool, error) {
	info, err := os.Stat(inputFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", inputFilePath)
	}
	return true, nil
}

// EnsureDir creates dirPath and its parents if missing.
func EnsureDir(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dirPath)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dirPath, 0o755)
}

type WriteMode uint8

const (
	WRITE_APPEND WriteMode = iota
	WRITE_OVERWRITE
)

func WriteToFile(filePath string, data []byte, mode WriteMode) (int, error) {
	var flags int
	switch mode {
	case WRITE_APPEND:
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	case WRITE_OVERWRITE:
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	parent := filepath.Dir(filePath)
	err := os.MkdirAll(parent, os.ModePerm)
	if err != nil {
		return 0, err
	}
	file, err := os.OpenFile(filePath, flags, 0644)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return file.Write(data)
}

// ReadFromOffset reads into buf at offset, giving up when ctx is done.
// Reaching the end of the file is not an error, readBytes tells how much
// of buf was filled.
func ReadFromOffset(ctx context.Context, filePath string, offset int64, buf []byte) (readBytes int64, err error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	file, err := os.Open(filePath)
	if err != nil {
		return 0, err
	}

	type result struct {
		readCnt int
		err     error
	}

	// buffered so the reader never blocks after ctx gave up on it
	resultChannel := make(chan result, 1)
	go func() {
		defer file.Close()
		readCnt, err := file.ReadAt(buf, offset)
		resultChannel <- result{readCnt, err}
	}()

	select {
	case res := <-resultChannel:
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return int64(res.readCnt), res.err
		}
		return int64(res.readCnt), nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}
