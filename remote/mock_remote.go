package remote

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockFileService is a mock type for the FileService type
type MockFileService struct {
	mock.Mock
}

// List is a mock method
func (m *MockFileService) List(ctx context.Context, dir string) ([]string, []string, error) {
	args := m.Called(ctx, dir)
	var dirs, files []string
	if v := args.Get(0); v != nil {
		dirs = v.([]string)
	}
	if v := args.Get(1); v != nil {
		files = v.([]string)
	}
	return dirs, files, args.Error(2)
}

// Stat is a mock method
func (m *MockFileService) Stat(ctx context.Context, p string) (*FileInfo, error) {
	args := m.Called(ctx, p)
	var info *FileInfo
	if v := args.Get(0); v != nil {
		info = v.(*FileInfo)
	}
	return info, args.Error(1)
}

// Read is a mock method
func (m *MockFileService) Read(ctx context.Context, p string, offset int64, length int64) ([]byte, error) {
	args := m.Called(ctx, p, offset, length)
	var data []byte
	if v := args.Get(0); v != nil {
		data = v.([]byte)
	}
	return data, args.Error(1)
}

// MaxReadSize is a mock method
func (m *MockFileService) MaxReadSize() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *MockFileService) Describe() string {
	return "mock device"
}

func (m *MockFileService) Close() error {
	return nil
}
