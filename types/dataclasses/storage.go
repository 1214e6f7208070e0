package dataclasses

import (
	"bytes"
	"path/filepath"
	"sync"

	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
)

// StorageLocation points at a single object in a storage backend.
type StorageLocation struct {
	sync.Mutex

	Storage interfaces.Storage

	// Directory is a local directory or a bucket name, depending on Storage
	Directory string
	// FileName is the object name, e.g. <processing-id>.json
	FileName string
}

func NewStorageLocation(
	storage interfaces.Storage,
	directory,
	fileName string,
) *StorageLocation {
	return &StorageLocation{
		Storage:   storage,
		Directory: directory,
		FileName:  fileName,
	}
}

func (s *StorageLocation) GetStorage() interfaces.Storage {
	s.Lock()
	defer s.Unlock()

	return s.Storage
}

func (s *StorageLocation) GetDirectory() string {
	s.Lock()
	defer s.Unlock()

	return s.Directory
}

func (s *StorageLocation) GetFileName() string {
	s.Lock()
	defer s.Unlock()

	return s.FileName
}

func (s *StorageLocation) GetFilePath() string {
	return filepath.Join(
		s.GetDirectory(),
		s.GetFileName(),
	)
}

func (s *StorageLocation) SetFileName(fileName string) {
	s.Lock()
	defer s.Unlock()

	s.FileName = fileName
}

// PutObjectBytes stores content at the location and remembers the stored name.
func (s *StorageLocation) PutObjectBytes(content *bytes.Buffer) (string, error) {
	fileName, err := s.GetStorage().PutObjectBytes(
		s.GetDirectory(),
		s.GetFileName(),
		content,
	)
	if err != nil {
		return "", err
	}

	s.SetFileName(fileName)
	return fileName, nil
}

func (s *StorageLocation) GetObjectBytes() (*bytes.Buffer, error) {
	return s.GetStorage().GetObjectBytes(s.GetDirectory(), s.GetFileName())
}
