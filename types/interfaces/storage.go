package interfaces

import "bytes"

type Storage interface {
	ListObjects(location string) ([]string, error)

	PutObjectBytes(destination string, fileName string, content *bytes.Buffer) (string, error)
	GetObjectBytes(directory string, fileName string) (*bytes.Buffer, error)
}
