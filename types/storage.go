package types

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Marvin-Brouwer/open-adr/types/config"
	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
)

// LocalStorage reads and writes files below rootPath. An empty rootPath
// resolves names against the working directory.
type LocalStorage struct {
	rootPath string
}

func NewLocalStorage(rootPath string) *LocalStorage {
	return &LocalStorage{rootPath: rootPath}
}

func (s *LocalStorage) path(elements ...string) string {
	root, start := s.rootPath, 0
	for i, element := range elements {
		if filepath.IsAbs(element) {
			root, start = "", i
		}
	}
	return filepath.Join(append([]string{root}, elements[start:]...)...)
}

func (s *LocalStorage) ListObjects(directory string) ([]string, error) {
	entries, err := os.ReadDir(s.path(directory))
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	objects := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		objects = append(objects, entry.Name())
	}
	return objects, nil
}

// PutObjectBytes writes content to directory/fileName. A file name without an
// extension gets one matching the detected content type.
func (s *LocalStorage) PutObjectBytes(directory, fileName string, fileContent *bytes.Buffer) (string, error) {
	fileName, err := withExtension(fileName, fileContent)
	if err != nil {
		return "", err
	}

	target := s.path(directory, fileName)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		config.GetLogger().Errorf("Failed to create directory: %v", err)
		return "", err
	}

	if err := os.WriteFile(target, fileContent.Bytes(), 0o644); err != nil {
		config.GetLogger().Errorf("Failed to write file: %v", err)
		return "", err
	}
	return fileName, nil
}

func (s *LocalStorage) GetObjectBytes(directory, fileName string) (*bytes.Buffer, error) {
	file, err := os.Open(s.path(directory, fileName))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buffer := new(bytes.Buffer)
	_, err = buffer.ReadFrom(file)
	if err != nil {
		return nil, err
	}

	return buffer, nil
}

type MINIOStorage struct {
	client config.ClientConfig[*minio.Client]
}

func NewMINIOStorage(storageConfig config.MinioStorageConfig) (*MINIOStorage, error) {
	storage := &MINIOStorage{}

	err := config.InitializeClient(
		&storage.client,
		func() (*minio.Client, error) {
			return minio.New(
				storageConfig.Url,
				&minio.Options{
					Creds:  credentials.NewStaticV4(storageConfig.AccessKey, storageConfig.SecretKey, ""),
					Secure: storageConfig.Secure,
				},
			)
		},
	)
	if err != nil {
		return nil, err
	}

	return storage, nil
}

func (s *MINIOStorage) ListObjects(bucket string) ([]string, error) {
	objects := []string{}

	for object := range s.client.GetClient().ListObjects(
		context.Background(),
		bucket,
		minio.ListObjectsOptions{
			Recursive: true,
		},
	) {
		if object.Err != nil {
			return nil, object.Err
		}
		objects = append(objects, object.Key)
	}

	return objects, nil
}

func (s *MINIOStorage) PutObjectBytes(bucket, objectName string, fileContent *bytes.Buffer) (string, error) {
	mimeType, err := DetectMimeTypeFromBuffer(fileContent)
	if err != nil {
		return "", err
	}
	if filepath.Ext(objectName) == "" {
		objectName += mimeType.Extension()
	}

	_, err = s.client.GetClient().PutObject(
		context.Background(),
		bucket,
		objectName,
		bytes.NewReader(fileContent.Bytes()),
		int64(fileContent.Len()),
		minio.PutObjectOptions{
			ContentType: mimeType.String(),
		},
	)
	if err != nil {
		return "", err
	}

	return objectName, nil
}

func (s *MINIOStorage) GetObjectBytes(bucket, objectName string) (*bytes.Buffer, error) {
	object, err := s.client.GetClient().GetObject(
		context.Background(),
		bucket,
		objectName,
		minio.GetObjectOptions{},
	)
	if err != nil {
		return nil, err
	}
	defer object.Close()

	buffer := new(bytes.Buffer)
	if _, err := buffer.ReadFrom(object); err != nil {
		return nil, err
	}

	return buffer, nil
}

// NewReportStorage picks MinIO when a bucket is configured, local files otherwise.
func NewReportStorage(storageConfig config.StorageConfig) (interfaces.Storage, string, error) {
	if storageConfig.Minio.Bucket != "" && storageConfig.Minio.Url != "" {
		storage, err := NewMINIOStorage(storageConfig.Minio)
		if err != nil {
			return nil, "", err
		}
		return storage, storageConfig.Minio.Bucket, nil
	}

	return NewLocalStorage(storageConfig.Local.RootPath), "", nil
}

func withExtension(fileName string, content *bytes.Buffer) (string, error) {
	if filepath.Ext(fileName) != "" {
		return fileName, nil
	}

	mimeType, err := DetectMimeTypeFromBuffer(content)
	if err != nil {
		return "", err
	}
	return fileName + mimeType.Extension(), nil
}

func DetectMimeTypeFromBuffer(largeBuffer *bytes.Buffer) (*mimetype.MIME, error) {
	var detectorBytesLen int64 = 261

	var copiedBuffer bytes.Buffer

	// Read the head through a tee so the buffer can be restored afterwards
	teeReader := io.TeeReader(io.LimitReader(largeBuffer, detectorBytesLen), &copiedBuffer)

	smallBuffer := make([]byte, detectorBytesLen)
	bytesRead, err := io.ReadFull(teeReader, smallBuffer)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}

	remaining := largeBuffer.Bytes()
	restored := make([]byte, 0, copiedBuffer.Len()+len(remaining))
	restored = append(restored, copiedBuffer.Bytes()...)
	restored = append(restored, remaining...)

	largeBuffer.Reset()
	largeBuffer.Write(restored)

	return mimetype.Detect(smallBuffer[:bytesRead]), nil
}
