package types_test

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/Marvin-Brouwer/open-adr/types"
	"github.com/Marvin-Brouwer/open-adr/types/config"
)

func (suite *TypesTestSuite) TestDetectMimeTypeFromBuffer() {
	type cases struct {
		content   string
		mimeType  string
		extension string
	}
	cases_list := []cases{
		{textContent, "text/plain; charset=utf-8", ".txt"},
		{xmlContent, "text/xml; charset=utf-8", ".xml"},
	}
	for _, _case := range cases_list {
		buffer := bytes.NewBufferString(_case.content)
		mimeType, err := types.DetectMimeTypeFromBuffer(buffer)
		suite.Nil(err)
		suite.Equal(_case.mimeType, mimeType.String())
		suite.Equal(_case.extension, mimeType.Extension())

		// The buffer is left intact
		suite.Equal(_case.content, buffer.String())
	}
}

func (suite *TypesTestSuite) TestDetectMimeTypeFromLargeBuffer() {
	content := bytes.Repeat([]byte(textContent), 20)
	buffer := bytes.NewBuffer(append([]byte(nil), content...))

	_, err := types.DetectMimeTypeFromBuffer(buffer)
	suite.Nil(err)
	suite.Equal(content, buffer.Bytes())
}

func (suite *TypesTestSuite) TestLocalStorageListObjectsMissingDirectory() {
	storage := types.NewLocalStorage(suite.T().TempDir())

	objects, err := storage.ListObjects("missing")
	suite.Nil(err)
	suite.Empty(objects)
}

func (suite *TypesTestSuite) TestLocalStoragePutObjectBytes() {
	root := suite.T().TempDir()
	storage := types.NewLocalStorage(root)

	fileName, err := storage.PutObjectBytes("reports", "0001", bytes.NewBufferString(textContent))
	suite.Nil(err)
	suite.Equal("0001.txt", fileName)

	content, err := os.ReadFile(filepath.Join(root, "reports", "0001.txt"))
	suite.Nil(err)
	suite.Equal(textContent, string(content))

	objects, err := storage.ListObjects("reports")
	suite.Nil(err)
	suite.Equal([]string{"0001.txt"}, objects)
}

func (suite *TypesTestSuite) TestLocalStorageKeepsExtension() {
	storage := types.NewLocalStorage(suite.T().TempDir())

	fileName, err := storage.PutObjectBytes("", "report.json", bytes.NewBufferString(textContent))
	suite.Nil(err)
	suite.Equal("report.json", fileName)
}

func (suite *TypesTestSuite) TestLocalStorageGetObjectBytes() {
	storage := types.NewLocalStorage(suite.T().TempDir())

	fileName, err := storage.PutObjectBytes("reports", "0001.txt", bytes.NewBufferString(textContent))
	suite.Nil(err)

	content, err := storage.GetObjectBytes("reports", fileName)
	suite.Nil(err)
	suite.Equal(textContent, content.String())

	_, err = storage.GetObjectBytes("reports", "missing.txt")
	suite.NotNil(err)
}

func (suite *TypesTestSuite) TestLocalStorageAbsoluteDirectory() {
	storage := types.NewLocalStorage(suite.T().TempDir())

	content, err := storage.GetObjectBytes(suite.documentPath(""), "valid.json")
	suite.Nil(err)
	suite.Contains(content.String(), "validexample.com")
}

func (suite *TypesTestSuite) TestNewReportStorage() {
	root := suite.T().TempDir()

	storage, directory, err := types.NewReportStorage(config.StorageConfig{
		Local: config.LocalStorageConfig{RootPath: root},
	})
	suite.Nil(err)
	suite.Empty(directory)
	suite.IsType(&types.LocalStorage{}, storage)

	storage, directory, err = types.NewReportStorage(config.StorageConfig{
		Minio: config.MinioStorageConfig{
			Bucket:    "reports",
			Url:       "localhost:9000",
			AccessKey: "key",
			SecretKey: "secret",
		},
	})
	suite.Nil(err)
	suite.Equal("reports", directory)
	suite.IsType(&types.MINIOStorage{}, storage)
}
