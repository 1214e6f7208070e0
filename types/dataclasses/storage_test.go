package dataclasses_test

import (
	"bytes"

	"github.com/Marvin-Brouwer/open-adr/types/dataclasses"
)

func (suite *DataclassesTestSuite) TestStorageLocation() {
	storage := newMemoryStorage()
	location := dataclasses.NewStorageLocation(storage, "reports", "0001.json")

	suite.Equal("reports/0001.json", location.GetFilePath())

	name, err := location.PutObjectBytes(bytes.NewBufferString(`{"status": "completed"}`))
	suite.Nil(err)
	suite.Equal("0001.json", name)

	content, err := location.GetObjectBytes()
	suite.Nil(err)
	suite.Equal(`{"status": "completed"}`, content.String())

	location.SetFileName("0002.json")
	_, err = location.GetObjectBytes()
	suite.NotNil(err)
}
