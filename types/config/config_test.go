package config_test

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Marvin-Brouwer/open-adr/types/config"
)

func (suite *ConfigTestSuite) TestDefaultConfig() {
	_config := config.DefaultConfig()

	suite.Equal("warn", _config.Log.Level)
	suite.Equal("0.0.0.0", _config.HTTPAPIServer.Host)
	suite.Equal(8080, _config.HTTPAPIServer.Port)
	suite.Equal(config.SettingDefaults(), _config.ODR)
	suite.Equal(config.DEFAULT_FETCH_TIMEOUT, _config.Schema.FetchTimeout)
	suite.Equal(config.DEFAULT_CONCURRENCY, _config.Processing.Concurrency)
}

func (suite *ConfigTestSuite) TestLoadConfig() {
	path := suite.writeFile("config.yaml", `
log:
  level: debug
http_api_server:
  host: 127.0.0.1
  port: 9090
odr:
  allowed_schemas:
    - https://example.com/odr.schema.json
schema:
  fetch_timeout: 3s
storage:
  local:
    root_path: /tmp/reports
`)

	_config, err := config.LoadConfig(path)
	suite.Nil(err)

	suite.Equal("debug", _config.Log.Level)
	suite.Equal("127.0.0.1", _config.HTTPAPIServer.Host)
	suite.Equal(9090, _config.HTTPAPIServer.Port)
	suite.Equal(config.SettingDefaults().Include, _config.ODR.Include)
	suite.Equal([]string{"https://example.com/odr.schema.json"}, _config.ODR.AllowedSchemas)
	suite.Equal(3*time.Second, _config.Schema.FetchTimeout)
	suite.Equal(config.DEFAULT_CONCURRENCY, _config.Processing.Concurrency)
	suite.Equal("/tmp/reports", _config.Storage.Local.RootPath)
}

func (suite *ConfigTestSuite) TestLoadConfigEmptyInclude() {
	path := suite.writeFile("config.yaml", "odr:\n  include: []\n")

	_config, err := config.LoadConfig(path)
	suite.Nil(err)

	suite.Empty(_config.ODR.Include)
	suite.NotNil(_config.ODR.Include)
}

func (suite *ConfigTestSuite) TestLoadConfigMinioCredentials() {
	directory := suite.T().TempDir()
	suite.Nil(os.WriteFile(
		filepath.Join(directory, "minio_credentials.json"),
		[]byte(`{"bucket": "reports", "accessKey": "key", "secretKey": "secret", "url": "localhost:9000"}`),
		0644,
	))
	path := filepath.Join(directory, "config.yaml")
	suite.Nil(os.WriteFile(
		path,
		[]byte("storage:\n  minio:\n    credentials_path: /does/not/exist/minio_credentials.json\n"),
		0644,
	))

	_config, err := config.LoadConfig(path)
	suite.Nil(err)

	suite.Equal("reports", _config.Storage.Minio.Bucket)
	suite.Equal("key", _config.Storage.Minio.AccessKey)
	suite.Equal("secret", _config.Storage.Minio.SecretKey)
	suite.Equal("localhost:9000", _config.Storage.Minio.Url)
	suite.False(_config.Storage.Minio.Secure)
}

func (suite *ConfigTestSuite) TestLoadConfigMissingFile() {
	_, err := config.LoadConfig(filepath.Join(suite.T().TempDir(), "missing.yaml"))

	suite.True(os.IsNotExist(err))
}

func (suite *ConfigTestSuite) TestGetConfigFromEnvironment() {
	path := suite.writeFile("config.yaml", "processing:\n  concurrency: 8\n")
	suite.T().Cleanup(func() { config.GetConfig(true) })
	suite.T().Setenv("CONFIG_FILE", path)

	_config := config.GetConfig(true)

	suite.Equal(8, _config.Processing.Concurrency)
	suite.Equal(_config, config.GetConfig())
}
