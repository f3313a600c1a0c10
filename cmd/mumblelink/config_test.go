package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigTestSuite) writeConfig(body string) {
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "config.yaml"), []byte(body), 0o600))
}

func (s *ConfigTestSuite) TestDefaultsWithoutFile() {
	cfg, err := loadConfig(s.dir, nil)
	s.Require().NoError(err)
	s.Require().Empty(cfg.Names)
	s.Require().Equal(time.Second, cfg.Interval)
	s.Require().Equal(uint64(64), cfg.History)
	s.Require().Equal("127.0.0.1:9464", cfg.Listen)
	s.Require().Equal("text", cfg.Format)
	s.Require().Equal("none", cfg.Context)
	s.Require().Equal("metric", cfg.Units)
	s.Require().Zero(cfg.Wait)
	s.Require().Equal(4, cfg.Workers)
}

func (s *ConfigTestSuite) TestFileValues() {
	s.writeConfig(`
names: [MumbleLink.1000, Overlay]
interval: 250ms
history: 8
format: json
context: gw2
units: imperial
wait: 10s
`)
	cfg, err := loadConfig(s.dir, nil)
	s.Require().NoError(err)
	s.Require().Equal([]string{"MumbleLink.1000", "Overlay"}, cfg.Names)
	s.Require().Equal(250*time.Millisecond, cfg.Interval)
	s.Require().Equal(uint64(8), cfg.History)
	s.Require().Equal("json", cfg.Format)
	s.Require().Equal("gw2", cfg.Context)
	s.Require().Equal("imperial", cfg.Units)
	s.Require().Equal(10*time.Second, cfg.Wait)
}

func (s *ConfigTestSuite) TestEnvironmentThenOverrides() {
	s.writeConfig("format: json\nunits: imperial\n")
	s.T().Setenv("MUMBLELINK_FORMAT", "debug")

	cfg, err := loadConfig(s.dir, nil)
	s.Require().NoError(err)
	s.Require().Equal("debug", cfg.Format)
	s.Require().Equal("imperial", cfg.Units)

	cfg, err = loadConfig(s.dir, map[string]any{keyFormat: "text", keyInterval: 2 * time.Second})
	s.Require().NoError(err)
	s.Require().Equal("text", cfg.Format)
	s.Require().Equal(2*time.Second, cfg.Interval)
}

func (s *ConfigTestSuite) TestInvalidValues() {
	for key, val := range map[string]any{
		keyFormat:   "xml",
		keyContext:  "tf2",
		keyUnits:    "furlongs",
		keyInterval: time.Duration(0),
		keyWait:     -time.Second,
	} {
		_, err := loadConfig(s.dir, map[string]any{key: val})
		s.Require().Error(err, key)
		s.Require().Contains(err.Error(), key)
	}
}

func (s *ConfigTestSuite) TestMalformedFile() {
	s.writeConfig("format: [unterminated\n")
	_, err := loadConfig(s.dir, nil)
	s.Require().ErrorContains(err, "read config")
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
