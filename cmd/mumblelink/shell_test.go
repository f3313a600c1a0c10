package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/srediag/mumblelink/internal/sampler"
	"github.com/srediag/mumblelink/pkg/mumblelink"
)

type fakeReader struct {
	rec mumblelink.Record
	err error
}

func (f *fakeReader) Name() string { return "MumbleLink" }

func (f *fakeReader) Read() (mumblelink.Record, error) { return f.rec, f.err }

func (f *fakeReader) Tick() (uint32, error) { return uint32(f.rec.UITick), f.err }

type ShellTestSuite struct {
	suite.Suite
	reader *fakeReader
	out    *bytes.Buffer
	s      *session
}

func (s *ShellTestSuite) SetupTest() {
	s.reader = &fakeReader{rec: sampleRecord()}
	r, out := newTestRenderer("text", "none", "metric")
	s.out = out
	s.s = &session{
		reader:  s.reader,
		sampler: sampler.New(s.reader, 4, zap.NewNop()),
		render:  r,
		out:     out,
	}
}

func (s *ShellTestSuite) TearDownTest() {
	s.s.sampler.Close()
}

func (s *ShellTestSuite) TestExit() {
	s.Require().True(s.s.handle("exit"))
	s.Require().True(s.s.handle("  QUIT "))
	s.Require().False(s.s.handle(""))
}

func (s *ShellTestSuite) TestReadAndTick() {
	s.Require().False(s.s.handle("read"))
	s.Require().Contains(s.out.String(), "name:        Guild Wars 2")

	s.out.Reset()
	s.s.handle("tick")
	s.Require().Equal("42\n", s.out.String())

	s.out.Reset()
	s.reader.err = mumblelink.ErrUnreadable
	s.s.handle("tick")
	s.Require().Contains(s.out.String(), "MumbleLink: "+mumblelink.ErrUnreadable.Error())
}

func (s *ShellTestSuite) TestPollAndHistory() {
	s.s.handle("poll")
	s.s.handle("poll")
	s.reader.rec.UITick = 43
	s.s.handle("poll")
	s.Require().Equal("tick 42 changed=true\ntick 42 changed=false\ntick 43 changed=true\n", s.out.String())

	s.out.Reset()
	s.s.handle("history")
	s.Require().Contains(s.out.String(), "ui_tick:     42")
	s.Require().Contains(s.out.String(), "ui_tick:     43")
	s.Require().Zero(s.s.sampler.Len())
}

func (s *ShellTestSuite) TestSettings() {
	s.s.handle("units imperial")
	s.s.handle("context hex")
	s.s.handle("format json")
	s.Require().Equal("imperial", s.s.render.units)
	s.Require().Equal("hex", s.s.render.context)
	s.Require().Equal("json", s.s.render.format)
	s.Require().Empty(s.out.String())

	s.s.handle("units parsecs")
	s.Require().Contains(s.out.String(), "invalid units")
	s.Require().Equal("imperial", s.s.render.units)

	s.out.Reset()
	s.s.handle("format")
	s.Require().Equal("usage: format <value>\n", s.out.String())
}

func (s *ShellTestSuite) TestUnknown() {
	s.s.handle("jump")
	s.Require().Equal("unknown command \"jump\", try help\n", s.out.String())
}

func TestShellTestSuite(t *testing.T) {
	suite.Run(t, new(ShellTestSuite))
}
