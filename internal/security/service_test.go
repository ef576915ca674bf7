package security_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"themesmith/internal/adapters/filesystem"
	"themesmith/internal/config"
	"themesmith/internal/domain"
	"themesmith/internal/errors"
	"themesmith/internal/logging"
	"themesmith/internal/security"
)

// ServiceTestSuite provides common setup for gateway tests.
type ServiceTestSuite struct {
	suite.Suite

	limits  config.Limits
	service *security.Service
	baseDir string
}

func (s *ServiceTestSuite) SetupTest() {
	s.limits = config.DefaultLimits()
	s.limits.FileReadLimit = 5
	s.limits.FileWriteLimit = 5
	s.service = security.NewService(filesystem.New(), s.limits, logging.NewTestLogger())
	s.baseDir = s.T().TempDir()
}

func (s *ServiceTestSuite) TearDownTest() {
	s.service.Cleanup()
}

func (s *ServiceTestSuite) TestValidateFilePathHappyPath() {
	got, err := s.service.ValidateFilePath("my-theme.conf", s.baseDir)
	s.Require().NoError(err)
	s.Equal(filepath.Join(s.baseDir, "my-theme.conf"), got)
	s.Equal(1, s.service.Stats().Counts[domain.KindFileReads])
}

func (s *ServiceTestSuite) TestValidateFilePathRejectsTraversal() {
	_, err := s.service.ValidateFilePath("../../etc/passwd", s.baseDir)
	s.Require().Error(err)
	s.True(errors.IsSecurity(err))
}

func (s *ServiceTestSuite) TestValidateFilePathRejectsExtension() {
	_, err := s.service.ValidateFilePath("binary.exe", s.baseDir)
	s.Require().Error(err)
	s.True(errors.IsSecurity(err))
}

func (s *ServiceTestSuite) TestRejectedPathsDoNotConsumeQuota() {
	for i := 0; i < 10; i++ {
		_, _ = s.service.ValidateFilePath("../escape.conf", s.baseDir)
		_, _ = s.service.ValidateFilePath("nope.exe", s.baseDir)
	}
	s.Equal(0, s.service.Stats().Counts[domain.KindFileReads])

	// Authorized paths still fit in the untouched window.
	_, err := s.service.ValidateFilePath("ok.conf", s.baseDir)
	s.NoError(err)
}

func (s *ServiceTestSuite) TestQuotaExhaustion() {
	for i := 0; i < s.limits.FileReadLimit; i++ {
		_, err := s.service.ValidateFilePath("ok.conf", s.baseDir)
		s.Require().NoError(err)
	}

	_, err := s.service.ValidateFilePath("ok.conf", s.baseDir)
	s.Require().Error(err)
	s.True(errors.IsRateLimited(err))
	s.True(errors.IsSecurity(err))
}

func (s *ServiceTestSuite) TestValidateOutputPathSkipsExtensionCheck() {
	// Bundle artifacts are .json/.md files, not theme extensions.
	got, err := s.service.ValidateOutputPath("bundle/package.json", s.baseDir)
	s.Require().NoError(err)
	s.Equal(filepath.Join(s.baseDir, "bundle", "package.json"), got)
	s.Equal(1, s.service.Stats().Counts[domain.KindFileWrites])
}

func (s *ServiceTestSuite) TestValidateThemeInput() {
	out, err := s.service.ValidateThemeInput(domain.ThemeInput{
		Name:      "My  Theme!",
		Version:   "1.0.0",
		Publisher: "acme",
	})
	s.Require().NoError(err)
	s.Equal("My Theme", out.Name)
	s.Equal("1.0.0", out.Version)
	s.Equal("acme", out.Publisher)

	// Omitted fields come back as empty strings.
	s.Equal("", out.Description)
	s.Equal("", out.OutputPath)
}

func (s *ServiceTestSuite) TestValidateThemeInputOversizedName() {
	_, err := s.service.ValidateThemeInput(domain.ThemeInput{
		Name: strings.Repeat("x", s.limits.MaxNameLength+1),
	})
	s.Require().Error(err)
	s.True(errors.IsValidation(err))

	var verr *errors.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal("name", verr.Field)
}

func (s *ServiceTestSuite) TestValidateThemeInputOutputPath() {
	// Output paths resolve against the working directory.
	cwd, err := filesystem.New().Getwd()
	s.Require().NoError(err)

	out, err := s.service.ValidateThemeInput(domain.ThemeInput{
		OutputPath: "dist",
	})
	s.Require().NoError(err)
	s.Equal(filepath.Join(cwd, "dist"), out.OutputPath)

	_, err = s.service.ValidateThemeInput(domain.ThemeInput{
		OutputPath: "/etc/cron.d",
	})
	s.Require().Error(err)
	s.True(errors.IsSecurity(err))
}

func (s *ServiceTestSuite) TestCleanupIdempotent() {
	s.service.Cleanup()
	s.service.Cleanup()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func TestStatsExposesLimits(t *testing.T) {
	service := security.NewService(filesystem.New(), config.DefaultLimits(), logging.NewTestLogger())
	defer service.Cleanup()

	stats := service.Stats()
	require.NotEmpty(t, stats.Limits)
	assert.Equal(t, config.DefaultLimits().FileReadLimit, stats.Limits[domain.KindFileReads])
}
