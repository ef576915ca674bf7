package fileops

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"themesmith/internal/domain"
	"themesmith/internal/errors"
	"themesmith/internal/theme"
)

// bundleArtifactCount is fixed: manifest, theme document, readme, changelog,
// and packaging ignore file.
const bundleArtifactCount = 5

var slugChars = regexp.MustCompile(`[^a-z0-9-]`)

// BundleResult reports what GenerateExtensionBundle wrote.
type BundleResult struct {
	BundleDir   string
	Artifacts   []string
	CreatedDirs []string
}

// GenerateExtensionBundle converts a theme file into an editor extension
// bundle: five artifacts in a target directory, parents created as needed,
// one progress event per artifact with strictly increasing percentages.
// A failure partway leaves already-written artifacts in place; there is no
// rollback.
func (s *Service) GenerateExtensionBundle(ctx context.Context, input domain.ThemeInput, themePath string, opts Options) (BundleResult, error) {
	sanitized, err := s.security.ValidateThemeInput(input)
	if err != nil {
		return BundleResult{}, err
	}
	if sanitized.Name == "" {
		return BundleResult{}, errors.NewValidationError("name", "", "required", "theme name is required")
	}

	parsed, err := s.ParseThemeFile(ctx, themePath, Options{BaseDir: opts.BaseDir, Timeout: opts.Timeout})
	if err != nil {
		return BundleResult{}, err
	}

	slug := slugify(sanitized.Name)
	bundleDir := sanitized.OutputPath
	if bundleDir == "" {
		bundleDir, err = s.security.ValidateOutputPath(slug, opts.BaseDir)
		if err != nil {
			return BundleResult{}, err
		}
	}

	// Bundle generation touches several files; it gets the extended timeout.
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = s.limits.ExtendedTimeout
	}
	ctx, _, finish, err := s.begin(ctx, timeout)
	if err != nil {
		return BundleResult{}, err
	}
	defer finish()

	themesDir := filepath.Join(bundleDir, "themes")
	for _, dir := range []string{bundleDir, themesDir} {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return BundleResult{}, errors.NewFileProcessingError("generateBundle", dir, "could not create bundle directory", err)
		}
	}

	artifacts := []struct {
		relPath string
		build   func() ([]byte, error)
	}{
		{"package.json", func() ([]byte, error) { return buildManifest(sanitized, slug) }},
		{filepath.Join("themes", slug + "-color-theme.json"), func() ([]byte, error) { return buildThemeDocument(sanitized, parsed.Colors) }},
		{"README.md", func() ([]byte, error) { return buildReadme(sanitized), nil }},
		{"CHANGELOG.md", func() ([]byte, error) { return buildChangelog(sanitized), nil }},
		{".vscodeignore", func() ([]byte, error) { return buildIgnoreFile(), nil }},
	}

	result := BundleResult{
		BundleDir:   bundleDir,
		CreatedDirs: []string{bundleDir, themesDir},
	}

	opts.emit(progressEvent("generateBundle", bundleDir, 0, bundleArtifactCount))

	for i, artifact := range artifacts {
		if ctx.Err() != nil {
			return result, wrapContextErr("generateBundle", bundleDir, ctx.Err(), timeout)
		}

		full := filepath.Join(bundleDir, artifact.relPath)
		data, buildErr := artifact.build()
		if buildErr != nil {
			return result, errors.NewFileProcessingError("generateBundle", full, "could not render artifact", buildErr)
		}
		if err := s.fs.WriteFile(full, data, 0o644); err != nil {
			return result, errors.NewFileProcessingError("generateBundle", full, "could not write artifact", err)
		}

		result.Artifacts = append(result.Artifacts, full)
		opts.emit(progressEvent("generateBundle", full, int64(i+1), bundleArtifactCount))
	}

	s.logger.Info("extension bundle generated",
		"dir", bundleDir,
		"artifacts", len(result.Artifacts))

	return result, nil
}

// slugify lowercases the sanitized name and replaces separators with dashes.
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugChars.ReplaceAllString(slug, "")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "theme"
	}
	return slug
}

func buildManifest(t domain.SanitizedTheme, slug string) ([]byte, error) {
	version := t.Version
	if version == "" {
		version = "0.0.1"
	}
	publisher := t.Publisher
	if publisher == "" {
		publisher = "themesmith"
	}

	manifest := map[string]any{
		"name":        slug,
		"displayName": t.Name,
		"description": t.Description,
		"version":     version,
		"publisher":   publisher,
		"engines":     map[string]string{"vscode": "^1.85.0"},
		"categories":  []string{"Themes"},
		"contributes": map[string]any{
			"themes": []map[string]string{
				{
					"label":   t.Name,
					"uiTheme": "vs-dark",
					"path":    "./themes/" + slug + "-color-theme.json",
				},
			},
		},
	}
	return json.MarshalIndent(manifest, "", "  ")
}

func buildThemeDocument(t domain.SanitizedTheme, colors map[string]string) ([]byte, error) {
	doc := map[string]any{
		"name":   t.Name,
		"type":   "dark",
		"colors": theme.Translate(colors),
	}
	return json.MarshalIndent(doc, "", "  ")
}

func buildReadme(t domain.SanitizedTheme) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Name)
	if t.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", t.Description)
	}
	b.WriteString("Generated from a terminal color scheme by themesmith.\n")
	return []byte(b.String())
}

func buildChangelog(t domain.SanitizedTheme) []byte {
	version := t.Version
	if version == "" {
		version = "0.0.1"
	}
	return []byte(fmt.Sprintf("# Changelog\n\n## %s\n\n- Initial release of %s.\n", version, t.Name))
}

func buildIgnoreFile() []byte {
	return []byte(strings.Join([]string{
		".vscode/**",
		".gitignore",
		"**/*.map",
		"",
	}, "\n"))
}
