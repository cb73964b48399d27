package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/pagemap/pkg/config"
)

const (
	// SettingsFile is the project settings file name.
	SettingsFile = "pagemap.yaml"
	// SettingsFileAlt is accepted as well.
	SettingsFileAlt = "pagemap.yml"
)

// LoadSettings reads the project settings from dir, layered over
// config.DefaultSettings. A missing file yields the defaults.
func LoadSettings(dir string) (config.Settings, error) {
	settings := config.DefaultSettings()

	for _, name := range []string{SettingsFile, SettingsFileAlt} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, iofs.ErrNotExist) {
			continue
		}
		if err != nil {
			return config.Settings{}, fmt.Errorf("failed to read %s: %w", path, err)
		}

		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
			return config.Settings{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		break
	}

	if err := settings.Validate(); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

// WriteDefaultSettings creates dir/pagemap.yaml with the default settings.
// It refuses to overwrite an existing file.
func WriteDefaultSettings(dir string) (string, error) {
	path := filepath.Join(dir, SettingsFile)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}

	var buf bytes.Buffer
	if err := config.Encode(&buf, config.DefaultSettings(), config.FormatYAML); err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
