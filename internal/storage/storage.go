package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/gdc-vault/internal/vault"
)

const indent = "    "

var (
	// ErrNoVaults is returned when a vault list file has no "vaults" array.
	ErrNoVaults = errors.New("missing vaults key")
	// ErrNilVault is returned when a vault list file holds a null entry.
	ErrNilVault = errors.New("null vault entry")
)

// Storage handles persistence of vault collections
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dataDir, creating the directory if needed.
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}
	if dataDir == "" {
		dataDir = "."
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// YearCode reduces a year to the short code used in file names and URLs (2023 -> 23).
func YearCode(year int) int {
	return year % 100
}

// VaultListPath returns the path of the full collection for year
func (s *Storage) VaultListPath(year int) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("GDC%d_vault_list.json", YearCode(year)))
}

// FilteredPath returns the path of the filtered export for year
func (s *Storage) FilteredPath(year int) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("GDC%d_filtered.json", YearCode(year)))
}

// LoadVaultList reads the full collection for year. A missing file, a file without a
// "vaults" array and a null entry are all errors.
func (s *Storage) LoadVaultList(year int) (*vault.Collection, error) {
	path := s.VaultListPath(year)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vault list: %w", err)
	}

	var collection vault.Collection
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("parsing vault list %s: %w", path, err)
	}

	if collection.Vaults == nil {
		return nil, fmt.Errorf("parsing vault list %s: %w", path, ErrNoVaults)
	}
	for i, v := range collection.Vaults {
		if v == nil {
			return nil, fmt.Errorf("parsing vault list %s: vault %d: %w", path, i, ErrNilVault)
		}
	}

	return &collection, nil
}

// SaveVaultList writes the full collection for year
func (s *Storage) SaveVaultList(year int, c *vault.Collection) error {
	if err := writeCollection(s.VaultListPath(year), c); err != nil {
		return fmt.Errorf("writing vault list: %w", err)
	}
	return nil
}

// SaveFiltered writes the filtered export for year
func (s *Storage) SaveFiltered(year int, c *vault.Collection) error {
	if err := writeCollection(s.FilteredPath(year), c); err != nil {
		return fmt.Errorf("writing filtered vaults: %w", err)
	}
	return nil
}

func writeCollection(path string, c *vault.Collection) error {
	if c == nil {
		c = vault.NewCollection()
	}
	if c.Vaults == nil {
		c = &vault.Collection{Vaults: make([]*vault.Vault, 0)}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", indent)
	// Titles and overviews routinely contain & and <, keep them readable.
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("encoding vaults: %w", err)
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}
