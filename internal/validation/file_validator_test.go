package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileValidator_ValidateTableFile(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		wantUnsupport bool
		errorContains string
	}{
		{
			name: "csv file",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "day1.csv")
				require.NoError(t, os.WriteFile(file, []byte("SYMBOL,%CHNG\n"), 0644))
				return file
			},
		},
		{
			name: "upper case workbook extension",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "DAY1.XLSX")
				require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
				return file
			},
		},
		{
			name: "non-existent file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.csv")
			},
			wantErr:       true,
			errorContains: "does not exist",
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr:       true,
			errorContains: "is a directory",
		},
		{
			name: "unsupported extension",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "day1.pdf")
				require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
				return file
			},
			wantErr:       true,
			wantUnsupport: true,
		},
		{
			name: "excel lock file",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "~$day1.xlsx")
				require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
				return file
			},
			wantErr:       true,
			errorContains: "temporary Excel file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(nil)
			err := validator.ValidateTableFile(tt.setupFunc(t))

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantUnsupport {
				assert.ErrorIs(t, err, ErrUnsupportedExtension)
			}
			if tt.errorContains != "" {
				assert.Contains(t, err.Error(), tt.errorContains)
			}
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	validator := NewFileValidator(nil)

	dir := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, validator.ValidateOutputDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = os.Stat(filepath.Join(dir, ".write_test"))
	assert.True(t, os.IsNotExist(err), "write check file should be removed")
}

func TestFileValidator_ValidateOutputFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		format  string
		wantErr bool
	}{
		{name: "xlsx", path: filepath.Join(dir, "out.xlsx"), format: "xlsx"},
		{name: "csv prefix without extension", path: filepath.Join(dir, "filtered_data"), format: "csv"},
		{name: "csv with extension", path: filepath.Join(dir, "out.CSV"), format: "csv"},
		{name: "mismatch", path: filepath.Join(dir, "out.csv"), format: "xlsx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewFileValidator(nil).ValidateOutputFile(tt.path, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
