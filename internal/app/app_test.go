package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/fileformatgo/internal/config"
	"github.com/vk/fileformatgo/internal/report"
	"github.com/vk/fileformatgo/internal/table"
)

const customerSpecHCL = `
format "customers" {
  column "customer_id" {
    datatype = "integer"
  }
  column "name" {
    datatype = "string"
  }
}
`

const customerSpecYAML = `
name: customers
columns:
  - name: customer_id
    datatype: integer
  - name: name
    datatype: string
`

// writeFiles writes the given relative path / content pairs into a fresh
// temporary directory and returns its root.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestApp_AcceptedRun(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"format.hcl": customerSpecHCL,
		"data.csv":   "customer_id,name\n1,Acme\n2,Globex\n",
	})

	var out, logs bytes.Buffer
	a, err := NewApp(&out, &logs, &Config{
		DataPath: filepath.Join(root, "data.csv"),
		SpecPath: filepath.Join(root, "format.hcl"),
	})
	require.NoError(t, err)

	rep, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.StatusAccepted, rep.Status)
	assert.Contains(t, out.String(), "ACCEPTED")
}

func TestApp_RejectedRunWritesReport(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"format.hcl": customerSpecHCL,
		"data.csv":   "customer_id,name\n,Acme\n",
	})
	reportPath := filepath.Join(root, "report.json")

	var out, logs bytes.Buffer
	a, err := NewApp(&out, &logs, &Config{
		DataPath:   filepath.Join(root, "data.csv"),
		SpecPath:   filepath.Join(root, "format.hcl"),
		OutputPath: reportPath,
	})
	require.NoError(t, err)

	rep, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.StatusRejected, rep.Status)

	// With -o set, nothing goes to stdout; the report lands in the file.
	assert.Empty(t, out.String())

	raw, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "REJECTED", doc["status"])
	assert.EqualValues(t, 1, doc["error_count"])
}

func TestApp_YAMLSpecification(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"format.yml": customerSpecYAML,
		"data.csv":   "customer_id,name\n1,Acme\n",
	})

	var out, logs bytes.Buffer
	a, err := NewApp(&out, &logs, &Config{
		DataPath: filepath.Join(root, "data.csv"),
		SpecPath: filepath.Join(root, "format.yml"),
	})
	require.NoError(t, err)
	assert.Equal(t, "customers", a.Format().Name)
}

func TestApp_FormatByName(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"formats/customers.hcl": customerSpecHCL,
		"formats/other.yml":     "name: other\ncolumns:\n  - {name: a, datatype: string}\n",
		"data.csv":              "customer_id,name\n1,Acme\n",
	})

	var out, logs bytes.Buffer
	a, err := NewApp(&out, &logs, &Config{
		DataPath:    filepath.Join(root, "data.csv"),
		FormatsPath: filepath.Join(root, "formats"),
		FormatName:  "customers",
	})
	require.NoError(t, err)
	assert.Equal(t, "customers", a.Format().Name)
}

func TestApp_FormatByDeclaredName(t *testing.T) {
	// The document basename does not match; resolution falls back to the
	// name declared inside the document.
	root := writeFiles(t, map[string]string{
		"formats/misc.hcl": customerSpecHCL,
		"data.csv":         "customer_id,name\n1,Acme\n",
	})

	var out, logs bytes.Buffer
	a, err := NewApp(&out, &logs, &Config{
		DataPath:    filepath.Join(root, "data.csv"),
		FormatsPath: filepath.Join(root, "formats"),
		FormatName:  "customers",
	})
	require.NoError(t, err)
	assert.Equal(t, "customers", a.Format().Name)
}

func TestApp_UnknownFormatName(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"formats/customers.hcl": customerSpecHCL,
	})

	var out, logs bytes.Buffer
	_, err := NewApp(&out, &logs, &Config{
		DataPath:    "data.csv",
		FormatsPath: filepath.Join(root, "formats"),
		FormatName:  "invoices",
	})

	require.Error(t, err)
	var confErr *config.ConfigurationError
	require.ErrorAs(t, err, &confErr)
}

func TestApp_MissingDataFile(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"format.hcl": customerSpecHCL,
	})

	var out, logs bytes.Buffer
	a, err := NewApp(&out, &logs, &Config{
		DataPath: filepath.Join(root, "missing.csv"),
		SpecPath: filepath.Join(root, "format.hcl"),
	})
	require.NoError(t, err)

	_, err = a.Run(context.Background())
	require.Error(t, err)
	var inputErr *table.InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "direct spec path",
			cfg:  Config{DataPath: "d.csv", SpecPath: "f.hcl"},
		},
		{
			name: "formats path with name",
			cfg:  Config{DataPath: "d.csv", FormatsPath: "formats", FormatName: "x"},
		},
		{
			name:    "no data file",
			cfg:     Config{SpecPath: "f.hcl"},
			wantErr: true,
		},
		{
			name:    "no specification",
			cfg:     Config{DataPath: "d.csv"},
			wantErr: true,
		},
		{
			name:    "formats path without name",
			cfg:     Config{DataPath: "d.csv", FormatsPath: "formats"},
			wantErr: true,
		},
		{
			name:    "spec and name together",
			cfg:     Config{DataPath: "d.csv", SpecPath: "f.hcl", FormatsPath: "formats", FormatName: "x"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.cfg)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
