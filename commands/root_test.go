package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-project-panel/internal/data/filter"
)

const sampleCSV = `nome;Secretaria;Tipo;Subtipo;Status do Projeto;Andamento MVP;Data de Início do projeto;Previsão de término
Portal da Transparência;SEFAZ;INTERNO;Portal;Em andamento;50;01/01/2024;11/01/2024
Sistema de Protocolo;SEDUC;EXTERNO;Sistema;Concluído;100;01/03/2024;30/06/2024
`

// prepare writes a spreadsheet and a config that logs into the temp dir
func prepare(t *testing.T) (csvPath, cfgPath string) {
	t.Helper()
	dir := t.TempDir()
	csvPath = filepath.Join(dir, "projetos.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0644))

	cfgPath = filepath.Join(dir, "config.yaml")
	cfg := "log:\n  file: " + filepath.Join(dir, "logs", "app.log") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))
	return csvPath, cfgPath
}

func resetFlags(t *testing.T) {
	t.Helper()
	dataFile, configFile, timezone = "", "", ""
	outputFormat, noColor, width, debug = "table", false, 0, false
	for _, values := range filterValues {
		*values = nil
	}
	for _, name := range []string{"output", "format", "file", "config"} {
		if f := rootCmd.Flags().Lookup(name); f != nil {
			f.Changed = false
		}
		if f := rootCmd.PersistentFlags().Lookup(name); f != nil {
			f.Changed = false
		}
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := Execute()
	return buf.String(), err
}

func TestRenderTable(t *testing.T) {
	csvPath, cfgPath := prepare(t)
	out, err := execute(t, "--file", csvPath, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Portal da Transparência")
	assert.Contains(t, out, "Total: 2")
}

func TestRenderWithFilterAndFormatAlias(t *testing.T) {
	csvPath, cfgPath := prepare(t)
	out, err := execute(t, "-f", csvPath, "--config", cfgPath, "--format", "csv", "--secretaria", "SEDUC")
	require.NoError(t, err)
	assert.Contains(t, out, "Sistema de Protocolo")
	assert.NotContains(t, out, "Portal da Transparência")
}

func TestRenderGantt(t *testing.T) {
	csvPath, cfgPath := prepare(t)
	out, err := execute(t, "-f", csvPath, "--config", cfgPath, "-o", "gantt", "--width", "90", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Duração dos Projetos")
	assert.NotContains(t, out, "\033[38;2;")
}

func TestRenderRequiresFile(t *testing.T) {
	_, cfgPath := prepare(t)
	_, err := execute(t, "--config", cfgPath)
	assert.Error(t, err)
}

func TestRenderUnknownFormat(t *testing.T) {
	csvPath, cfgPath := prepare(t)
	_, err := execute(t, "-f", csvPath, "--config", cfgPath, "-o", "pdf")
	assert.Error(t, err)
}

func TestCriteriaFromFlags(t *testing.T) {
	resetFlags(t)
	*filterValues[filter.FieldType] = []string{"INTERNO", "EXTERNO"}
	*filterValues[filter.FieldStatus] = []string{"Em andamento"}

	c := criteriaFromFlags()
	assert.Equal(t, []string{"INTERNO", "EXTERNO"}, c[filter.FieldType])
	assert.Equal(t, []string{"Em andamento"}, c[filter.FieldStatus])
	assert.Empty(t, c[filter.FieldSecretariat])
	resetFlags(t)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, ensureDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestServeCommandRegistered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", cmd.Name())
	assert.NotNil(t, cmd.Flags().Lookup("listen"))
	assert.NotNil(t, cmd.Flags().Lookup("no-watch"))
	assert.NotNil(t, cmd.InheritedFlags().Lookup("file"))
}

func TestRenderFromDirectory(t *testing.T) {
	csvPath, cfgPath := prepare(t)
	out, err := execute(t, "-f", filepath.Dir(csvPath), "--config", cfgPath, "-o", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Portal da Transparência")
}
