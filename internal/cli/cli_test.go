package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparsefields/internal/resolver"
)

func writeModels(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Post.yml"), []byte(`
table: posts
fields:
  title: post_title
relations:
  tags:
    type: has_many
    model: Tag
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Tag.yml"), []byte(`
table: tags
fields:
  label: tag_label
`), 0o644))
	return dir
}

func TestColumnsText(t *testing.T) {
	dir := writeModels(t)

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"columns", "Post", "--models", dir, "--fields", "title", "-r", "tags:label"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "Post: post_title")
	assert.Contains(t, output, "  tags: tag_label")
	assert.Contains(t, output, "SELECT post_title, id FROM posts;")
	assert.Contains(t, output, "-- tags\nSELECT tag_label, post_id FROM tags WHERE post_id = ANY($1);")
}

func TestColumnsJSON(t *testing.T) {
	dir := writeModels(t)

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"columns", "Post", "--models", dir, "--format", "json", "-r", "tags"})

	require.NoError(t, cmd.Execute())

	var res resolver.ColumnsResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, []string{"*"}, res.Columns)
	require.Len(t, res.Relations, 1)
	assert.Equal(t, "tags", res.Relations[0].Name)
	assert.Equal(t, []string{"*"}, res.Relations[0].Columns)
}

func TestColumnsUnknownModel(t *testing.T) {
	dir := writeModels(t)

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"columns", "Ghost", "--models", dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrModelNotFound)
}

func TestValidate(t *testing.T) {
	dir := writeModels(t)

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"validate", dir, "--format", "json"})

	require.NoError(t, cmd.Execute())

	var res ValidationResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.True(t, res.Valid)
	assert.Equal(t, []string{"Post", "Tag"}, res.Models)
}

func TestValidateBrokenModels(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Post.yml"), []byte("table: posts\nbogus: 1\n"), 0o644))

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"validate", dir})

	require.Error(t, cmd.Execute())
	assert.Contains(t, buf.String(), "unknown key 'bogus'")
}

func TestInvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate", "--format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
