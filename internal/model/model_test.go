package model

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"sparsefields/internal/sparse"
)

// Хелпер: запись файла
func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	full := filepath.Join(dir, name)
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", full, err)
	}
	return full
}

// Хелпер: получить модель из Registry
func getModel(t *testing.T, name string) *Model {
	t.Helper()
	m, ok := Registry[name]
	if !ok || m == nil {
		t.Fatalf("model %q not found in Registry", name)
	}
	return m
}

const postYAML = `
table: posts
fields:
  title: post_title
  body: content
defaults:
  fields: title, body
  relations:
    - author
relations:
  author:
    type: belongs_to
    model: User
    order: full_name
  comments:
    type: has_many
    model: Comment
    fields:
      text: body
`

const userYAML = `
table: users
fields:
  name: full_name
  email: email_address
`

const commentYAML = `
table: comments
fields:
  text: comment_body
`

func loadFixtures(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	write(t, dir, "Post.yml", postYAML)
	write(t, dir, "User.yml", userYAML)
	write(t, dir, "Comment.yml", commentYAML)
	if err := InitRegistry(dir); err != nil {
		t.Fatalf("InitRegistry: %v", err)
	}
}

func TestInitRegistry_LinksRelationDefaults(t *testing.T) {
	loadFixtures(t)
	post := getModel(t, "Post")

	author := post.GetRelation("author")
	if author == nil || author.GetModelRef() != getModel(t, "User") {
		t.Fatalf("author not linked: %+v", author)
	}
	if author.FK != "author_id" || author.PK != "id" || author.Table != "users" {
		t.Fatalf("author defaults wrong: %+v", author)
	}

	comments := post.GetRelation("comments")
	if comments.FK != "post_id" || comments.PK != "id" || comments.Table != "comments" {
		t.Fatalf("comments defaults wrong: %+v", comments)
	}

	if diff := cmp.Diff(FieldList{"title", "body"}, post.Defaults.Fields); diff != "" {
		t.Fatalf("default fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadModelsFromDir_UnknownKey(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Post.yml", "table: posts\ncolumns:\n  title: post_title\n")
	Registry = map[string]*Model{}

	err := LoadModelsFromDir(dir)
	if err == nil || !strings.Contains(err.Error(), "unknown key 'columns'") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadModelsFromDir_FieldMustBeScalar(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Post.yml", "table: posts\nfields:\n  title: [a, b]\n")
	Registry = map[string]*Model{}

	err := LoadModelsFromDir(dir)
	if err == nil || !strings.Contains(err.Error(), "must map to a column name") {
		t.Fatalf("expected field map error, got %v", err)
	}
}

func TestLinkModelRelations_Errors(t *testing.T) {
	cases := map[string]struct {
		yaml string
		want string
	}{
		"missing model": {
			yaml: "table: posts\nrelations:\n  author:\n    type: belongs_to\n    model: Ghost\n",
			want: "model 'Ghost' not found",
		},
		"shadowed field": {
			yaml: "table: posts\nfields:\n  author: author_name\nrelations:\n  author:\n    type: belongs_to\n    model: Post\n",
			want: "shadows a field",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			write(t, dir, "Post.yml", tc.yaml)
			err := InitRegistry(dir)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
}

func TestModel_Mappings(t *testing.T) {
	loadFixtures(t)

	got := getModel(t, "Post").Mappings()
	want := sparse.ColumnMap{
		"title":    "post_title",
		"body":     "content",
		"author":   sparse.ColumnMap{"name": "full_name", "email": "email_address"},
		"comments": sparse.ColumnMap{"text": "body"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mappings mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_SparseFieldsUsesDefaults(t *testing.T) {
	loadFixtures(t)
	post := getModel(t, "Post")

	sf := post.SparseFields(sparse.Params{}, nil)
	if diff := cmp.Diff([]string{"post_title", "content"}, sf.Columns()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"author"}, sf.RelationNames()); diff != "" {
		t.Fatalf("relations mismatch (-want +got):\n%s", diff)
	}

	// запрос перекрывает значения по умолчанию
	sf = post.SparseFields(sparse.Params{"fields": []string{"body"}, "relations": []string{"comments:text"}}, nil)
	if diff := cmp.Diff([]string{"content"}, sf.Columns()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]sparse.RelationSelector{{Name: "comments", Columns: []string{"body"}}}, sf.Relations()); diff != "" {
		t.Fatalf("relations mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSelectQuery(t *testing.T) {
	loadFixtures(t)
	post := getModel(t, "Post")

	sf := post.SparseFields(sparse.Params{
		"fields":    []string{"title"},
		"relations": []any{"author:name", "comments", "ghost"},
	}, nil)

	plan, err := post.BuildSelectQuery(sf, []int{1, 2})
	if err != nil {
		t.Fatalf("BuildSelectQuery: %v", err)
	}
	rendered, err := plan.ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}

	want := []RenderedQuery{
		{SQL: "SELECT post_title, author_id, id FROM posts"},
		{Name: "author", SQL: "SELECT full_name, id FROM users WHERE id = ANY($1) ORDER BY full_name", Args: []any{[]int{1, 2}}},
		{Name: "comments", SQL: "SELECT * FROM comments WHERE post_id = ANY($1)", Args: []any{[]int{1, 2}}},
	}
	if diff := cmp.Diff(want, rendered, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("queries mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ghost"}, plan.Skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestRelationQuery_KeepsKeyColumn(t *testing.T) {
	q := RelationQuery{Builder: squirrel.Select().From("comments"), KeyColumn: "post_id"}

	got := q.Select([]string{"body"}).(RelationQuery)
	sqlStr, _, err := got.Builder.ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if sqlStr != "SELECT body, post_id FROM comments" {
		t.Fatalf("unexpected sql: %s", sqlStr)
	}
}

func TestGetMappingsFromRedisOrBuild_NoClient(t *testing.T) {
	loadFixtures(t)

	got, err := GetMappingsFromRedisOrBuild(context.Background(), "User")
	if err != nil {
		t.Fatalf("GetMappingsFromRedisOrBuild: %v", err)
	}
	if diff := cmp.Diff(getModel(t, "User").Mappings(), got); diff != "" {
		t.Fatalf("mappings mismatch (-want +got):\n%s", diff)
	}

	if _, err := GetMappingsFromRedisOrBuild(context.Background(), "Ghost"); err == nil {
		t.Fatalf("expected error for unknown model")
	}
	if err := FlushFieldMaps(context.Background()); err != nil {
		t.Fatalf("FlushFieldMaps without client: %v", err)
	}
}
