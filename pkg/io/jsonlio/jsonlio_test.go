package jsonlio

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/transform/standardize"
)

const sample = `{"name":"Ana","age":31,"score":1.5,"born":"1989-04-02","vip":true}
{"name":"Bob","age":null,"score":2,"born":"1990-12-31","vip":false}
{"name":"Cleo","age":"45","extra":{"a":1}}
`

func TestInferAndRead(t *testing.T) {
	r := NewReaderFrom(strings.NewReader(sample), ReaderOptions{})
	schema, err := r.InferSchema()
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "born", "extra", "name", "score", "vip"}, schema.Names())
	kinds := map[string]frame.Kind{}
	for _, cs := range schema.Columns {
		kinds[cs.Name] = cs.Type
	}
	assert.Equal(t, frame.KindInt, kinds["age"])
	assert.Equal(t, frame.KindTime, kinds["born"])
	assert.Equal(t, frame.KindString, kinds["extra"])
	assert.Equal(t, frame.KindFloat, kinds["score"])
	assert.Equal(t, frame.KindBool, kinds["vip"])

	f, err := r.ReadAll(schema)
	require.NoError(t, err)
	require.Equal(t, 3, f.Rows())
	assert.Equal(t, map[string]any{
		"age":   int64(31),
		"born":  time.Date(1989, 4, 2, 0, 0, 0, 0, time.UTC),
		"name":  "Ana",
		"score": 1.5,
		"vip":   true,
	}, f.Row(0))
	assert.Equal(t, map[string]any{"age": int64(45), "extra": `{"a":1}`, "name": "Cleo"}, f.Row(2))
}

func TestMalformedLine(t *testing.T) {
	r := NewReaderFrom(strings.NewReader("{\"a\":1}\n{oops\n"), ReaderOptions{})
	_, err := r.InferSchema()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jsonl record 2")
}

func TestWrite(t *testing.T) {
	r := NewReaderFrom(strings.NewReader(sample), ReaderOptions{})
	schema, err := r.InferSchema()
	require.NoError(t, err)
	f, err := r.ReadAll(schema)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, f))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.JSONEq(t, `{"age":31,"born":"1989-04-02T00:00:00Z","name":"Ana","score":1.5,"vip":true}`, lines[0])
}

func TestStreamGzip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.jsonl")
	require.NoError(t, os.WriteFile(in, []byte(sample), 0o644))

	sr, c, err := NewStreamReader(in, ReaderOptions{}, 2)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	out := filepath.Join(dir, "out.jsonl.gz")
	sw, err := NewStreamWriter(out)
	require.NoError(t, err)
	p := frame.NewPipeline().Add(&standardize.Lower{Columns: []string{"name"}})
	n, err := frame.RunStream(context.Background(), p, sr, sw)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	r, c2, err := Open(out, ReaderOptions{})
	require.NoError(t, err)
	defer func() { _ = c2.Close() }()
	schema, err := r.InferSchema()
	require.NoError(t, err)
	f, err := r.ReadAll(schema)
	require.NoError(t, err)
	name, ok := f.ColumnByName("name")
	require.True(t, ok)
	v, _ := name.Value(2)
	assert.Equal(t, "cleo", v)
}
