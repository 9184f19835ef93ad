package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `object_key,bucket,tags
images/a.jpg,raw,"vehicles/car"
images/b.png,raw,
labels/a.xml,raw,
images/c.jpeg,raw,"vehicles/truck"
,raw,
docs/readme.txt,raw,
`

func TestPreviewCSV(t *testing.T) {
	p, err := PreviewCSV(strings.NewReader(testCSV))
	require.NoError(t, err)

	assert.Equal(t, 6, p.TotalRows)
	assert.Equal(t, []string{"object_key", "bucket", "tags"}, p.Columns)
	assert.True(t, p.HasTagsColumn)
	assert.Equal(t, 3, p.ImageCount)
	assert.Equal(t, 1, p.AnnotationCount)

	require.Len(t, p.RowErrors, 1)
	assert.Equal(t, 6, p.RowErrors[0].Line)
	assert.Contains(t, p.RowErrors[0].Msg, "object_key")

	require.Len(t, p.SampleRows, 5)
	assert.Equal(t, "images/a.jpg", p.SampleRows[0]["object_key"])
	assert.Equal(t, "vehicles/car", p.SampleRows[0]["tags"])
}

func TestPreviewCSVMissingKeyColumn(t *testing.T) {
	_, err := PreviewCSV(strings.NewReader("bucket,file\nraw,a.jpg\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "object_key")
}

func TestPreviewCSVEmpty(t *testing.T) {
	_, err := PreviewCSV(strings.NewReader(""))
	assert.Error(t, err)
}
