package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"tag-manager/feature/integrity/checks"
	"tag-manager/feature/tags"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandleStructureCheck(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/structure", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "checked", body["status"])
	assert.Equal(t, []any{"imports", "exports"}, body["missing"])
}

func TestHandleStructureCheck_Fix(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(nil)
	mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/structure?fix=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "fixed", body["status"])
	mockClient.AssertNumberOfCalls(t, "PutObject", 2)
}

func TestHandleStructureCheck_BucketMissing(t *testing.T) {
	app, mockClient, _ := setupTestApp(t)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/structure", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestHandleSchemaCheck(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report checks.SchemaReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.True(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["tags"].Status)
}

func TestHandleTagCheck(t *testing.T) {
	app, _, db := setupTestApp(t)
	createTags(t, db, "plant",
		&tags.Tag{Name: "T1", Addresses: []string{"DB1.X0"}},
		&tags.Tag{Name: "T2", Addresses: []string{"DB1.X0"}},
		&tags.Tag{Name: "T3"},
	)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/tags/plant", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report checks.TagReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 3, report.Count)
	require.Len(t, report.Collisions, 1)
	assert.Equal(t, []string{"T1", "T2"}, report.Collisions[0].Tags)
	assert.Equal(t, []string{"T3"}, report.Unaddressed)
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, mockClient, db := setupTestApp(t)
	createTags(t, db, "plant", &tags.Tag{Name: "T1", Addresses: []string{"DB1.X0"}})
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	var structure map[string]string
	require.NoError(t, json.Unmarshal(body["structure"], &structure))
	assert.Equal(t, "error", structure["status"])

	var schema checks.SchemaReport
	require.NoError(t, json.Unmarshal(body["schema"], &schema))
	assert.True(t, schema.Matched)

	var projects []checks.TagReport
	require.NoError(t, json.Unmarshal(body["tags"], &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, "plant", projects[0].Project)
}
