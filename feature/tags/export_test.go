package tags

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"tag-manager/core/reconcile"
	"tag-manager/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func exportFixture() []*Tag {
	return []*Tag{
		{
			Name: "Pumps.P1", Group: "Pumps", Description: "Main pump, inlet", DataType: "bool",
			Addresses: []string{"DB1.X0"}, AccessRights: []AccessRight{AccessRead, AccessWrite},
			PollGroup: 2, LogToAuditTrail: true,
		},
		{
			Name: "Level", DataType: "real",
			Addresses: []string{"DB2.D4"}, AccessRights: []AccessRight{AccessReadWrite, AccessNone},
		},
	}
}

func TestEncode_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, exportFixture(), FormatCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Group,Description,DataType,Address_1,AccessRight_1,AccessRight_2,PollGroup,LogToAuditTrail", lines[0])
	assert.Equal(t, `P1,Pumps,"Main pump, inlet",bool,DB1.X0,read,write,2,true`, lines[1])
	assert.Equal(t, "Level,,,real,DB2.D4,read_write,none,0,false", lines[2])
}

func TestEncode_Unsupported(t *testing.T) {
	err := Encode(io.Discard, exportFixture(), Format("xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExport_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatCSV, FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			svc, db := newTestService(t, nil, reconcile.Config{})
			ctx := context.Background()
			for _, tag := range exportFixture() {
				tag.Project = "src"
				require.NoError(t, db.Create(tag).Error)
			}

			var buf bytes.Buffer
			count, err := svc.Export(ctx, "src", &buf, format)
			require.NoError(t, err)
			assert.Equal(t, 2, count)

			result, err := svc.ImportReader(ctx, "dst", "export", &buf, format, silent())
			require.NoError(t, err)
			assert.Equal(t, 2, result.Saved)

			got, err := svc.ListTags(ctx, "dst")
			require.NoError(t, err)
			require.Len(t, got, 2)
			for i, want := range exportFixture() {
				assert.Equal(t, want.Name, got[i].Name)
				assert.Equal(t, want.Group, got[i].Group)
				assert.Equal(t, want.Description, got[i].Description)
				assert.Equal(t, want.DataType, got[i].DataType)
				assert.Equal(t, want.Addresses, got[i].Addresses)
				assert.Equal(t, want.AccessRights, got[i].AccessRights)
				assert.Equal(t, want.PollGroup, got[i].PollGroup)
				assert.Equal(t, want.LogToAuditTrail, got[i].LogToAuditTrail)
			}
		})
	}
}

func TestService_ExportToStorage(t *testing.T) {
	t.Run("CreatesBucket", func(t *testing.T) {
		client := new(mocks.Client)
		svc, db := newTestService(t, client, reconcile.Config{})
		seed(t, db, "plant", "T1", "DB1.X0")

		client.On("BucketExists", mock.Anything, "assets").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "assets", mock.Anything).Return(nil)
		client.On("PutObject", mock.Anything, "assets", "exports/plant.json", mock.Anything, mock.AnythingOfType("int64"),
			mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "application/json" })).
			Return(minio.UploadInfo{Key: "exports/plant.json"}, nil)

		result, err := svc.ExportToStorage(context.Background(), "plant", FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "exports/plant.json", result.Object)
		assert.Equal(t, 1, result.Count)
		assert.Positive(t, result.Size)
		client.AssertExpectations(t)
	})

	t.Run("UploadError", func(t *testing.T) {
		client := new(mocks.Client)
		svc, _ := newTestService(t, client, reconcile.Config{})

		client.On("BucketExists", mock.Anything, "assets").Return(true, nil)
		client.On("PutObject", mock.Anything, "assets", "exports/a_b.csv", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("AccessDenied"))

		_, err := svc.ExportToStorage(context.Background(), "a/b", FormatCSV)
		assert.ErrorContains(t, err, "AccessDenied")
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NoClient", func(t *testing.T) {
		svc, _ := newTestService(t, nil, reconcile.Config{})
		_, err := svc.ExportToStorage(context.Background(), "plant", FormatCSV)
		assert.ErrorIs(t, err, ErrStorageNotConfigured)
	})
}

func TestHandleExport(t *testing.T) {
	svc, db := newTestService(t, nil, reconcile.Config{})
	seed(t, db, "plant", "T1", "DB1.X0")
	app := newTestApp(t, svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/tags/plant/export", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `"plant.csv"`)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "T1,,,,DB1.X0,0,false")

	resp, err = app.Test(httptest.NewRequest("GET", "/tags/plant/export?format=xml", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
