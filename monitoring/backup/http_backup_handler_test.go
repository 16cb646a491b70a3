package backup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oraclelabs/dapi-server/testing/assert"
)

type fakeExporter struct {
	dir                string
	permissionOverride bool
	err                error
}

func (f *fakeExporter) Backup(_ context.Context, outputPath string, permissionOverride bool) error {
	f.dir = outputPath
	f.permissionOverride = permissionOverride
	return f.err
}

func TestHandler(t *testing.T) {
	bk := &fakeExporter{}
	h := Handler(bk, "/var/backups/dapi")

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/db/backup", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "", bk.dir)

	rr = httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/db/backup?permissionOverride", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
	assert.Equal(t, "/var/backups/dapi", bk.dir)
	assert.Equal(t, true, bk.permissionOverride)

	bk.err = errors.New("disk full")
	rr = httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/db/backup", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, false, bk.permissionOverride)
}
