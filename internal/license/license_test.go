package license_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/mutker/questagent/internal/license"
	"github.com/stretchr/testify/assert"
)

func TestFetchFillsPresentFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"key":"ABCD-1234","label":"station-7","serialDisk":"WD-XYZ"}`))
	}))
	defer srv.Close()

	info := license.NewClient(srv.URL).Fetch(context.Background())

	assert.Equal(t, "ABCD-1234", info.Key)
	assert.Equal(t, "station-7", info.Label)
	assert.Equal(t, "WD-XYZ", info.SerialDisk)
	// Absent fields keep the sentinel
	assert.Equal(t, "N/A", info.ActivationID)
	assert.Equal(t, "N/A", info.SerialMotherboard)
	assert.Equal(t, "N/A", info.SerialHardware)
}

func TestFetchDegradesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	assert.Equal(t, license.Unknown(), license.NewClient(srv.URL).Fetch(context.Background()))
}

func TestFetchUnreachableService(t *testing.T) {
	assert.Equal(t, license.Unknown(), license.NewClient("http://127.0.0.1:1/license").Fetch(context.Background()))
}
