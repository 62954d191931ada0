package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pettycash-ledger/internal/domain/ledger"
)

var march = ledger.MonthKey{Year: 2024, Month: time.March}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			jsonBody, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewBuffer(jsonBody)
		}
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// decodeData unwraps the response envelope and decodes its data field into out
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, out interface{}) Response {
	t.Helper()
	var envelope struct {
		Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	if out != nil {
		require.NotEmpty(t, envelope.Data, "'data' field should not be empty")
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return envelope.Response
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) *ErrorInfo {
	t.Helper()
	var response Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	require.NotNil(t, response.Error, "'error' field should be present")
	return response.Error
}

func extractData(t *testing.T, rr *httptest.ResponseRecorder) json.RawMessage {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	return envelope.Data
}
