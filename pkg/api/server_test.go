package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const billJSON = `{"articles": [
  {"order": 1, "alineas": {"1": "L'article 5 est supprimé."}},
  {"order": 2, "alineas": {"1": "L'article 7 est abrogé."}}
]}`

func newTestServer(logs *bytes.Buffer) *Server {
	return NewServer(zerolog.New(logs))
}

func TestHealth(t *testing.T) {
	var logs bytes.Buffer
	server := newTestServer(&logs)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
	assert.Contains(t, logs.String(), `"path":"/health"`)
}

func TestParseReturnsTree(t *testing.T) {
	var logs bytes.Buffer
	server := newTestServer(&logs)

	request := httptest.NewRequest(http.MethodPost, "/parse?article=2", strings.NewReader(billJSON))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var body struct {
		Children []struct {
			Order    int `json:"order"`
			Children []struct {
				EditType string `json:"editType"`
			} `json:"children"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Children, 1)
	assert.Equal(t, 2, body.Children[0].Order)
	require.Len(t, body.Children[0].Children, 1)
	assert.Equal(t, "delete", body.Children[0].Children[0].EditType)
}

func TestParseYAML(t *testing.T) {
	var logs bytes.Buffer
	server := newTestServer(&logs)

	input := "order: 3\nalineas:\n  \"1\": \"L'article 5 est supprimé.\"\n"
	request := httptest.NewRequest(http.MethodPost, "/parse?format=yaml", strings.NewReader(input))
	request.Header.Set("Content-Type", "application/yaml")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Equal(t, "application/yaml", recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Body.String(), "editType: delete")
}

func TestParseRejectsBadInput(t *testing.T) {
	var logs bytes.Buffer
	server := newTestServer(&logs)

	cases := map[string]string{
		"/parse":              `{"articles": [`,
		"/parse?format=xml":   billJSON,
		"/parse?article=deux": billJSON,
	}
	for target, body := range cases {
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, recorder.Code, target)
		assert.Contains(t, recorder.Body.String(), `"error"`, target)
	}
}

func TestParseArticleList(t *testing.T) {
	orders, listErr := parseArticleList(" 1, 4 ")
	require.NoError(t, listErr)
	assert.Equal(t, []int{1, 4}, orders)

	orders, listErr = parseArticleList("")
	require.NoError(t, listErr)
	assert.Nil(t, orders)
}
