package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsavelev/gitnotes/internal/common"
)

var (
	testCreds = Credentials{Token: "tok123"}
	testLoc   = Location{Owner: "octo", Repo: "notes", Branch: "main"}
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.Client())
}

// wrap64 base64-encodes s and inserts newlines the way the GitHub API does.
func wrap64(s string) string {
	enc := base64.StdEncoding.EncodeToString([]byte(s))
	var out string
	for len(enc) > 8 {
		out += enc[:8] + "\n"
		enc = enc[8:]
	}
	return out + enc + "\n"
}

func TestGetFile_DecodesBase64WithEmbeddedNewlines(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/notes/contents/My_Note.md", r.URL.Path)
		assert.Equal(t, "main", r.URL.Query().Get("ref"))
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]string{
			"sha":      "abc123",
			"content":  wrap64("# My Note\n\nbody text"),
			"encoding": "base64",
		})
	})

	got, err := c.GetFile(context.Background(), testCreds, testLoc, "My_Note.md")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.SHA)
	assert.Equal(t, "# My Note\n\nbody text", got.Content)
}

func TestGetFile_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetFile(context.Background(), testCreds, testLoc, "missing.md")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetFile_ServerErrorIsRemoteUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.GetFile(context.Background(), testCreds, testLoc, "x.md")
	require.ErrorIs(t, err, common.ErrorRemoteUnavailable)
}

func TestPutFile_SendsPriorSHAAndBranch(t *testing.T) {
	var got map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": map[string]string{"sha": "newsha"},
		})
	})

	sha, err := c.PutFile(context.Background(), testCreds, testLoc, "n.md", "# T\n\nbody", "update n.md", "oldsha")
	require.NoError(t, err)
	assert.Equal(t, "newsha", sha)

	assert.Equal(t, "oldsha", got["sha"])
	assert.Equal(t, "main", got["branch"])
	assert.Equal(t, "update n.md", got["message"])

	raw, err := base64.StdEncoding.DecodeString(got["content"])
	require.NoError(t, err)
	assert.Equal(t, "# T\n\nbody", string(raw))
}

func TestPutFile_OmitsSHAForNewFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_, hasSHA := req["sha"]
		assert.False(t, hasSHA)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": map[string]string{"sha": "first"},
		})
	})

	sha, err := c.PutFile(context.Background(), testCreds, testLoc, "n.md", "x", "create", "")
	require.NoError(t, err)
	assert.Equal(t, "first", sha)
}

func TestPutFile_StaleSHAIsConflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	_, err := c.PutFile(context.Background(), testCreds, testLoc, "n.md", "x", "m", "stale")
	require.ErrorIs(t, err, common.ErrorRemoteConflict)
}

func TestLatestCommit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/notes/commits", r.URL.Path)
		assert.Equal(t, "n.md", r.URL.Query().Get("path"))
		assert.Equal(t, "main", r.URL.Query().Get("sha"))

		_, _ = w.Write([]byte(`[
			{"sha": "c1", "commit": {"message": "edit note", "author": {"name": "Octo Cat"}}}
		]`))
	})

	got, err := c.LatestCommit(context.Background(), testCreds, testLoc, "n.md")
	require.NoError(t, err)
	assert.Equal(t, &Commit{SHA: "c1", Message: "edit note", Author: "Octo Cat"}, got)
}

func TestLatestCommit_EmptyHistory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.LatestCommit(context.Background(), testCreds, testLoc, "n.md")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
