// Package github is a minimal client for the GitHub Contents API: it
// reads and writes single file contents keyed by owner/repo/path/branch
// and exposes commit SHAs as revision ids. The service is consumed as an
// opaque file store; nothing else of the GitHub API surface is used.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dsavelev/gitnotes/internal/common"
)

const defaultBaseURL = "https://api.github.com"

// Client is the remote file service the sync reconciler talks to.
type Client interface {
	// GetFile reads a file, returning common.ErrorNotFound when the path
	// does not exist on the branch.
	GetFile(ctx context.Context, creds Credentials, loc Location, path string) (*RemoteFile, error)

	// PutFile creates or updates a file and returns the new content SHA.
	// priorSHA must carry the current remote SHA when updating an
	// existing file; a stale value makes the remote reject the write
	// with common.ErrorRemoteConflict.
	PutFile(ctx context.Context, creds Credentials, loc Location, path, content, message, priorSHA string) (string, error)

	// LatestCommit returns the most recent commit touching path, or
	// common.ErrorNotFound when the path has no history.
	LatestCommit(ctx context.Context, creds Credentials, loc Location, path string) (*Commit, error)
}

// RESTClient implements Client over the GitHub REST API.
type RESTClient struct {
	baseURL string
	httpc   *http.Client
}

var _ Client = (*RESTClient)(nil)

// NewClient returns a RESTClient. An empty baseURL selects api.github.com;
// tests point it at an httptest server. A nil httpc gets a client with a
// sane timeout.
func NewClient(baseURL string, httpc *http.Client) *RESTClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}
	return &RESTClient{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

type contentResponse struct {
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

func (c *RESTClient) GetFile(ctx context.Context, creds Credentials, loc Location, path string) (*RemoteFile, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, loc.Owner, loc.Repo, escapePath(path))
	if loc.Branch != "" {
		u += "?ref=" + url.QueryEscape(loc.Branch)
	}

	body, err := c.do(ctx, http.MethodGet, u, creds, nil)
	if err != nil {
		return nil, err
	}

	var cr contentResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("failed to decode contents response: %w", err)
	}

	text, err := decodeContent(cr.Content)
	if err != nil {
		return nil, err
	}

	return &RemoteFile{Path: path, SHA: cr.SHA, Content: text}, nil
}

func (c *RESTClient) PutFile(ctx context.Context, creds Credentials, loc Location, path, content, message, priorSHA string) (string, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, loc.Owner, loc.Repo, escapePath(path))

	req := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString([]byte(content)),
	}
	if priorSHA != "" {
		req["sha"] = priorSHA
	}
	if loc.Branch != "" {
		req["branch"] = loc.Branch
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPut, u, creds, payload)
	if err != nil {
		return "", err
	}

	var pr struct {
		Content contentResponse `json:"content"`
	}
	if err := json.Unmarshal(body, &pr); err != nil {
		return "", fmt.Errorf("failed to decode write response: %w", err)
	}
	return pr.Content.SHA, nil
}

func (c *RESTClient) LatestCommit(ctx context.Context, creds Credentials, loc Location, path string) (*Commit, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/commits?per_page=1&path=%s", c.baseURL, loc.Owner, loc.Repo, url.QueryEscape(path))
	if loc.Branch != "" {
		u += "&sha=" + url.QueryEscape(loc.Branch)
	}

	body, err := c.do(ctx, http.MethodGet, u, creds, nil)
	if err != nil {
		return nil, err
	}

	var commits []struct {
		SHA    string `json:"sha"`
		Commit struct {
			Message string `json:"message"`
			Author  struct {
				Name string `json:"name"`
			} `json:"author"`
		} `json:"commit"`
	}
	if err := json.Unmarshal(body, &commits); err != nil {
		return nil, fmt.Errorf("failed to decode commits response: %w", err)
	}
	if len(commits) == 0 {
		return nil, fmt.Errorf("no commits for %s: %w", path, common.ErrorNotFound)
	}

	first := commits[0]
	return &Commit{SHA: first.SHA, Message: first.Commit.Message, Author: first.Commit.Author.Name}, nil
}

// do runs one request and maps HTTP failures onto the shared error
// taxonomy. The response body is returned only for 2xx statuses.
func (c *RESTClient) do(ctx context.Context, method, u string, creds Credentials, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if creds.Token != "" {
		req.Header.Set("Authorization", "Bearer "+creds.Token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", common.ErrorRemoteUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", u, common.ErrorNotFound)
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: status %d: %s", common.ErrorRemoteConflict, resp.StatusCode, truncate(body))
	default:
		return nil, fmt.Errorf("%w: status %d: %s", common.ErrorRemoteUnavailable, resp.StatusCode, truncate(body))
	}
}

// decodeContent decodes the base64 file payload. GitHub wraps the payload
// with embedded newlines, which must be stripped before decoding.
func decodeContent(encoded string) (string, error) {
	cleaned := strings.NewReplacer("\n", "", "\r", "").Replace(encoded)
	raw, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return "", fmt.Errorf("failed to decode file content: %w", err)
	}
	return string(raw), nil
}

// escapePath escapes each path segment while keeping the separators.
func escapePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func truncate(body []byte) string {
	const max = 200
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
