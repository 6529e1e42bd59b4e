package github

// Credentials authenticates requests against the GitHub API.
type Credentials struct {
	// Token is a personal access token with repo contents permission.
	Token string
}

// Location identifies the remote repository (and optionally branch) that
// documents sync against.
type Location struct {
	Owner  string
	Repo   string
	Branch string
}

// RemoteFile is the decoded state of one file in the remote repository.
type RemoteFile struct {
	Path string

	// SHA is the blob revision id of the file content. Supplying it on
	// writes lets the remote reject updates based on a stale revision.
	SHA string

	// Content is the decoded UTF-8 text.
	Content string
}

// Commit is the provenance of the most recent change to a path.
type Commit struct {
	SHA     string
	Message string
	Author  string
}
