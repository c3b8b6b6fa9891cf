// Package github resolves upstream release information from the GitHub REST
// API: latest stable versions (with a tag fallback when a repository
// publishes no releases), the full stable tag list, and repository metadata.
package github

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/matzehuels/spmaudit/pkg/cache"
	apperrors "github.com/matzehuels/spmaudit/pkg/errors"
	"github.com/matzehuels/spmaudit/pkg/integrations"
	"github.com/matzehuels/spmaudit/pkg/semver"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTTL     = 24 * time.Hour
	tagsPageSize   = 100
)

// Config configures a GitHub API client.
type Config struct {
	// Token enables authenticated requests (higher rate limits). Optional.
	Token string
	// BaseURL overrides the API endpoint. Used by tests.
	BaseURL string
	// Cache backs response caching. Defaults to no caching.
	Cache cache.Cache
	// TTL is the cache lifetime for API responses.
	TTL time.Duration
}

// Client queries the GitHub REST API.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client.
func NewClient(cfg Config) *Client {
	headers := map[string]string{
		"Accept": "application/vnd.github.v3+json",
	}
	if cfg.Token != "" {
		headers["Authorization"] = "Bearer " + cfg.Token
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	backing := cfg.Cache
	if backing == nil {
		backing = cache.NewNullCache()
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &Client{
		Client:  integrations.NewClient(backing, "github:", ttl, headers),
		baseURL: baseURL,
	}
}

type release struct {
	TagName    string `json:"tag_name"`
	Prerelease bool   `json:"prerelease"`
}

type tag struct {
	Name string `json:"name"`
}

// RepoInfo holds the repository metadata used for hygiene reporting.
type RepoInfo struct {
	PushedAt    *time.Time
	LicenseSPDX string
	Archived    bool
}

type repoResponse struct {
	PushedAt *time.Time `json:"pushed_at"`
	Archived bool       `json:"archived"`
	License  *struct {
		SPDXID string `json:"spdx_id"`
	} `json:"license"`
}

// errNoStableRelease signals that the releases endpoint yielded nothing
// usable and the tag fallback should run.
var errNoStableRelease = errors.New("no stable release")

// LatestVersion resolves the newest stable upstream version of owner/repo.
// It prefers published releases; when the repository has none (or only
// prereleases), it falls back to the tag list.
func (c *Client) LatestVersion(ctx context.Context, owner, repo string) (string, error) {
	v, err := c.latestFromReleases(ctx, owner, repo)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, errNoStableRelease) {
		return "", err
	}
	return c.latestFromTags(ctx, owner, repo)
}

func (c *Client) latestFromReleases(ctx context.Context, owner, repo string) (string, error) {
	var releases []release
	url := fmt.Sprintf("%s/repos/%s/%s/releases", c.baseURL, owner, repo)
	if err := c.GetCached(ctx, "releases:"+owner+"/"+repo, url, &releases); err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return "", errNoStableRelease
		}
		return "", apperrors.Wrap(apperrors.ErrCodeNetwork, err, "list releases for %s/%s", owner, repo)
	}

	// The API returns releases newest-first.
	for _, r := range releases {
		if r.Prerelease {
			continue
		}
		return semver.Normalize(r.TagName), nil
	}
	return "", errNoStableRelease
}

func (c *Client) latestFromTags(ctx context.Context, owner, repo string) (string, error) {
	versions, err := c.Versions(ctx, owner, repo)
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", apperrors.New(apperrors.ErrCodeNoReleases, "no stable releases for %s/%s", owner, repo)
	}
	return versions[0], nil
}

// Versions returns the repository's stable tag versions, normalized and
// sorted newest-first. Prerelease tags and tags that do not normalize to a
// dotted-numeric version are dropped.
func (c *Client) Versions(ctx context.Context, owner, repo string) ([]string, error) {
	var tags []tag
	url := fmt.Sprintf("%s/repos/%s/%s/tags?per_page=%d", c.baseURL, owner, repo, tagsPageSize)
	if err := c.GetCached(ctx, "tags:"+owner+"/"+repo, url, &tags); err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "repository %s/%s not found", owner, repo)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "list tags for %s/%s", owner, repo)
	}

	var versions []string
	for _, t := range tags {
		if semver.IsPrerelease(t.Name) {
			continue
		}
		v := semver.Normalize(t.Name)
		if !semver.IsValidSemver(v) {
			continue
		}
		versions = append(versions, v)
	}
	sort.SliceStable(versions, func(i, j int) bool {
		return semver.Compare(versions[i], versions[j]) > 0
	})
	return versions, nil
}

// Repo fetches repository metadata.
func (c *Client) Repo(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	var resp repoResponse
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)
	if err := c.GetCached(ctx, "repo:"+owner+"/"+repo, url, &resp); err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "repository %s/%s not found", owner, repo)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetch repository %s/%s", owner, repo)
	}

	info := &RepoInfo{PushedAt: resp.PushedAt, Archived: resp.Archived}
	if resp.License != nil {
		info.LicenseSPDX = resp.License.SPDXID
	}
	return info, nil
}

// LastPushed returns the repository's last push time.
func (c *Client) LastPushed(ctx context.Context, owner, repo string) (time.Time, error) {
	info, err := c.Repo(ctx, owner, repo)
	if err != nil {
		return time.Time{}, err
	}
	if info.PushedAt == nil {
		return time.Time{}, apperrors.New(apperrors.ErrCodeNotFound, "no push activity for %s/%s", owner, repo)
	}
	return *info.PushedAt, nil
}
