// Package version checks GitHub for newer pinctl releases.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// ReleaseRepo is the GitHub "owner/name" repository publishing pinctl releases.
// Set it at build time with -ldflags "-X pinctl/pkg/version.ReleaseRepo=owner/name".
// Builds without it never check for updates.
var ReleaseRepo = ""

// ErrNoReleaseFeed is returned when the checker has no release URL
var ErrNoReleaseFeed = errors.New("no release repository configured")

const (
	githubAPIFormat = "https://api.github.com/repos/%s/releases/latest"
	downloadFormat  = "https://github.com/%s/releases/latest"
	cacheExpiration = 24 * time.Hour
	cacheFileName   = ".pinctl_version_cache.json"
)

type GitHubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

type VersionCache struct {
	LatestVersion string    `json:"latest_version"`
	CheckedAt     time.Time `json:"checked_at"`
}

// Checker looks up the latest release, caching the answer for a day
type Checker struct {
	// URL is the release API endpoint; empty disables the check
	URL         string
	DownloadURL string
	CachePath   string
	client    *retryablehttp.Client
	now       func() time.Time
}

// ReleasePage returns the latest-release page of ReleaseRepo, or "" when it is unset
func ReleasePage() string {
	if repo := strings.Trim(ReleaseRepo, "/ "); repo != "" {
		return fmt.Sprintf(downloadFormat, repo)
	}
	return ""
}

// NewChecker returns a checker for ReleaseRepo with its cache in the home directory
func NewChecker() *Checker {
	return newChecker(ReleaseRepo)
}

func newChecker(repo string) *Checker {
	cachePath := ""
	if home, err := os.UserHomeDir(); err == nil {
		cachePath = filepath.Join(home, cacheFileName)
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = time.Second
	client.HTTPClient.Timeout = 3 * time.Second
	client.Logger = nil

	c := &Checker{CachePath: cachePath, client: client, now: time.Now}
	if repo = strings.Trim(repo, "/ "); repo != "" {
		c.URL = fmt.Sprintf(githubAPIFormat, repo)
		c.DownloadURL = fmt.Sprintf(downloadFormat, repo)
	}
	return c
}

// CheckLatestVersion reports whether a newer release than currentVersion exists
func (c *Checker) CheckLatestVersion(ctx context.Context, currentVersion string) (isOutdated bool, latestVersion string, err error) {
	if c.URL == "" {
		return false, "", ErrNoReleaseFeed
	}
	if cached, err := c.getFromCache(); err == nil && c.now().Sub(cached.CheckedAt) < cacheExpiration {
		return compareVersions(currentVersion, cached.LatestVersion), cached.LatestVersion, nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return false, "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, "", fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return false, "", err
	}

	var release GitHubRelease
	if err := json.Unmarshal(body, &release); err != nil {
		return false, "", err
	}
	if release.TagName == "" {
		return false, "", fmt.Errorf("release response has no tag")
	}

	latestVersion = strings.TrimPrefix(release.TagName, "v")
	_ = c.saveToCache(latestVersion)

	return compareVersions(currentVersion, latestVersion), latestVersion, nil
}

// compareVersions returns true if current is older than latest.
// Versions compare numerically per dot-separated part; a build suffix such as
// "-abaf1976" on current is ignored.
func compareVersions(current, latest string) bool {
	current = strings.TrimPrefix(current, "v")
	if idx := strings.Index(current, "-"); idx != -1 {
		current = current[:idx]
	}
	latest = strings.TrimPrefix(latest, "v")

	cur := strings.Split(current, ".")
	lat := strings.Split(latest, ".")
	for i := 0; i < len(cur) || i < len(lat); i++ {
		a, b := part(cur, i), part(lat, i)
		if a != b {
			return a < b
		}
	}
	return false
}

func part(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(parts[i])
	if err != nil {
		return 0
	}
	return n
}

// getFromCache reads the cached version info
func (c *Checker) getFromCache() (*VersionCache, error) {
	if c.CachePath == "" {
		return nil, os.ErrNotExist
	}

	data, err := os.ReadFile(c.CachePath)
	if err != nil {
		return nil, err
	}

	var cache VersionCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, err
	}

	return &cache, nil
}

// saveToCache writes version info to cache
func (c *Checker) saveToCache(latestVersion string) error {
	if c.CachePath == "" {
		return nil
	}

	cache := VersionCache{
		LatestVersion: latestVersion,
		CheckedAt:     c.now(),
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.CachePath, data, 0600)
}

// PrintVersionWithCheck prints version info and, when check is set, a notice about newer releases
func (c *Checker) PrintVersionWithCheck(ctx context.Context, w io.Writer, currentVersion string, check bool) {
	fmt.Fprintf(w, "pinctl version %s\n", currentVersion)
	if !check || c.URL == "" {
		return
	}

	isOutdated, latestVersion, err := c.CheckLatestVersion(ctx, currentVersion)
	if err != nil {
		// Network problems never interrupt version output
		return
	}

	if isOutdated {
		fmt.Fprintf(w, "\nYour version of pinctl is out of date! The latest version is %s.\n", latestVersion)
		if c.DownloadURL != "" {
			fmt.Fprintf(w, "You can update by downloading from %s\n", c.DownloadURL)
		}
	}
}
