// Package source fetches raw proposal records from the GitHub REST API.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/grantscope/grantscope/core/coerce"
	"github.com/grantscope/grantscope/internal/contract"
	"github.com/grantscope/grantscope/schema"
)

const (
	perPage          = 100
	maxPages         = 50
	requestTimeout   = 30 * time.Second
	rateLimitWarnAt  = 20
	userAgentHeader  = "grantscope"
	acceptHeader     = "application/vnd.github+json"
	apiVersionHeader = "2022-11-28"
)

// GitHubSource lists a program's pull requests and enriches each with the
// detail, comment and review payloads the normalizer's heuristics read.
// Missing enrichment degrades to a warning; the listing itself is the only
// hard failure.
type GitHubSource struct {
	client  *http.Client
	baseURL string
	token   string
	workers int
}

var _ contract.ProposalSource = (*GitHubSource)(nil) // Compile-time check

// NewGitHubSource builds a source from the validated configuration.
func NewGitHubSource(cfg *contract.Config) *GitHubSource {
	return &GitHubSource{
		client:  &http.Client{Timeout: requestTimeout},
		baseURL: cfg.APIBaseURL,
		token:   cfg.GitHubToken,
		workers: cfg.Workers,
	}
}

// FetchProgram returns every pull request of the program's repository as a
// raw record, newest first, with comments and reviews attached.
func (s *GitHubSource) FetchProgram(ctx context.Context, program contract.Program) ([]schema.RawProposal, error) {
	pulls, err := s.listPulls(ctx, program)
	if err != nil {
		return nil, fmt.Errorf("failed to list pulls for %s/%s: %w", program.Owner, program.Repo, err)
	}

	s.enrichAll(ctx, program, pulls)
	return pulls, nil
}

// listPulls pages through the pulls endpoint until a short page or the page
// cap. state=all so closed and merged history is included.
func (s *GitHubSource) listPulls(ctx context.Context, program contract.Program) ([]schema.RawProposal, error) {
	var pulls []schema.RawProposal

	for page := 1; page <= maxPages; page++ {
		url := fmt.Sprintf("%s/repos/%s/%s/pulls?state=all&per_page=%d&page=%d",
			s.baseURL, program.Owner, program.Repo, perPage, page)

		var batch []schema.RawProposal
		if err := s.getJSON(ctx, url, &batch); err != nil {
			return nil, err
		}

		pulls = append(pulls, batch...)
		if len(batch) < perPage {
			break
		}
	}

	return pulls, nil
}

// enrichAll runs the per-pull detail, comment and review fetches through a
// worker pool. Each worker mutates only its own record.
func (s *GitHubSource) enrichAll(ctx context.Context, program contract.Program, pulls []schema.RawProposal) {
	jobCh := make(chan int, len(pulls))
	var wg sync.WaitGroup

	workers := s.workers
	if workers <= 0 {
		workers = 1
	}
	for range workers {
		wg.Go(func() {
			for i := range jobCh {
				s.enrich(ctx, program, pulls[i])
			}
		})
	}

	for i := range pulls {
		jobCh <- i
	}
	close(jobCh)
	wg.Wait()
}

// enrich merges the detail payload into the raw record and attaches the
// comment and review collections. The list endpoint omits commit and churn
// counters; only the detail endpoint carries them.
func (s *GitHubSource) enrich(ctx context.Context, program contract.Program, raw schema.RawProposal) {
	number := coerce.ToInt(raw.Get("number"))
	if number <= 0 {
		return
	}

	detailURL := fmt.Sprintf("%s/repos/%s/%s/pulls/%d", s.baseURL, program.Owner, program.Repo, number)
	var detail map[string]any
	if err := s.getJSON(ctx, detailURL, &detail); err != nil {
		contract.LogWarn(fmt.Sprintf("detail fetch for %s#%d", program.Key, number), err)
	} else {
		for key, value := range detail {
			raw[key] = value
		}
	}

	commentsURL := fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments?per_page=%d", s.baseURL, program.Owner, program.Repo, number, perPage)
	var comments []any
	if err := s.getJSON(ctx, commentsURL, &comments); err != nil {
		contract.LogWarn(fmt.Sprintf("comment fetch for %s#%d", program.Key, number), err)
	} else {
		sortByCreated(comments)
		raw["comments"] = comments
	}

	reviewsURL := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/reviews?per_page=%d", s.baseURL, program.Owner, program.Repo, number, perPage)
	var reviews []any
	if err := s.getJSON(ctx, reviewsURL, &reviews); err != nil {
		contract.LogWarn(fmt.Sprintf("review fetch for %s#%d", program.Key, number), err)
	} else {
		raw["reviews"] = reviews
	}
}

// getJSON performs one authenticated GET and decodes the body into out.
func (s *GitHubSource) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgentHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersionHeader)
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	warnOnLowRateLimit(resp)

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("rate limited by GitHub (HTTP %d); set a token or retry later", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected HTTP status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// warnOnLowRateLimit surfaces the remaining quota before requests start
// failing outright.
func warnOnLowRateLimit(resp *http.Response) {
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return
	}
	n, err := strconv.Atoi(remaining)
	if err != nil || n > rateLimitWarnAt {
		return
	}
	contract.LogWarn("GitHub rate limit nearly exhausted", fmt.Errorf("%d requests remaining", n))
}

// sortByCreated orders comment objects oldest first so downstream scans see
// a stable close-adjacent ordering.
func sortByCreated(entries []any) {
	sort.SliceStable(entries, func(i, j int) bool {
		mi, _ := entries[i].(map[string]any)
		mj, _ := entries[j].(map[string]any)
		ti, iok := coerce.ToTime(mi["created_at"])
		tj, jok := coerce.ToTime(mj["created_at"])
		if !iok || !jok {
			return false
		}
		return ti.Before(tj)
	})
}
