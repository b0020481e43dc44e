package crawler

import (
	"os"
	"testing"
)

// LoadGoldenFile loads a golden file from disk and returns its contents as a string.
// The filename should be relative to the test's working directory (typically the package directory).
func LoadGoldenFile(t *testing.T, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v", filename, err)
	}
	return string(data)
}

// RunCrawl executes a crawler and collects all results into a slice.
func RunCrawl(t *testing.T, crawler AccountCrawler) []AccountHistory {
	t.Helper()
	resultChan := make(chan AccountHistory, 10000)
	crawler.Crawl(t.Context(), resultChan)
	close(resultChan)

	results := make([]AccountHistory, 0, len(resultChan))
	for h := range resultChan {
		results = append(results, h)
	}
	return results
}

// AssertAccount checks that all results belong to the expected account.
func AssertAccount(t *testing.T, results []AccountHistory, wantAccount string) {
	t.Helper()
	for _, r := range results {
		if r.Account != wantAccount {
			t.Errorf("Account = %q, want %q", r.Account, wantAccount)
		}
	}
}
