package sync_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hood-sync/feature/feed"
	"hood-sync/feature/hood"
	"hood-sync/feature/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClient records every marketplace call in order and serves canned
// existence answers and per-article errors.
type fakeClient struct {
	existing    map[string]bool
	checkFailed map[string]bool
	insertErr   map[string]error
	updateErr   map[string]error
	calls       []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		existing:    map[string]bool{},
		checkFailed: map[string]bool{},
		insertErr:   map[string]error{},
		updateErr:   map[string]error{},
	}
}

func (f *fakeClient) ItemExists(_ context.Context, articleID string) hood.Existence {
	f.calls = append(f.calls, "detail:"+articleID)
	if f.checkFailed[articleID] {
		return hood.CheckFailed
	}
	if f.existing[articleID] {
		return hood.Found
	}
	return hood.NotFound
}

func (f *fakeClient) Insert(_ context.Context, p *feed.Product) error {
	f.calls = append(f.calls, "insert:"+p.ArticleID)
	return f.insertErr[p.ArticleID]
}

func (f *fakeClient) Update(_ context.Context, p *feed.Product) error {
	f.calls = append(f.calls, "update:"+p.ArticleID)
	return f.updateErr[p.ArticleID]
}

func rowsFrom(t *testing.T, csvText string) *feed.Rows {
	t.Helper()
	rows, err := feed.NewRows(strings.NewReader(csvText), ';')
	require.NoError(t, err)
	return rows
}

const feedHeader = "mpnr;name;price;stock;description\n"

func TestRunner_InsertsNewArticles(t *testing.T) {
	client := newFakeClient()
	runner := sync.NewRunner(client, zap.NewNop(), false)

	rows := rowsFrom(t, feedHeader+
		"1001;Chair;29,90;10;A chair\n"+
		"1002;Table;99,00;5;A table\n")

	stats := runner.Run(context.Background(), rows)

	assert.Equal(t, sync.Stats{Inserted: 2}, stats)
	assert.Equal(t, []string{
		"detail:1001", "insert:1001",
		"detail:1002", "insert:1002",
	}, client.calls)
}

func TestRunner_UpdatesExistingArticles(t *testing.T) {
	client := newFakeClient()
	client.existing["1001"] = true
	runner := sync.NewRunner(client, zap.NewNop(), false)

	rows := rowsFrom(t, feedHeader+
		"1001;Chair;29,90;10;A chair\n"+
		"1002;Table;99,00;5;A table\n")

	stats := runner.Run(context.Background(), rows)

	assert.Equal(t, sync.Stats{Inserted: 1, Updated: 1}, stats)
	assert.Equal(t, []string{
		"detail:1001", "update:1001",
		"detail:1002", "insert:1002",
	}, client.calls)
}

func TestRunner_SkipsUnusableRowsWithoutNetworkCalls(t *testing.T) {
	client := newFakeClient()
	runner := sync.NewRunner(client, zap.NewNop(), false)

	// Middle row has no name, last row has no article ID. Neither may reach
	// the marketplace, and neither may stop the surrounding rows.
	rows := rowsFrom(t, feedHeader+
		"1001;Chair;29,90;10;A chair\n"+
		"1002;;99,00;5;No name here\n"+
		";Ghost;1,00;1;No article ID\n"+
		"1003;Lamp;19,90;3;A lamp\n")

	stats := runner.Run(context.Background(), rows)

	assert.Equal(t, sync.Stats{Inserted: 2, Skipped: 2}, stats)
	assert.Equal(t, []string{
		"detail:1001", "insert:1001",
		"detail:1003", "insert:1003",
	}, client.calls)
}

func TestRunner_CheckFailureFallsBackToInsert(t *testing.T) {
	client := newFakeClient()
	client.checkFailed["1001"] = true
	runner := sync.NewRunner(client, zap.NewNop(), false)

	rows := rowsFrom(t, feedHeader+"1001;Chair;29,90;10;A chair\n")

	stats := runner.Run(context.Background(), rows)

	assert.Equal(t, sync.Stats{Inserted: 1}, stats)
	assert.Equal(t, []string{"detail:1001", "insert:1001"}, client.calls)
}

func TestRunner_RowErrorsAreIsolated(t *testing.T) {
	client := newFakeClient()
	client.existing["1002"] = true
	client.insertErr["1001"] = errors.New("category rejected")
	client.updateErr["1002"] = errors.New("quota exceeded")
	runner := sync.NewRunner(client, zap.NewNop(), false)

	rows := rowsFrom(t, feedHeader+
		"1001;Chair;29,90;10;A chair\n"+
		"1002;Table;99,00;5;A table\n"+
		"1003;Lamp;19,90;3;A lamp\n")

	stats := runner.Run(context.Background(), rows)

	assert.Equal(t, 1, stats.Inserted)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, 2, stats.Errors)
	require.Len(t, stats.ErrorSamples, 2)
	assert.Contains(t, stats.ErrorSamples[0], "category rejected")
	assert.Contains(t, stats.ErrorSamples[1], "quota exceeded")

	// The failing rows still made their calls, and 1003 ran after them.
	assert.Equal(t, []string{
		"detail:1001", "insert:1001",
		"detail:1002", "update:1002",
		"detail:1003", "insert:1003",
	}, client.calls)
}

func TestRunner_ErrorSamplesAreBounded(t *testing.T) {
	client := newFakeClient()
	runner := sync.NewRunner(client, zap.NewNop(), false)

	var b strings.Builder
	b.WriteString(feedHeader)
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		client.insertErr[id] = errors.New("rejected " + id)
		b.WriteString(id + ";Thing;1,00;1;x\n")
	}

	stats := runner.Run(context.Background(), rowsFrom(t, b.String()))

	assert.Equal(t, 7, stats.Errors)
	assert.Len(t, stats.ErrorSamples, 5)
}

func TestRunner_DryRunMakesNoCalls(t *testing.T) {
	client := newFakeClient()
	runner := sync.NewRunner(client, zap.NewNop(), true)

	rows := rowsFrom(t, feedHeader+
		"1001;Chair;29,90;10;A chair\n"+
		"1002;;99,00;5;skipped\n")

	stats := runner.Run(context.Background(), rows)

	assert.Empty(t, client.calls)
	assert.Equal(t, sync.Stats{Skipped: 1}, stats)
}
