package updater

import (
	"context"
	"time"

	"github.com/relayops/mailwatch/pkg/models"
)

type FakeFeed struct {
	MockFetchChanged func(ctx context.Context, lastHash string) (*models.FeedDocument, error)
}

func (f FakeFeed) FetchChanged(ctx context.Context, lastHash string) (*models.FeedDocument, error) {
	return f.MockFetchChanged(ctx, lastHash)
}

type FakeWhitelist struct {
	MockWrite func(ranges []string, now time.Time) error
}

func (f FakeWhitelist) Write(ranges []string, now time.Time) error {
	return f.MockWrite(ranges, now)
}

type FakeStateStore struct {
	MockLoad func() (models.State, error)
	MockSave func(state models.State) error
}

func (f FakeStateStore) Load() (models.State, error) {
	return f.MockLoad()
}

func (f FakeStateStore) Save(state models.State) error {
	return f.MockSave(state)
}

type FakeReloader struct {
	MockReload func(ctx context.Context) bool
}

func (f FakeReloader) Reload(ctx context.Context) bool {
	return f.MockReload(ctx)
}
