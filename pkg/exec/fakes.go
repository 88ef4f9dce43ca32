package exec

import "context"

// FakeExecutor implements Executor with injectable behaviour for tests.
type FakeExecutor struct {
	MockPostfixStatus func(ctx context.Context) (Result, error)
	MockPostfixStart  func(ctx context.Context) (Result, error)
	MockPostfixReload func(ctx context.Context) (Result, error)
	MockPostfixCheck  func(ctx context.Context) (Result, error)
	MockListQueue     func(ctx context.Context) (Result, error)
}

func (e FakeExecutor) PostfixStatus(ctx context.Context) (Result, error) {
	return e.MockPostfixStatus(ctx)
}

func (e FakeExecutor) PostfixStart(ctx context.Context) (Result, error) {
	return e.MockPostfixStart(ctx)
}

func (e FakeExecutor) PostfixReload(ctx context.Context) (Result, error) {
	return e.MockPostfixReload(ctx)
}

func (e FakeExecutor) PostfixCheck(ctx context.Context) (Result, error) {
	return e.MockPostfixCheck(ctx)
}

func (e FakeExecutor) ListQueue(ctx context.Context) (Result, error) {
	return e.MockListQueue(ctx)
}
