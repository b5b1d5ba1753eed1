package analyser

import "context"

type fetchDelegate func(context.Context, string) ([]byte, error)

type mockDownloader struct {
	fetchFn fetchDelegate
}

func (m *mockDownloader) Fetch(ctx context.Context, extension string) ([]byte, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, extension)
	}

	return nil, nil
}
