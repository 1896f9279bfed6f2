package usecase

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ArnW0lf/ParaJose/domain/model"
)

// In-memory collaborators shared by the usecase tests.

type fakeTextModel struct {
	out   string
	err   error
	calls int
}

func (f *fakeTextModel) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.out, f.err
}

type fakeImageGenerator struct {
	err   error
	calls []string
}

func (f *fakeImageGenerator) GenerateImage(_ context.Context, prompt string, width, height int) (string, error) {
	f.calls = append(f.calls, prompt)
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("https://img.example/%dx%d/%s", width, height, prompt), nil
}

type fakeVideoSearcher struct {
	url   string
	err   error
	calls []string
}

func (f *fakeVideoSearcher) SearchVideo(_ context.Context, keywords, _ string) (string, error) {
	f.calls = append(f.calls, keywords)
	return f.url, f.err
}

type memPostRepo struct {
	posts  []*model.Post
	nextID int64
}

func (m *memPostRepo) Create(_ context.Context, post *model.Post) error {
	m.nextID++
	post.ID = m.nextID
	m.posts = append(m.posts, post)
	return nil
}

func (m *memPostRepo) GetByID(_ context.Context, id int64) (*model.Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memPostRepo) List(_ context.Context) ([]*model.Post, error) { return m.posts, nil }

func (m *memPostRepo) Delete(_ context.Context, id int64) error {
	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type memPublicationRepo struct {
	pubs   []*model.Publication
	nextID int64
}

func (m *memPublicationRepo) Create(_ context.Context, pub *model.Publication) error {
	m.nextID++
	pub.ID = m.nextID
	if pub.State == "" {
		pub.State = model.StateDraft
	}
	m.pubs = append(m.pubs, pub)
	return nil
}

func (m *memPublicationRepo) GetByID(_ context.Context, id int64) (*model.Publication, error) {
	for _, p := range m.pubs {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memPublicationRepo) ListByPostID(_ context.Context, postID int64) ([]*model.Publication, error) {
	var out []*model.Publication
	for _, p := range m.pubs {
		if p.PostID == postID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPublicationRepo) IncrementRetryCount(_ context.Context, id int64) (int, error) {
	for _, p := range m.pubs {
		if p.ID == id {
			p.RetryCount++
			return p.RetryCount, nil
		}
	}
	return 0, sql.ErrNoRows
}

func (m *memPublicationRepo) UpdatePublishResult(_ context.Context, pub *model.Publication) error {
	for i, p := range m.pubs {
		if p.ID == pub.ID {
			m.pubs[i] = pub
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakePublisher struct {
	platform model.Platform
	result   model.PublishResult
	calls    []model.PublishRequest
}

func (f *fakePublisher) Platform() model.Platform { return f.platform }

func (f *fakePublisher) Publish(_ context.Context, req model.PublishRequest) model.PublishResult {
	f.calls = append(f.calls, req)
	result := f.result
	result.Platform = f.platform
	return result
}

type recordingNotifier struct {
	successes []model.Platform
	errs      []string
	manuals   []model.Platform
}

func (r *recordingNotifier) NotifySuccess(_ context.Context, platform model.Platform, _ int64, _ string) {
	r.successes = append(r.successes, platform)
}

func (r *recordingNotifier) NotifyError(_ context.Context, platform model.Platform, _ int64, detail string) {
	r.errs = append(r.errs, detail)
}

func (r *recordingNotifier) NotifyManualAction(_ context.Context, platform model.Platform, _ int64) {
	r.manuals = append(r.manuals, platform)
}
