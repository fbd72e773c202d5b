package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vidshelf/backend/internal/models"
	"github.com/vidshelf/backend/internal/repositories"
	"github.com/vidshelf/backend/internal/videos"
)

type fakeCategoryRepo struct {
	categories map[string]models.Category
}

func newFakeCategoryRepo(categories ...models.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[string]models.Category)}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category models.Category) error {
	for _, existing := range r.categories {
		if strings.EqualFold(existing.Name, category.Name) {
			return repositories.ErrConflict
		}
	}
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category models.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return repositories.ErrNotFound
	}
	for id, existing := range r.categories {
		if id != category.ID && strings.EqualFold(existing.Name, category.Name) {
			return repositories.ErrConflict
		}
	}
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id string) (models.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return models.Category{}, repositories.ErrNotFound
	}
	return category, nil
}

func (r *fakeCategoryRepo) FindAll(ctx context.Context) ([]models.Category, error) {
	var all []models.Category
	for _, c := range r.categories {
		all = append(all, c)
	}
	return all, nil
}

func (r *fakeCategoryRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, ok := r.categories[id]
	return ok, nil
}

type fakeVideoRepo struct {
	videos map[string]models.Video
}

func newFakeVideoRepo(entries ...models.Video) *fakeVideoRepo {
	repo := &fakeVideoRepo{videos: make(map[string]models.Video)}
	for _, v := range entries {
		repo.videos[v.ID] = v
	}
	return repo
}

func (r *fakeVideoRepo) Create(ctx context.Context, video models.Video) error {
	r.videos[video.ID] = video
	return nil
}

func (r *fakeVideoRepo) Update(ctx context.Context, video models.Video) error {
	if _, ok := r.videos[video.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.videos[video.ID] = video
	return nil
}

func (r *fakeVideoRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.videos[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.videos, id)
	return nil
}

func (r *fakeVideoRepo) FindByID(ctx context.Context, id string) (models.Video, error) {
	video, ok := r.videos[id]
	if !ok {
		return models.Video{}, repositories.ErrNotFound
	}
	return video, nil
}

func (r *fakeVideoRepo) FindAll(ctx context.Context) ([]models.Video, error) {
	var all []models.Video
	for _, v := range r.videos {
		all = append(all, v)
	}
	return all, nil
}

func (r *fakeVideoRepo) FindByCategory(ctx context.Context, categoryID string) ([]models.Video, error) {
	var matched []models.Video
	for _, v := range r.videos {
		if v.CategoryID != nil && *v.CategoryID == categoryID {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

func (r *fakeVideoRepo) SearchByTitle(ctx context.Context, title string) ([]models.Video, error) {
	var matched []models.Video
	for _, v := range r.videos {
		if strings.Contains(strings.ToLower(v.Title), strings.ToLower(title)) {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

type providerStub struct {
	details videos.Details
	err     error
	calls   int
	lastID  string
}

func (p *providerStub) Lookup(ctx context.Context, videoID string) (videos.Details, error) {
	p.calls++
	p.lastID = videoID
	if p.err != nil {
		return videos.Details{}, p.err
	}
	return p.details, nil
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestVideoServiceCreateEnrichesBlankTitle(t *testing.T) {
	provider := &providerStub{details: videos.Details{Title: "Guard Passing 101", Description: "Fundamentals.", DurationSeconds: 253}}
	service := &VideoService{
		Videos:   newFakeVideoRepo(),
		Metadata: provider,
		NowFunc:  fixedNow,
	}

	video, err := service.Create(context.Background(), VideoInput{
		Title: "",
		URL:   "https://youtu.be/dQw4w9WgXcQ",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if video.Title != "Guard Passing 101" {
		t.Fatalf("expected enriched title, got %q", video.Title)
	}
	if video.Description == nil || *video.Description != "Fundamentals." {
		t.Fatalf("expected enriched description, got %v", video.Description)
	}
	if video.DurationSeconds == nil || *video.DurationSeconds != 253 {
		t.Fatalf("expected enriched duration, got %v", video.DurationSeconds)
	}
	if video.VideoType != models.VideoTypeYouTube {
		t.Fatalf("expected YOUTUBE, got %s", video.VideoType)
	}
	if video.VideoID == nil || *video.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected provider video id: %v", video.VideoID)
	}
	if provider.lastID != "dQw4w9WgXcQ" {
		t.Fatalf("provider called with %q", provider.lastID)
	}
	if !video.CreatedAt.Equal(fixedNow()) || !video.UpdatedAt.Equal(fixedNow()) {
		t.Fatalf("unexpected timestamps: %v / %v", video.CreatedAt, video.UpdatedAt)
	}
}

func TestVideoServiceCreateNeverOverridesSuppliedFields(t *testing.T) {
	provider := &providerStub{details: videos.Details{Title: "Provider Title", Description: "Provider Desc", DurationSeconds: 100}}
	service := &VideoService{Videos: newFakeVideoRepo(), Metadata: provider, NowFunc: fixedNow}

	video, err := service.Create(context.Background(), VideoInput{
		Title:           "My Video",
		Description:     strPtr("My Description"),
		URL:             "https://youtu.be/dQw4w9WgXcQ",
		DurationSeconds: intPtr(42),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if video.Title != "My Video" {
		t.Fatalf("supplied title was overridden: %q", video.Title)
	}
	if *video.Description != "My Description" {
		t.Fatalf("supplied description was overridden: %q", *video.Description)
	}
	if *video.DurationSeconds != 42 {
		t.Fatalf("supplied duration was overridden: %d", *video.DurationSeconds)
	}
}

func TestVideoServiceCreateEnrichmentFailureDegrades(t *testing.T) {
	provider := &providerStub{err: videos.ErrNoResult}
	service := &VideoService{Videos: newFakeVideoRepo(), Metadata: provider, NowFunc: fixedNow}

	video, err := service.Create(context.Background(), VideoInput{
		Title: "",
		URL:   "https://youtu.be/dQw4w9WgXcQ",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if video.Title != "" {
		t.Fatalf("expected blank title to remain, got %q", video.Title)
	}
	if video.Description != nil || video.DurationSeconds != nil {
		t.Fatalf("expected no enrichment, got %+v", video)
	}
	if video.VideoType != models.VideoTypeYouTube || video.VideoID == nil {
		t.Fatalf("classification must still apply: %s %v", video.VideoType, video.VideoID)
	}
}

func TestVideoServiceCreateSkipsProviderForUnknownURL(t *testing.T) {
	provider := &providerStub{details: videos.Details{Title: "Never"}}
	service := &VideoService{Videos: newFakeVideoRepo(), Metadata: provider, NowFunc: fixedNow}

	video, err := service.Create(context.Background(), VideoInput{
		Title: "Plain",
		URL:   "https://example.com/videos/7",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if provider.calls != 0 {
		t.Fatalf("expected no provider call, got %d", provider.calls)
	}
	if video.VideoType != models.VideoTypeOther || video.VideoID != nil {
		t.Fatalf("unexpected classification: %s %v", video.VideoType, video.VideoID)
	}
}

func TestVideoServiceCreateMissingCategory(t *testing.T) {
	service := &VideoService{
		Videos:     newFakeVideoRepo(),
		Categories: newFakeCategoryRepo(),
		NowFunc:    fixedNow,
	}

	_, err := service.Create(context.Background(), VideoInput{
		Title:      "Orphan",
		URL:        "https://example.com/v/1",
		CategoryID: strPtr("missing-id"),
	})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVideoServiceCreateAttachesCategory(t *testing.T) {
	category := models.Category{ID: "cat-1", Name: "Guard"}
	service := &VideoService{
		Videos:     newFakeVideoRepo(),
		Categories: newFakeCategoryRepo(category),
		NowFunc:    fixedNow,
	}

	video, err := service.Create(context.Background(), VideoInput{
		Title:      "Armbar Setup",
		URL:        "https://example.com/v/1",
		CategoryID: strPtr("cat-1"),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if video.CategoryID == nil || *video.CategoryID != "cat-1" {
		t.Fatalf("unexpected category id: %v", video.CategoryID)
	}
	if video.CategoryName == nil || *video.CategoryName != "Guard" {
		t.Fatalf("unexpected category name: %v", video.CategoryName)
	}
}

func TestVideoServiceUpdateReclassifiesOnURLChange(t *testing.T) {
	existing := models.Video{
		ID:        "vid-1",
		Title:     "Some Clip",
		URL:       "https://example.com/old",
		VideoType: models.VideoTypeOther,
		CreatedAt: fixedNow().Add(-time.Hour),
		UpdatedAt: fixedNow().Add(-time.Hour),
	}
	provider := &providerStub{err: videos.ErrNoResult}
	service := &VideoService{Videos: newFakeVideoRepo(existing), Metadata: provider, NowFunc: fixedNow}

	updated, err := service.Update(context.Background(), "vid-1", VideoPatch{
		URL: strPtr("https://youtu.be/dQw4w9WgXcQ"),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.VideoType != models.VideoTypeYouTube {
		t.Fatalf("expected YOUTUBE, got %s", updated.VideoType)
	}
	if updated.VideoID == nil || *updated.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected provider video id: %v", updated.VideoID)
	}
	if provider.calls != 1 {
		t.Fatalf("expected one enrichment attempt, got %d", provider.calls)
	}
}

func TestVideoServiceUpdateSkipsEnrichmentWhenURLUnchanged(t *testing.T) {
	existing := models.Video{
		ID:        "vid-1",
		Title:     "",
		URL:       "https://youtu.be/dQw4w9WgXcQ",
		VideoType: models.VideoTypeYouTube,
		VideoID:   strPtr("dQw4w9WgXcQ"),
		CreatedAt: fixedNow().Add(-time.Hour),
		UpdatedAt: fixedNow().Add(-time.Hour),
	}
	provider := &providerStub{details: videos.Details{Title: "Should Not Appear"}}
	service := &VideoService{Videos: newFakeVideoRepo(existing), Metadata: provider, NowFunc: fixedNow}

	updated, err := service.Update(context.Background(), "vid-1", VideoPatch{
		URL: strPtr("https://youtu.be/dQw4w9WgXcQ"),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if provider.calls != 0 {
		t.Fatalf("expected no enrichment for unchanged url, got %d calls", provider.calls)
	}
	if updated.Title != "" {
		t.Fatalf("title should stay blank, got %q", updated.Title)
	}
}

func TestVideoServiceUpdatePartialDescriptionOnly(t *testing.T) {
	createdAt := fixedNow().Add(-24 * time.Hour)
	existing := models.Video{
		ID:              "vid-1",
		Title:           "Original Title",
		URL:             "https://youtu.be/dQw4w9WgXcQ",
		DurationSeconds: intPtr(300),
		VideoType:       models.VideoTypeYouTube,
		VideoID:         strPtr("dQw4w9WgXcQ"),
		CategoryID:      strPtr("cat-1"),
		CategoryName:    strPtr("Guard"),
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	provider := &providerStub{}
	service := &VideoService{Videos: newFakeVideoRepo(existing), Metadata: provider, NowFunc: fixedNow}

	updated, err := service.Update(context.Background(), "vid-1", VideoPatch{
		Description: strPtr("Fresh notes"),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if *updated.Description != "Fresh notes" {
		t.Fatalf("unexpected description: %v", updated.Description)
	}
	if updated.Title != existing.Title || updated.URL != existing.URL {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}
	if *updated.DurationSeconds != 300 {
		t.Fatalf("duration changed: %v", updated.DurationSeconds)
	}
	if updated.CategoryID == nil || *updated.CategoryID != "cat-1" {
		t.Fatalf("category changed: %v", updated.CategoryID)
	}
	if !updated.CreatedAt.Equal(createdAt) {
		t.Fatalf("createdAt must be immutable, got %v", updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(createdAt) {
		t.Fatalf("updatedAt must advance, got %v", updated.UpdatedAt)
	}
	if provider.calls != 0 {
		t.Fatalf("no enrichment expected, got %d calls", provider.calls)
	}
}

func TestVideoServiceUpdateEnrichmentFillsOnlyBlankFields(t *testing.T) {
	existing := models.Video{
		ID:        "vid-1",
		Title:     "",
		URL:       "https://example.com/old",
		VideoType: models.VideoTypeOther,
		CreatedAt: fixedNow().Add(-time.Hour),
		UpdatedAt: fixedNow().Add(-time.Hour),
	}
	provider := &providerStub{details: videos.Details{Title: "Provider Title", Description: "Provider Desc", DurationSeconds: 99}}
	service := &VideoService{Videos: newFakeVideoRepo(existing), Metadata: provider, NowFunc: fixedNow}

	updated, err := service.Update(context.Background(), "vid-1", VideoPatch{
		URL: strPtr("https://youtu.be/dQw4w9WgXcQ"),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Title != "Provider Title" {
		t.Fatalf("blank title should be enriched, got %q", updated.Title)
	}
	if updated.Description == nil || *updated.Description != "Provider Desc" {
		t.Fatalf("nil description should be enriched, got %v", updated.Description)
	}
	if updated.DurationSeconds == nil || *updated.DurationSeconds != 99 {
		t.Fatalf("nil duration should be enriched, got %v", updated.DurationSeconds)
	}
}

func TestVideoServiceUpdateSuppliedFieldsBeatEnrichment(t *testing.T) {
	existing := models.Video{
		ID:        "vid-1",
		Title:     "Kept Title",
		URL:       "https://example.com/old",
		CreatedAt: fixedNow().Add(-time.Hour),
		UpdatedAt: fixedNow().Add(-time.Hour),
	}
	provider := &providerStub{details: videos.Details{Title: "Provider Title", Description: "Provider Desc", DurationSeconds: 99}}
	service := &VideoService{Videos: newFakeVideoRepo(existing), Metadata: provider, NowFunc: fixedNow}

	updated, err := service.Update(context.Background(), "vid-1", VideoPatch{
		URL:             strPtr("https://youtu.be/dQw4w9WgXcQ"),
		Title:           strPtr("New Title"),
		DurationSeconds: intPtr(500),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Title != "New Title" {
		t.Fatalf("supplied title must win, got %q", updated.Title)
	}
	if *updated.DurationSeconds != 500 {
		t.Fatalf("supplied duration must win, got %d", *updated.DurationSeconds)
	}
	// Title was non-blank before enrichment resolution, but a supplied value
	// was present anyway; only the nil description may be enriched.
	if updated.Description == nil || *updated.Description != "Provider Desc" {
		t.Fatalf("description should be enriched, got %v", updated.Description)
	}
}

func TestVideoServiceUpdateClearsCategory(t *testing.T) {
	existing := models.Video{
		ID:           "vid-1",
		Title:        "Clip",
		URL:          "https://example.com/v/1",
		CategoryID:   strPtr("cat-1"),
		CategoryName: strPtr("Guard"),
		CreatedAt:    fixedNow().Add(-time.Hour),
		UpdatedAt:    fixedNow().Add(-time.Hour),
	}
	service := &VideoService{
		Videos:     newFakeVideoRepo(existing),
		Categories: newFakeCategoryRepo(models.Category{ID: "cat-1", Name: "Guard"}),
		NowFunc:    fixedNow,
	}

	updated, err := service.Update(context.Background(), "vid-1", VideoPatch{
		CategoryID: strPtr(""),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.CategoryID != nil || updated.CategoryName != nil {
		t.Fatalf("category should be cleared, got %v/%v", updated.CategoryID, updated.CategoryName)
	}
}

func TestVideoServiceUpdateMissingCategory(t *testing.T) {
	existing := models.Video{ID: "vid-1", Title: "Clip", URL: "https://example.com/v/1"}
	service := &VideoService{
		Videos:     newFakeVideoRepo(existing),
		Categories: newFakeCategoryRepo(),
		NowFunc:    fixedNow,
	}

	_, err := service.Update(context.Background(), "vid-1", VideoPatch{CategoryID: strPtr("missing")})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVideoServiceUpdateMissingVideo(t *testing.T) {
	service := &VideoService{Videos: newFakeVideoRepo(), NowFunc: fixedNow}

	_, err := service.Update(context.Background(), "missing", VideoPatch{Title: strPtr("x")})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVideoServiceListByCategoryMissing(t *testing.T) {
	service := &VideoService{
		Videos:     newFakeVideoRepo(),
		Categories: newFakeCategoryRepo(),
	}

	_, err := service.ListByCategory(context.Background(), "missing")
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVideoServiceListByCategory(t *testing.T) {
	category := models.Category{ID: "cat-1", Name: "Guard"}
	inCategory := models.Video{ID: "vid-1", Title: "A", URL: "u", CategoryID: strPtr("cat-1")}
	other := models.Video{ID: "vid-2", Title: "B", URL: "u"}
	service := &VideoService{
		Videos:     newFakeVideoRepo(inCategory, other),
		Categories: newFakeCategoryRepo(category),
	}

	listed, err := service.ListByCategory(context.Background(), "cat-1")
	if err != nil {
		t.Fatalf("ListByCategory() error = %v", err)
	}
	if len(listed) != 1 || listed[0].ID != "vid-1" {
		t.Fatalf("unexpected listing: %+v", listed)
	}
}

func TestVideoServiceDeleteMissing(t *testing.T) {
	service := &VideoService{Videos: newFakeVideoRepo()}
	if err := service.Delete(context.Background(), "missing"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
