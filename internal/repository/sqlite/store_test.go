package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cryptolens/cryptolens/internal/model"
	"github.com/cryptolens/cryptolens/internal/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestArticleInsertDeduplicates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	articles := store.Articles()

	article := model.Article{
		Title:       "Bitcoin hits new high",
		Source:      "CoinDesk",
		SourceURL:   "https://example.com/a",
		PublishedAt: time.Now().UTC(),
		Summary:     "Markets rally",
		Tags:        []string{"bitcoin"},
	}

	inserted, err := articles.InsertIfNew(ctx, article)
	if err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	if !inserted {
		t.Error("Expected first insert to report inserted")
	}

	// Same title+source is a duplicate even with different URL.
	article.SourceURL = "https://example.com/b"
	inserted, err = articles.InsertIfNew(ctx, article)
	if err != nil {
		t.Fatalf("Duplicate insert failed: %v", err)
	}
	if inserted {
		t.Error("Expected duplicate insert to report not inserted")
	}

	count, err := articles.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 article, got %d", count)
	}
}

func TestArticleRecentOrderedByPublishDate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	articles := store.Articles()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"oldest", "middle", "newest"} {
		_, err := articles.InsertIfNew(ctx, model.Article{
			Title:       title,
			Source:      "test",
			PublishedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	recent, err := articles.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(recent))
	}
	if recent[0].Title != "newest" || recent[1].Title != "middle" {
		t.Errorf("Expected newest-first order, got %s then %s", recent[0].Title, recent[1].Title)
	}
}

func TestArticleGetByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	articles := store.Articles()

	original := model.Article{
		Title:       "Ethereum upgrade ships",
		Source:      "test",
		PublishedAt: time.Now().UTC(),
		Tags:        []string{"ethereum", "upgrade"},
	}
	if _, err := articles.InsertIfNew(ctx, original); err != nil {
		t.Fatal(err)
	}

	recent, err := articles.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	got, err := articles.GetByID(ctx, recent[0].ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != original.Title {
		t.Errorf("Expected title %q, got %q", original.Title, got.Title)
	}
	if len(got.Tags) != 2 {
		t.Errorf("Expected 2 tags, got %v", got.Tags)
	}

	if _, err := articles.GetByID(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestProfileUpsertRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	profiles := store.Profiles()

	profile := model.UserProfile{
		ID:               "user-1",
		Email:            "trader@example.com",
		Interests:        []string{"DeFi", "Bitcoin"},
		MarketPreference: "crypto",
		Competitors:      []string{"Coinbase"},
		Professional: model.ProfessionalContext{
			Role:     "analyst",
			Industry: "fintech",
		},
	}

	if err := profiles.Upsert(ctx, profile); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := profiles.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Email != profile.Email {
		t.Errorf("Expected email %q, got %q", profile.Email, got.Email)
	}
	if len(got.Interests) != 2 || got.Interests[0] != "DeFi" {
		t.Errorf("Unexpected interests: %v", got.Interests)
	}
	if got.Professional.Role != "analyst" {
		t.Errorf("Unexpected professional context: %+v", got.Professional)
	}
	if got.OnboardingCompleted {
		t.Error("Expected onboarding not completed")
	}

	// Update overwrites wholesale.
	profile.Interests = []string{"NFT"}
	profile.OnboardingCompleted = true
	if err := profiles.Upsert(ctx, profile); err != nil {
		t.Fatal(err)
	}
	got, err = profiles.Get(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Interests) != 1 || got.Interests[0] != "NFT" {
		t.Errorf("Expected interests replaced, got %v", got.Interests)
	}
	if !got.OnboardingCompleted {
		t.Error("Expected onboarding completed after update")
	}
}

func TestProfileUpdateKeywords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	profiles := store.Profiles()

	if err := profiles.Upsert(ctx, model.UserProfile{ID: "user-1"}); err != nil {
		t.Fatal(err)
	}

	keywords := []string{"bitcoin", "blockchain", "institutions"}
	if err := profiles.UpdateKeywords(ctx, "user-1", keywords); err != nil {
		t.Fatalf("UpdateKeywords failed: %v", err)
	}

	got, err := profiles.Get(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.ExtractedKeywords) != 3 || got.ExtractedKeywords[0] != "bitcoin" {
		t.Errorf("Unexpected keywords: %v", got.ExtractedKeywords)
	}

	if err := profiles.UpdateKeywords(ctx, "missing", keywords); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestUserCreateAndLookup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	users := store.Users()

	user := model.User{ID: "user-1", Email: "Trader@Example.com", PasswordHash: "hash"}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Lookup is case-insensitive via lowercased storage.
	got, err := users.GetByEmail(ctx, "trader@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != "user-1" {
		t.Errorf("Expected user-1, got %s", got.ID)
	}

	if err := users.Create(ctx, model.User{ID: "user-2", Email: "trader@example.com", PasswordHash: "x"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate for same email, got %v", err)
	}

	if err := users.UpdatePassword(ctx, "user-1", "newhash"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	got, _ = users.GetByID(ctx, "user-1")
	if got.PasswordHash != "newhash" {
		t.Error("Expected password hash updated")
	}
}

func TestSavedArticlesLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Users().Create(ctx, model.User{ID: "user-1", Email: "a@b.c", PasswordHash: "h"}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Articles().InsertIfNew(ctx, model.Article{
		ID: "art-1", Title: "Bitcoin news", Source: "test", PublishedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatal(err)
	}

	saved := store.SavedArticles()
	record, err := saved.Save(ctx, model.SavedArticle{UserID: "user-1", ArticleID: "art-1"})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if record.ID == "" {
		t.Error("Expected generated id")
	}

	if _, err := saved.Save(ctx, model.SavedArticle{UserID: "user-1", ArticleID: "art-1"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate for double save, got %v", err)
	}

	list, err := saved.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 saved article, got %d", len(list))
	}
	if list[0].Article == nil || list[0].Article.Title != "Bitcoin news" {
		t.Error("Expected joined article on listing")
	}
	if list[0].IsRead {
		t.Error("Expected unread by default")
	}

	if err := saved.MarkRead(ctx, "user-1", record.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	list, _ = saved.ListByUser(ctx, "user-1")
	if !list[0].IsRead {
		t.Error("Expected read after MarkRead")
	}

	// Another user cannot touch the record.
	if err := saved.Delete(ctx, "user-2", record.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign user, got %v", err)
	}
	if err := saved.Delete(ctx, "user-1", record.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	list, _ = saved.ListByUser(ctx, "user-1")
	if len(list) != 0 {
		t.Errorf("Expected empty list after delete, got %d", len(list))
	}
}

func TestFolders(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	folders := store.Folders()

	created, err := folders.Create(ctx, model.Folder{UserID: "user-1", Name: "Research"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("Expected generated id")
	}

	if _, err := folders.Create(ctx, model.Folder{UserID: "user-2", Name: "Other"}); err != nil {
		t.Fatal(err)
	}

	list, err := folders.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Research" {
		t.Errorf("Unexpected folders: %+v", list)
	}
}

func TestActivityRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Activity().Record(ctx, model.Activity{
		UserID:    "user-1",
		Type:      "article_view",
		ArticleID: "art-1",
		Metadata:  map[string]string{"origin": "feed"},
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
}

func TestResetTokens(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Users().Create(ctx, model.User{ID: "user-1", Email: "a@b.c", PasswordHash: "h"}); err != nil {
		t.Fatal(err)
	}
	tokens := store.ResetTokens()

	token, err := tokens.Create(ctx, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	userID, err := tokens.Consume(ctx, token)
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("Expected user-1, got %s", userID)
	}

	// Single use.
	if _, err := tokens.Consume(ctx, token); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on reuse, got %v", err)
	}

	// Expired tokens are rejected.
	expired, err := tokens.Create(ctx, "user-1", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tokens.Consume(ctx, expired); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for expired token, got %v", err)
	}
}
