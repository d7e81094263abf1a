// Package mocks provides hand-written test doubles for the repository and
// source interfaces. Each mock uses optional function fields; unset fields
// fall back to benign defaults.
package mocks

import (
	"context"
	"time"

	"github.com/cryptolens/cryptolens/internal/model"
	"github.com/cryptolens/cryptolens/internal/repository"
)

// MockArticleRepo implements repository.ArticleRepository.
type MockArticleRepo struct {
	InsertIfNewFunc func(ctx context.Context, article model.Article) (bool, error)
	RecentFunc      func(ctx context.Context, limit int) ([]model.Article, error)
	GetByIDFunc     func(ctx context.Context, id string) (*model.Article, error)
	CountFunc       func(ctx context.Context) (int, error)

	Inserted []model.Article
}

func (m *MockArticleRepo) InsertIfNew(ctx context.Context, article model.Article) (bool, error) {
	if m.InsertIfNewFunc != nil {
		return m.InsertIfNewFunc(ctx, article)
	}
	for _, existing := range m.Inserted {
		if existing.Title == article.Title && existing.Source == article.Source {
			return false, nil
		}
	}
	m.Inserted = append(m.Inserted, article)
	return true, nil
}

func (m *MockArticleRepo) Recent(ctx context.Context, limit int) ([]model.Article, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, limit)
	}
	if limit > 0 && len(m.Inserted) > limit {
		return m.Inserted[:limit], nil
	}
	return m.Inserted, nil
}

func (m *MockArticleRepo) GetByID(ctx context.Context, id string) (*model.Article, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	for i := range m.Inserted {
		if m.Inserted[i].ID == id {
			return &m.Inserted[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockArticleRepo) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return len(m.Inserted), nil
}

// MockProfileRepo implements repository.ProfileRepository.
type MockProfileRepo struct {
	GetFunc            func(ctx context.Context, userID string) (*model.UserProfile, error)
	UpsertFunc         func(ctx context.Context, profile model.UserProfile) error
	UpdateKeywordsFunc func(ctx context.Context, userID string, keywords []string) error

	Profiles map[string]model.UserProfile
}

func (m *MockProfileRepo) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	if profile, ok := m.Profiles[userID]; ok {
		return &profile, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockProfileRepo) Upsert(ctx context.Context, profile model.UserProfile) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, profile)
	}
	if m.Profiles == nil {
		m.Profiles = make(map[string]model.UserProfile)
	}
	m.Profiles[profile.ID] = profile
	return nil
}

func (m *MockProfileRepo) UpdateKeywords(ctx context.Context, userID string, keywords []string) error {
	if m.UpdateKeywordsFunc != nil {
		return m.UpdateKeywordsFunc(ctx, userID, keywords)
	}
	profile, ok := m.Profiles[userID]
	if !ok {
		return repository.ErrNotFound
	}
	profile.ExtractedKeywords = keywords
	m.Profiles[userID] = profile
	return nil
}

// MockUserRepo implements repository.UserRepository.
type MockUserRepo struct {
	CreateFunc         func(ctx context.Context, user model.User) error
	GetByEmailFunc     func(ctx context.Context, email string) (*model.User, error)
	GetByIDFunc        func(ctx context.Context, id string) (*model.User, error)
	UpdatePasswordFunc func(ctx context.Context, id, passwordHash string) error

	Users map[string]model.User
}

func (m *MockUserRepo) Create(ctx context.Context, user model.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	if m.Users == nil {
		m.Users = make(map[string]model.User)
	}
	for _, existing := range m.Users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	for _, user := range m.Users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	if user, ok := m.Users[id]; ok {
		return &user, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	user, ok := m.Users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = passwordHash
	m.Users[id] = user
	return nil
}

// MockSavedRepo implements repository.SavedArticleRepository.
type MockSavedRepo struct {
	SaveFunc       func(ctx context.Context, saved model.SavedArticle) (*model.SavedArticle, error)
	ListByUserFunc func(ctx context.Context, userID string) ([]model.SavedArticle, error)
	MarkReadFunc   func(ctx context.Context, userID, savedID string) error
	DeleteFunc     func(ctx context.Context, userID, savedID string) error

	Saved []model.SavedArticle
}

func (m *MockSavedRepo) Save(ctx context.Context, saved model.SavedArticle) (*model.SavedArticle, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, saved)
	}
	for _, existing := range m.Saved {
		if existing.UserID == saved.UserID && existing.ArticleID == saved.ArticleID {
			return nil, repository.ErrDuplicate
		}
	}
	if saved.ID == "" {
		saved.ID = "saved-" + saved.ArticleID
	}
	m.Saved = append(m.Saved, saved)
	return &saved, nil
}

func (m *MockSavedRepo) ListByUser(ctx context.Context, userID string) ([]model.SavedArticle, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	var out []model.SavedArticle
	for _, saved := range m.Saved {
		if saved.UserID == userID {
			out = append(out, saved)
		}
	}
	return out, nil
}

func (m *MockSavedRepo) MarkRead(ctx context.Context, userID, savedID string) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, userID, savedID)
	}
	for i, saved := range m.Saved {
		if saved.ID == savedID && saved.UserID == userID {
			m.Saved[i].IsRead = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *MockSavedRepo) Delete(ctx context.Context, userID, savedID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, savedID)
	}
	for i, saved := range m.Saved {
		if saved.ID == savedID && saved.UserID == userID {
			m.Saved = append(m.Saved[:i], m.Saved[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// MockFolderRepo implements repository.FolderRepository.
type MockFolderRepo struct {
	CreateFunc     func(ctx context.Context, folder model.Folder) (*model.Folder, error)
	ListByUserFunc func(ctx context.Context, userID string) ([]model.Folder, error)

	Folders []model.Folder
}

func (m *MockFolderRepo) Create(ctx context.Context, folder model.Folder) (*model.Folder, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, folder)
	}
	if folder.ID == "" {
		folder.ID = "folder-" + folder.Name
	}
	m.Folders = append(m.Folders, folder)
	return &folder, nil
}

func (m *MockFolderRepo) ListByUser(ctx context.Context, userID string) ([]model.Folder, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	var out []model.Folder
	for _, folder := range m.Folders {
		if folder.UserID == userID {
			out = append(out, folder)
		}
	}
	return out, nil
}

// MockActivityRepo implements repository.ActivityRepository.
type MockActivityRepo struct {
	RecordFunc func(ctx context.Context, activity model.Activity) error

	Recorded []model.Activity
}

func (m *MockActivityRepo) Record(ctx context.Context, activity model.Activity) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, activity)
	}
	m.Recorded = append(m.Recorded, activity)
	return nil
}

// MockResetTokenRepo implements repository.ResetTokenRepository.
type MockResetTokenRepo struct {
	CreateFunc  func(ctx context.Context, userID string, ttl time.Duration) (string, error)
	ConsumeFunc func(ctx context.Context, token string) (string, error)

	Tokens map[string]string
}

func (m *MockResetTokenRepo) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, ttl)
	}
	if m.Tokens == nil {
		m.Tokens = make(map[string]string)
	}
	token := "reset-" + userID
	m.Tokens[token] = userID
	return token, nil
}

func (m *MockResetTokenRepo) Consume(ctx context.Context, token string) (string, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, token)
	}
	userID, ok := m.Tokens[token]
	if !ok {
		return "", repository.ErrNotFound
	}
	delete(m.Tokens, token)
	return userID, nil
}

// MockSource implements source.Source.
type MockSource struct {
	SourceName string
	Articles   []model.Article
	Err        error
}

func (m *MockSource) Name() string {
	return m.SourceName
}

func (m *MockSource) Fetch(ctx context.Context) ([]model.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Articles, nil
}

// MockArchiveRepo implements repository.ArchiveRepository.
type MockArchiveRepo struct {
	StoreFunc func(ctx context.Context, source string, articles []model.Article) error

	Stored map[string][]model.Article
}

func (m *MockArchiveRepo) Store(ctx context.Context, source string, articles []model.Article) error {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, source, articles)
	}
	if m.Stored == nil {
		m.Stored = make(map[string][]model.Article)
	}
	m.Stored[source] = articles
	return nil
}

func (m *MockArchiveRepo) List(ctx context.Context, limit int) ([]string, error) {
	names := make([]string, 0, len(m.Stored))
	for name := range m.Stored {
		if limit > 0 && len(names) >= limit {
			break
		}
		names = append(names, name)
	}
	return names, nil
}

func (m *MockArchiveRepo) Close() error {
	return nil
}
