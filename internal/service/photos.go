package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/sync/errgroup"

	"photoshare/internal/errs"
	"photoshare/internal/model"
	"photoshare/internal/repository"
	"photoshare/internal/storage"
)

// Fan-out defaults for comment-author resolution.
const (
	defaultFanoutLimit   = 16
	defaultLookupTimeout = 2 * time.Second
)

// PhotoService defines uploads, comments, and the aggregated read surface.
type PhotoService interface {
	// Upload persists the file stream and then creates the photo record.
	Upload(ctx context.Context, ownerID uuid.UUID, file io.Reader, originalName string) (*model.Photo, error)
	// AddComment appends a comment to a photo.
	AddComment(ctx context.Context, photoID, authorID uuid.UUID, body string) (*model.Comment, error)
	// PhotosOfUser returns the user's photos with comments and resolved authors.
	PhotosOfUser(ctx context.Context, userID uuid.UUID) ([]model.PhotoView, error)
	// UserDetail returns the credential-free profile of one account.
	UserDetail(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	// UserList returns the public directory of all accounts.
	UserList(ctx context.Context) ([]model.AccountSummary, error)
}

type PhotoServiceImpl struct {
	photos   repository.PhotoRepository
	accounts repository.AccountRepository
	files    storage.FileStore

	fanoutLimit   int
	lookupTimeout time.Duration
}

// NewPhotoService constructs PhotoService with required dependencies.
func NewPhotoService(photos repository.PhotoRepository, accounts repository.AccountRepository, files storage.FileStore) *PhotoServiceImpl {
	return &PhotoServiceImpl{
		photos:        photos,
		accounts:      accounts,
		files:         files,
		fanoutLimit:   defaultFanoutLimit,
		lookupTimeout: defaultLookupTimeout,
	}
}

// Upload writes the bytes first and creates the record only after a
// successful write, so a storage failure never leaves orphan metadata.
func (s *PhotoServiceImpl) Upload(ctx context.Context, ownerID uuid.UUID, file io.Reader, originalName string) (*model.Photo, error) {
	if ownerID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}
	if file == nil {
		return nil, fmt.Errorf("%w: photo required", errs.ErrInvalidInput)
	}

	name, err := storage.GenerateName(originalName)
	if err != nil {
		return nil, err
	}
	if err := s.files.Save(ctx, name, file); err != nil {
		return nil, fmt.Errorf("%w: save %s: %v", errs.ErrStorage, name, err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	p := &model.Photo{ID: id, AccountID: ownerID, FileName: name}
	if err := s.photos.Create(ctx, p); err != nil {
		_ = s.files.Remove(ctx, name) // best-effort; avoids an unreferenced file
		return nil, fmt.Errorf("%w: create photo record: %v", errs.ErrStorage, err)
	}
	return p, nil
}

// AddComment validates the body, checks the photo, and appends atomically.
func (s *PhotoServiceImpl) AddComment(ctx context.Context, photoID, authorID uuid.UUID, body string) (*model.Comment, error) {
	if authorID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: comment must not be empty", errs.ErrInvalidInput)
	}
	if _, err := s.photos.GetByID(ctx, photoID); err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	c := &model.Comment{ID: id, PhotoID: photoID, AccountID: authorID, Body: body}
	if err := s.photos.AppendComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// PhotosOfUser assembles the aggregated response graph. Comment-list fetches
// fan out per photo; author lookups fan out per comment. A single author miss
// or lookup timeout degrades that one comment to an unknown author instead of
// failing the request.
func (s *PhotoServiceImpl) PhotosOfUser(ctx context.Context, userID uuid.UUID) ([]model.PhotoView, error) {
	if _, err := s.accounts.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	photos, err := s.photos.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Phase 1: comment lists, fanned out per photo. A failed fetch here means
	// the store is unreachable and fails the whole call.
	views := make([]model.PhotoView, len(photos))
	commentsOf := make([][]model.Comment, len(photos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanoutLimit)
	for i := range photos {
		g.Go(func() error {
			cs, err := s.photos.ListComments(gctx, photos[i].ID)
			commentsOf[i] = cs
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Phase 2: author resolution, fanned out per comment. Misses degrade to a
	// null author; these goroutines never return an error.
	rg, rctx := errgroup.WithContext(ctx)
	rg.SetLimit(s.fanoutLimit)
	for i := range photos {
		p := photos[i]
		views[i] = model.PhotoView{
			ID:        p.ID,
			AccountID: p.AccountID,
			FileName:  p.FileName,
			CreatedAt: p.CreatedAt,
			Comments:  make([]model.CommentView, len(commentsOf[i])),
		}
		for j := range commentsOf[i] {
			rg.Go(func() error {
				c := commentsOf[i][j]
				views[i].Comments[j] = model.CommentView{
					ID:        c.ID,
					Body:      c.Body,
					CreatedAt: c.CreatedAt,
					User:      s.resolveAuthor(rctx, c.AccountID),
				}
				return nil
			})
		}
	}
	_ = rg.Wait()
	return views, nil
}

// resolveAuthor looks up a comment author's summary under a short timeout.
// Any failure yields an unknown author.
func (s *PhotoServiceImpl) resolveAuthor(ctx context.Context, accountID uuid.UUID) *model.AccountSummary {
	lctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()
	sum, err := s.accounts.GetSummary(lctx, accountID)
	if err != nil {
		return nil
	}
	return sum
}

// UserDetail returns the profile fields of one account.
func (s *PhotoServiceImpl) UserDetail(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	a, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.Profile{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Location:    a.Location,
		Description: a.Description,
		Occupation:  a.Occupation,
	}, nil
}

// UserList returns the public directory.
func (s *PhotoServiceImpl) UserList(ctx context.Context) ([]model.AccountSummary, error) {
	return s.accounts.List(ctx)
}
