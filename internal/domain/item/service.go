package item

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rewear/rewear-api/internal/pkg/imaging"
	"github.com/rewear/rewear-api/internal/pkg/storage"
)

// Upload is one validated image file from a multipart request
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service handles listing business logic
type Service struct {
	repo      *Repository
	store     storage.Storage
	processor *imaging.Processor
	maxImages int
}

// NewService creates item service
func NewService(repo *Repository, store storage.Storage, processor *imaging.Processor, maxImages int) *Service {
	return &Service{
		repo:      repo,
		store:     store,
		processor: processor,
		maxImages: maxImages,
	}
}

// Create stores the images and inserts the listing. New listings always
// enter the moderation queue as pending.
func (s *Service) Create(ctx context.Context, uploaderID uuid.UUID, req *CreateRequest, uploads []Upload) (*Response, error) {
	if len(uploads) == 0 {
		return nil, ErrNoImages
	}
	if len(uploads) > s.maxImages {
		return nil, ErrTooManyImages
	}

	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, ErrCategoryNotFound
		}
		if _, err := s.repo.GetCategory(ctx, id); err != nil {
			return nil, err
		}
		categoryID = &id
	}

	it := &Item{
		ID:             uuid.New(),
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		CategoryID:     categoryID,
		Type:           strings.TrimSpace(req.Type),
		Size:           req.Size,
		Condition:      req.Condition,
		PointValue:     req.PointValue,
		UploaderID:     uploaderID,
		IsAvailable:    true,
		ApprovalStatus: ApprovalPending,
	}

	images, storedKeys, err := s.storeUploads(ctx, it.ID, uploads)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, it, images, req.Tags); err != nil {
		s.removeStored(ctx, storedKeys)
		return nil, err
	}

	return s.load(ctx, it.ID)
}

func (s *Service) storeUploads(ctx context.Context, itemID uuid.UUID, uploads []Upload) ([]Image, []string, error) {
	images := make([]Image, 0, len(uploads))
	storedKeys := []string{}

	for i, upload := range uploads {
		processed, err := s.processor.Process(bytes.NewReader(upload.Data))
		if err != nil {
			s.removeStored(ctx, storedKeys)
			return nil, nil, fmt.Errorf("process image %q: %w", upload.Filename, err)
		}

		ext := storage.ExtensionForMime(processed.ContentType)
		imageID := uuid.New()
		originalKey := fmt.Sprintf("items/%s/%s%s", itemID, imageID, ext)
		thumbKey := fmt.Sprintf("items/%s/%s_thumb%s", itemID, imageID, ext)

		if err := s.store.Put(ctx, originalKey, bytes.NewReader(processed.Original), processed.ContentType); err != nil {
			s.removeStored(ctx, storedKeys)
			return nil, nil, fmt.Errorf("store image: %w", err)
		}
		storedKeys = append(storedKeys, originalKey)

		if err := s.store.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), processed.ContentType); err != nil {
			s.removeStored(ctx, storedKeys)
			return nil, nil, fmt.Errorf("store thumbnail: %w", err)
		}
		storedKeys = append(storedKeys, thumbKey)

		images = append(images, Image{
			ID:           imageID,
			ItemID:       itemID,
			ImageURL:     s.store.GetURL(originalKey),
			ThumbnailURL: s.store.GetURL(thumbKey),
			IsPrimary:    i == 0,
			DisplayOrder: i,
		})
	}

	return images, storedKeys, nil
}

func (s *Service) removeStored(ctx context.Context, keys []string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to remove stored image")
		}
	}
}

// Get returns a listing. Items still in moderation are visible only to
// their owner and admins.
func (s *Service) Get(ctx context.Context, id, viewerID uuid.UUID, isAdmin bool) (*Response, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if it.ApprovalStatus != ApprovalApproved && it.UploaderID != viewerID && !isAdmin {
		return nil, ErrNotFound
	}

	return s.assemble(ctx, it)
}

// List returns a filtered catalog page
func (s *Service) List(ctx context.Context, f Filter) ([]Response, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 12
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	imagesByItem, err := s.repo.GetImagesForItems(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	tagsByItem, err := s.repo.GetTagsForItems(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]Response, len(items))
	for i := range items {
		responses[i] = ToResponse(&items[i], imagesByItem[items[i].ID], tagsByItem[items[i].ID])
	}

	return responses, total, nil
}

// ListMine returns the caller's own listings in every state
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, status string, page, limit int) ([]Response, int, error) {
	f := Filter{
		UploaderID: &userID,
		Status:     status,
		AnyStatus:  status == "", // owners see pending and rejected too
		Page:       page,
		Limit:      limit,
	}
	return s.List(ctx, f)
}

// Update applies the owner's edits
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, isAdmin bool, req *UpdateRequest) (*Response, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if it.UploaderID != userID && !isAdmin {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		it.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		it.Description = strings.TrimSpace(*req.Description)
	}
	if req.PointValue != nil {
		it.PointValue = *req.PointValue
	}
	if req.IsAvailable != nil {
		it.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}

	return s.load(ctx, id)
}

// Delete removes the listing and its stored image files
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID, isAdmin bool) error {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if it.UploaderID != userID && !isAdmin {
		return ErrNotOwner
	}

	images, err := s.repo.GetImages(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Rows are gone; file removal failures only leak storage
	for _, img := range images {
		s.removeStored(ctx, []string{keyFromURL(img.ImageURL), keyFromURL(img.ThumbnailURL)})
	}

	return nil
}

// keyFromURL recovers the storage key from a public URL
func keyFromURL(url string) string {
	idx := strings.Index(url, "items/")
	if idx == -1 {
		return url
	}
	return url[idx:]
}

// Categories returns the active category list
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*Response, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, it)
}

func (s *Service) assemble(ctx context.Context, it *Item) (*Response, error) {
	images, err := s.repo.GetImages(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	tags, err := s.repo.GetTags(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(it, images, tags)
	return &resp, nil
}
