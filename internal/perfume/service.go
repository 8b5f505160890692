package perfume

import (
	"context"
	"fmt"
	"io"

	"fragranceapi/internal/media"
)

// The object prefix all catalog images are stored under.
const imagePrefix = "perfumes"

// ImageFile is a newly selected image accompanying a create or update.
type ImageFile struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// Service implements the catalog read and write paths. Writes follow a
// two-step saga: the optional image upload must fully succeed before the
// record is inserted or updated. A write failing after a successful upload
// leaves the uploaded object orphaned; the store has no cross-call
// transaction to roll it back.
type Service struct {
	repo  Repository
	media media.Store
}

// NewService creates a catalog service.
func NewService(repo Repository, mediaStore media.Store) *Service {
	return &Service{repo: repo, media: mediaStore}
}

// List returns all perfumes, most recently created first.
func (s *Service) List(ctx context.Context) ([]Perfume, error) {
	return s.repo.List(ctx)
}

// Get returns one perfume by id.
func (s *Service) Get(ctx context.Context, id string) (Perfume, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the payload, uploads the image if one was selected and
// inserts a new record. No store call is made for an invalid payload.
func (s *Service) Create(ctx context.Context, in FormInput, img *ImageFile, progress media.ProgressFunc) (Perfume, error) {
	p, err := s.prepare(ctx, in, img, progress)
	if err != nil {
		return Perfume{}, err
	}
	if err := s.repo.Insert(ctx, &p); err != nil {
		return Perfume{}, fmt.Errorf("insert perfume: %w", err)
	}
	return p, nil
}

// Update validates the payload and replaces the record with the given id in
// full. When no new image is selected the existing image URL is reused and
// no upload is performed. Updates are unconditional; the last successful
// write wins.
func (s *Service) Update(ctx context.Context, id string, in FormInput, img *ImageFile, progress media.ProgressFunc) (Perfume, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return Perfume{}, err
	}
	p, err := s.prepare(ctx, in, img, progress)
	if err != nil {
		return Perfume{}, err
	}
	p.ID = id
	if err := s.repo.Update(ctx, &p); err != nil {
		return Perfume{}, fmt.Errorf("update perfume: %w", err)
	}
	return p, nil
}

// Delete removes one record by id. The stored image object is intentionally
// left in place, matching the write saga's orphaned-blob behavior above.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) prepare(ctx context.Context, in FormInput, img *ImageFile, progress media.ProgressFunc) (Perfume, error) {
	if err := validateInput(in, img); err != nil {
		return Perfume{}, err
	}

	imageURL := in.ImageURL
	if img != nil {
		objectPath := media.ObjectName(imagePrefix, img.Name)
		if err := s.media.Upload(ctx, objectPath, img.Reader, img.Size, progress); err != nil {
			return Perfume{}, fmt.Errorf("upload image: %w", err)
		}
		imageURL = s.media.PublicURL(objectPath)
	}

	return Perfume{
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		ImageURL:    imageURL,
		Description: in.Description,
		Notes:       NormalizeNotes(in.Notes),
	}, nil
}

func validateInput(in FormInput, img *ImageFile) error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case !ValidCategory(in.Category):
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, in.Category)
	case in.Price <= 0:
		return fmt.Errorf("%w: price must be greater than zero", ErrInvalidInput)
	case img == nil && in.ImageURL == "":
		return fmt.Errorf("%w: an image is required", ErrInvalidInput)
	}
	return nil
}
