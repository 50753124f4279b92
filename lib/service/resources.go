package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/getAlby/lnpaywall/common"
	"github.com/getAlby/lnpaywall/db/models"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ErrResourceNotFound = errors.New("resource not found")

type ResourceFinder interface {
	FindResource(ctx context.Context, ref models.ResourceRef) (models.Resource, error)
}

// ResourceCatalog manages the published resources.
type ResourceCatalog interface {
	ResourceFinder
	CreatePost(ctx context.Context, post *models.Post) error
	CreateMedia(ctx context.Context, media *models.Media) error
	ListPublishedPosts(ctx context.Context) ([]models.Post, error)
	ListPublishedMedia(ctx context.Context) ([]models.Media, error)
	EditMedia(ctx context.Context, id string, edit MediaEdit) (*models.Media, error)
}

// MediaEdit lists the fields an edit changes, nil fields are left alone.
// Media are unpublished rather than deleted so their payments stay
// attributable.
type MediaEdit struct {
	Title       *string
	Description *string
	Price       *int64
	Published   *bool
}

func (edit MediaEdit) apply(media *models.Media) {
	if edit.Title != nil {
		media.Title = *edit.Title
	}
	if edit.Description != nil {
		media.Description = *edit.Description
	}
	if edit.Price != nil {
		media.Price = *edit.Price
	}
	if edit.Published != nil {
		media.Published = *edit.Published
	}
}

type BunResourceStore struct {
	DB *bun.DB
}

func (store *BunResourceStore) FindResource(ctx context.Context, ref models.ResourceRef) (models.Resource, error) {
	var resource models.Resource
	switch ref.Kind {
	case common.ResourceTypePost:
		resource = &models.Post{}
	case common.ResourceTypeMedia:
		resource = &models.Media{}
	default:
		return nil, ErrResourceNotFound
	}
	err := store.DB.NewSelect().Model(resource).Where("id = ?", ref.ID).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", ref, err)
	}
	return resource, nil
}

func (store *BunResourceStore) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	_, err := store.DB.NewInsert().Model(post).Exec(ctx)
	return err
}

func (store *BunResourceStore) CreateMedia(ctx context.Context, media *models.Media) error {
	if media.ID == "" {
		media.ID = uuid.New().String()
	}
	_, err := store.DB.NewInsert().Model(media).Exec(ctx)
	return err
}

func (store *BunResourceStore) ListPublishedPosts(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	err := store.DB.NewSelect().Model(&posts).
		ExcludeColumn("content").
		Where("published = ?", true).
		OrderExpr("created_at DESC").
		Scan(ctx)
	return posts, err
}

func (store *BunResourceStore) ListPublishedMedia(ctx context.Context) ([]models.Media, error) {
	media := []models.Media{}
	err := store.DB.NewSelect().Model(&media).
		Where("published = ?", true).
		OrderExpr("created_at DESC").
		Scan(ctx)
	return media, err
}

func (store *BunResourceStore) EditMedia(ctx context.Context, id string, edit MediaEdit) (*models.Media, error) {
	media := &models.Media{}
	err := store.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(media).Where("id = ?", id).Limit(1).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrResourceNotFound
		}
		if err != nil {
			return err
		}
		edit.apply(media)
		_, err = tx.NewUpdate().Model(media).WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return media, nil
}

// MemoryResourceStore serves a fixed set of resources.
type MemoryResourceStore struct {
	Resources map[models.ResourceRef]models.Resource
}

func NewMemoryResourceStore(resources ...models.Resource) *MemoryResourceStore {
	store := &MemoryResourceStore{Resources: map[models.ResourceRef]models.Resource{}}
	for _, resource := range resources {
		store.Resources[resource.Ref()] = resource
	}
	return store
}

func (store *MemoryResourceStore) FindResource(ctx context.Context, ref models.ResourceRef) (models.Resource, error) {
	resource, ok := store.Resources[ref]
	if !ok {
		return nil, ErrResourceNotFound
	}
	return resource, nil
}

var (
	_ ResourceCatalog = (*BunResourceStore)(nil)
	_ ResourceFinder  = (*MemoryResourceStore)(nil)
)
