package v2controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getAlby/lnpaywall/db/models"
	"github.com/getAlby/lnpaywall/lib/responses"
	"github.com/getAlby/lnpaywall/lib/service"
	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
)

// ResourceController : lists and manages posts and media
type ResourceController struct {
	catalog   service.ResourceCatalog
	publicURL string
}

func NewResourceController(catalog service.ResourceCatalog, publicURL string) *ResourceController {
	return &ResourceController{catalog: catalog, publicURL: strings.TrimSuffix(publicURL, "/")}
}

type CreatePostRequestBody struct {
	Title     string `json:"title" validate:"required"`
	Summary   string `json:"summary"`
	Content   string `json:"content" validate:"required"`
	Price     int64  `json:"price" validate:"gte=0"`
	Published bool   `json:"published"`
}

type CreateMediaRequestBody struct {
	Title                 string `json:"title" validate:"required"`
	Description           string `json:"description"`
	FileName              string `json:"file_name" validate:"required"`
	AbsolutePath          string `json:"absolute_path" validate:"required"`
	Price                 int64  `json:"price" validate:"gte=0"`
	Published             bool   `json:"published"`
	AccessDurationMinutes *int64 `json:"access_duration_minutes" validate:"omitempty,gt=0"`
}

type EditMediaRequestBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int64  `json:"price" validate:"omitempty,gte=0"`
	Published   *bool   `json:"published"`
}

// ListPosts godoc
// @Summary      List published posts
// @Produce      json
// @Tags         Resources
// @Success      200  {object}  []models.Post
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/posts [get]
func (controller *ResourceController) ListPosts(c echo.Context) error {
	posts, err := controller.catalog.ListPublishedPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// ListMedia godoc
// @Summary      List published media
// @Produce      json
// @Tags         Resources
// @Success      200  {object}  []models.Media
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/media [get]
func (controller *ResourceController) ListMedia(c echo.Context) error {
	media, err := controller.catalog.ListPublishedMedia(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, media)
}

// CreatePost godoc
// @Summary      Create a post
// @Accept       json
// @Produce      json
// @Tags         Admin
// @Param        post  body      CreatePostRequestBody  true  "Post"
// @Success      200   {object}  models.Post
// @Failure      400   {object}  responses.ErrorResponse
// @Failure      401   {object}  responses.ErrorResponse
// @Router       /v2/admin/posts [post]
func (controller *ResourceController) CreatePost(c echo.Context) error {
	var body CreatePostRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create post request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid create post request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	post := &models.Post{
		Title:     body.Title,
		Summary:   body.Summary,
		Content:   body.Content,
		Price:     body.Price,
		Published: body.Published,
	}
	if err := controller.catalog.CreatePost(c.Request().Context(), post); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// CreateMedia godoc
// @Summary      Register a media file
// @Description  The file must already exist at absolute_path
// @Accept       json
// @Produce      json
// @Tags         Admin
// @Param        media  body      CreateMediaRequestBody  true  "Media"
// @Success      200    {object}  models.Media
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      401    {object}  responses.ErrorResponse
// @Router       /v2/admin/media [post]
func (controller *ResourceController) CreateMedia(c echo.Context) error {
	var body CreateMediaRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create media request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid create media request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	media := &models.Media{
		Title:                 body.Title,
		Description:           body.Description,
		FileName:              body.FileName,
		AbsolutePath:          body.AbsolutePath,
		Price:                 body.Price,
		Published:             body.Published,
		AccessDurationMinutes: body.AccessDurationMinutes,
	}
	if err := controller.catalog.CreateMedia(c.Request().Context(), media); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, media)
}

// EditMedia godoc
// @Summary      Edit a media file
// @Description  Only the fields present in the body change
// @Accept       json
// @Produce      json
// @Tags         Admin
// @Param        id     path      string                true  "Media id"
// @Param        media  body      EditMediaRequestBody  true  "Changes"
// @Success      200    {object}  models.Media
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      401    {object}  responses.ErrorResponse
// @Failure      404    {object}  responses.ErrorResponse
// @Router       /v2/admin/media/{id} [patch]
func (controller *ResourceController) EditMedia(c echo.Context) error {
	var body EditMediaRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load edit media request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid edit media request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if body.Title != nil && strings.TrimSpace(*body.Title) == "" {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	return controller.editMedia(c, service.MediaEdit{
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		Published:   body.Published,
	})
}

// UnpublishMedia godoc
// @Summary      Remove a media file from the paywall
// @Description  The media is unpublished, its payments are kept
// @Produce      json
// @Tags         Admin
// @Param        id   path      string  true  "Media id"
// @Success      200  {object}  models.Media
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/admin/media/{id} [delete]
func (controller *ResourceController) UnpublishMedia(c echo.Context) error {
	published := false
	return controller.editMedia(c, service.MediaEdit{Published: &published})
}

func (controller *ResourceController) editMedia(c echo.Context, edit service.MediaEdit) error {
	media, err := controller.catalog.EditMedia(c.Request().Context(), c.Param("id"), edit)
	if errors.Is(err, service.ErrResourceNotFound) {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, media)
}

// MediaFeed godoc
// @Summary      RSS feed of published media
// @Produce      xml
// @Tags         Resources
// @Success      200
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /rss [get]
func (controller *ResourceController) MediaFeed(c echo.Context) error {
	media, err := controller.catalog.ListPublishedMedia(c.Request().Context())
	if err != nil {
		return err
	}

	feed := &feeds.Feed{
		Title:       "lnpaywall media",
		Link:        &feeds.Link{Href: controller.publicURL + "/v2/media"},
		Description: "Media files available behind the paywall",
	}
	for i := range media {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          media[i].ID,
			Title:       media[i].Title,
			Description: media[i].Description,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/v2/media/%s", controller.publicURL, media[i].ID)},
			Created:     media[i].CreatedAt,
		})
	}
	// listings are newest first
	if len(media) > 0 {
		feed.Updated = media[0].CreatedAt
	}

	rss, err := feed.ToRss()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
