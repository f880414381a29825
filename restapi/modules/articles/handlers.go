package articles

import (
	"time"

	"github.com/campusnews/campusnews-backend/database"
	events "github.com/campusnews/campusnews-backend/events/modules/articles"
	"github.com/campusnews/campusnews-backend/model"
	"github.com/campusnews/campusnews-backend/restapi/modules/auth"
	"github.com/campusnews/campusnews-backend/restapi/modules/media"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func storeError(c *fiber.Ctx, err error) error {
	if IsTimeout(err) {
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
			"error": "Database timed out, please try again later",
		})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error": "Database unavailable, please try again later",
	})
}

// canEdit reports whether user may modify the article
func canEdit(user *model.User, article *model.Article) bool {
	if user == nil {
		return false
	}
	return user.CanModerate() || user.Email == article.AuthorEmail
}

// Submit handles POST /articles. New articles always start pending; only a
// moderator's approval makes them public.
func Submit(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		var req SubmitRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Title, body and category are required",
			})
		}

		article := model.NewArticle(req.Title, req.Body, req.Category, user.Email, user.Name)
		article.ImageURL = req.ImageURL

		if err := createArticle(c.Context(), db, article); err != nil {
			return storeError(c, err)
		}

		database.Logger().Sugar().Infof("Article %s submitted by %s", article.Key, user.Email)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"article": article})
	}
}

// List handles GET /articles. Guests and regular users only see approved
// articles; moderators may filter by any status.
func List(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)

		filter := articleFilter{
			Category: c.Query("category"),
			Author:   c.Query("author"),
		}

		if user != nil && user.CanModerate() {
			status := c.Query("status")
			if status != "" && !model.IsValidStatus(status) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Unknown status",
				})
			}
			filter.Status = status
		} else {
			filter.Status = model.StatusApproved
		}

		list, err := listArticles(c.Context(), db, filter)
		if err != nil {
			return storeError(c, err)
		}
		if list == nil {
			list = []*model.Article{}
		}

		return c.JSON(fiber.Map{
			"articles": list,
			"count":    len(list),
		})
	}
}

// Get handles GET /articles/:key. Unapproved articles are only visible to
// their author and moderators.
func Get(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		article, err := getArticleByKey(c.Context(), db, c.Params("key"))
		if err != nil {
			if err == ErrArticleNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "Article not found",
				})
			}
			return storeError(c, err)
		}

		if article.Status != model.StatusApproved && !canEdit(auth.CurrentUser(c), article) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Article not found",
			})
		}

		return c.JSON(fiber.Map{"article": article})
	}
}

// Update handles PUT /articles/:key. An author's edit sends the article back
// to pending so it is re-moderated.
func Update(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		article, err := getArticleByKey(c.Context(), db, c.Params("key"))
		if err != nil {
			if err == ErrArticleNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "Article not found",
				})
			}
			return storeError(c, err)
		}

		if !canEdit(user, article) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You can only edit your own articles",
			})
		}

		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if req.Title != "" {
			article.Title = req.Title
		}
		if req.Body != "" {
			article.Body = req.Body
		}
		if req.Category != "" {
			article.Category = req.Category
		}
		if req.ImageURL != "" {
			article.ImageURL = req.ImageURL
		}
		if !user.CanModerate() {
			article.Status = model.StatusPending
		}
		article.UpdatedAt = time.Now()

		if err := updateArticle(c.Context(), db, article); err != nil {
			return storeError(c, err)
		}

		return c.JSON(fiber.Map{"article": article})
	}
}

// Delete handles DELETE /articles/:key. The stored image is destroyed best
// effort; a provider failure never blocks the delete.
func Delete(db database.DBConnection, mediaSvc *media.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)

		article, err := getArticleByKey(c.Context(), db, c.Params("key"))
		if err != nil {
			if err == ErrArticleNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "Article not found",
				})
			}
			return storeError(c, err)
		}

		if !canEdit(user, article) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You can only delete your own articles",
			})
		}

		if err := deleteArticle(c.Context(), db, article.Key); err != nil {
			if err == ErrArticleNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "Article not found",
				})
			}
			return storeError(c, err)
		}

		if mediaSvc != nil && article.ImageURL != "" {
			if derr := mediaSvc.DestroyByURL(article.ImageURL); derr != nil {
				database.Logger().Sugar().Warnf("Failed to destroy image for article %s: %v", article.Key, derr)
			}
		}

		database.Logger().Sugar().Infof("Article %s deleted by %s", article.Key, user.Email)

		return c.JSON(fiber.Map{"message": "Article deleted"})
	}
}

// Moderate handles POST /articles/:key/status. Approval publishes an
// article.approved event when a producer is configured.
func Moderate(db database.DBConnection, producer *events.ArticleProducer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)

		var req ModerateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		if req.Status != model.StatusApproved && req.Status != model.StatusRejected {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Status must be approved or rejected",
			})
		}

		ctx := c.Context()
		article, err := getArticleByKey(ctx, db, c.Params("key"))
		if err != nil {
			if err == ErrArticleNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "Article not found",
				})
			}
			return storeError(c, err)
		}

		article.Status = req.Status
		article.UpdatedAt = time.Now()

		if err := updateArticle(ctx, db, article); err != nil {
			return storeError(c, err)
		}

		if req.Status == model.StatusApproved && producer != nil {
			if perr := producer.PublishArticleApproved(ctx, *article, user.Email); perr != nil {
				database.Logger().Sugar().Warnf("Failed to publish approval event for %s: %v", article.Key, perr)
			}
		}

		database.Logger().Sugar().Infof("Article %s set to %s by %s", article.Key, req.Status, user.Email)

		return c.JSON(fiber.Map{"article": article})
	}
}
