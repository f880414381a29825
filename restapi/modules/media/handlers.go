package media

import (
	"github.com/campusnews/campusnews-backend/database"
	"github.com/gofiber/fiber/v2"
)

// maxUploadBytes caps article image uploads at 10 MB
const maxUploadBytes = 10 << 20

// UploadImage handles POST /media/upload. Expects a multipart form with an
// image field.
func UploadImage(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if svc == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Image uploads are not configured",
			})
		}

		header, err := c.FormFile("image")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "An image file is required",
			})
		}
		if header.Size > maxUploadBytes {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Image exceeds the 10 MB limit",
			})
		}

		file, err := header.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to read uploaded file",
			})
		}
		defer file.Close()

		result, err := svc.Upload(file, header.Filename)
		if err != nil {
			database.Logger().Sugar().Warnf("Cloudinary upload failed: %v", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Image provider unavailable, please try again later",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"url":       result.SecureURL,
			"public_id": result.PublicID,
		})
	}
}

// DeleteImage handles DELETE /media. Takes the delivery URL in the body.
func DeleteImage(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if svc == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Image uploads are not configured",
			})
		}

		var req struct {
			URL string `json:"url"`
		}
		if err := c.BodyParser(&req); err != nil || req.URL == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "An image URL is required",
			})
		}

		if err := svc.DestroyByURL(req.URL); err != nil {
			database.Logger().Sugar().Warnf("Cloudinary destroy failed: %v", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Image provider unavailable, please try again later",
			})
		}

		return c.JSON(fiber.Map{"message": "Image deleted"})
	}
}
