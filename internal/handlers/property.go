package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"property-portal/internal/config"
	"property-portal/internal/database"
	"property-portal/internal/models"
	"property-portal/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// PropertyStore is the document store contract the handlers depend on.
// database.PropertyRepo is the production implementation; tests substitute
// a map-backed fake.
type PropertyStore interface {
	Create(ctx context.Context, p *models.Property) (*models.Property, error)
	GetAll(ctx context.Context) ([]models.Property, error)
	GetByID(ctx context.Context, id string) (*models.Property, error)
	Update(ctx context.Context, id string, p *models.Property) (*models.Property, error)
	DeleteByID(ctx context.Context, id string) (*models.Property, error)
}

// PropertyHandler handles property CRUD requests
type PropertyHandler struct {
	store    PropertyStore
	uploader storage.Uploader
	upload   config.UploadConfig
	log      *logrus.Logger
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(store PropertyStore, uploader storage.Uploader, upload config.UploadConfig, log *logrus.Logger) *PropertyHandler {
	return &PropertyHandler{
		store:    store,
		uploader: uploader,
		upload:   upload,
		log:      log,
	}
}

// propertyForm is the validated request body shared by create and update
type propertyForm struct {
	Title        string   `form:"title" json:"title" binding:"required"`
	Location     string   `form:"location" json:"location"`
	Price        float64  `form:"price" json:"price" binding:"gte=0"`
	Beds         int      `form:"beds" json:"beds" binding:"gte=0"`
	Baths        int      `form:"baths" json:"baths" binding:"gte=0"`
	Sqft         int      `form:"sqft" json:"sqft" binding:"gte=0"`
	Type         string   `form:"type" json:"type"`
	Availability string   `form:"availability" json:"availability"`
	Description  string   `form:"description" json:"description"`
	Amenities    []string `form:"amenities" json:"amenities"`
	Phone        string   `form:"phone" json:"phone"`
}

type updatePropertyForm struct {
	ID string `form:"id" json:"id" binding:"required"`
	propertyForm
}

func (f *propertyForm) toProperty() *models.Property {
	return &models.Property{
		Title:        f.Title,
		Location:     f.Location,
		Price:        f.Price,
		Beds:         f.Beds,
		Baths:        f.Baths,
		Sqft:         f.Sqft,
		Type:         f.Type,
		Availability: models.PropertyAvailability(f.Availability),
		Description:  f.Description,
		Amenities:    parseAmenities(f.Amenities),
		Phone:        f.Phone,
	}
}

// parseAmenities accepts either repeated form values or a single
// JSON-stringified array (the frontend sends the latter in multipart bodies).
func parseAmenities(values []string) []string {
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var parsed []string
		if err := json.Unmarshal([]byte(values[0]), &parsed); err == nil {
			return parsed
		}
	}
	return values
}

// imageUpload is one attached image slot, staged in the temp dir
type imageUpload struct {
	slot     int
	tempPath string
	fileName string
}

// saveImageFiles stages the attached image slots (image1..image4) in the
// temp dir. Unattached slots are skipped; slot order is preserved.
func (h *PropertyHandler) saveImageFiles(c *gin.Context) ([]imageUpload, error) {
	var images []imageUpload
	for slot := 1; slot <= models.MaxImages; slot++ {
		file, err := c.FormFile(fmt.Sprintf("image%d", slot))
		if err != nil {
			// Slot not attached
			continue
		}
		tempPath := filepath.Join(h.upload.TempDir, uuid.NewString()+"_"+filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, tempPath); err != nil {
			return nil, fmt.Errorf("stage image%d: %w", slot, err)
		}
		images = append(images, imageUpload{slot: slot, tempPath: tempPath, fileName: file.Filename})
	}
	return images, nil
}

// uploadImages pushes the staged files to object storage concurrently and
// returns the public URLs in slot order. A single failed upload fails the
// whole batch and nothing is persisted. Each temp copy is removed as soon as
// its own upload settles, whatever the outcome; removal failures are logged
// and ignored.
func (h *PropertyHandler) uploadImages(ctx context.Context, images []imageUpload) ([]string, error) {
	urls := make([]string, len(images))
	g, ctx := errgroup.WithContext(ctx)
	for i, img := range images {
		g.Go(func() error {
			defer func() {
				if err := os.Remove(img.tempPath); err != nil {
					h.log.WithFields(logrus.Fields{
						"error": err,
						"path":  img.tempPath,
					}).Error("Error deleting temp file")
				}
			}()

			data, err := os.ReadFile(img.tempPath)
			if err != nil {
				return fmt.Errorf("read image%d: %w", img.slot, err)
			}
			url, err := h.uploader.Upload(ctx, data, img.fileName, h.upload.Folder)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// Create handles POST /api/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var form propertyForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.WithFields(logrus.Fields{"error": err}).Info("Rejected invalid property payload")
		respondMessage(c, http.StatusBadRequest, false, msgInvalid)
		return
	}

	images, err := h.saveImageFiles(c)
	if err != nil {
		h.log.WithFields(logrus.Fields{"error": err}).Error("Error adding property")
		respondServerError(c)
		return
	}

	h.log.WithFields(logrus.Fields{"imageCount": len(images)}).Info("Uploading images to ImageKit")

	urls, err := h.uploadImages(c.Request.Context(), images)
	if err != nil {
		h.log.WithFields(logrus.Fields{"error": err}).Error("Error adding property")
		respondServerError(c)
		return
	}

	property := form.toProperty()
	property.Image = urls

	created, err := h.store.Create(c.Request.Context(), property)
	if err != nil {
		h.log.WithFields(logrus.Fields{"error": err}).Error("Error adding property")
		respondServerError(c)
		return
	}

	h.log.WithFields(logrus.Fields{
		"propertyId": created.ID.Hex(),
		"title":      created.Title,
	}).Info("Property added successfully")
	respondMessage(c, http.StatusOK, true, msgAdded)
}

// List handles GET /api/properties
func (h *PropertyHandler) List(c *gin.Context) {
	properties, err := h.store.GetAll(c.Request.Context())
	if err != nil {
		h.log.WithFields(logrus.Fields{"error": err}).Error("Error listing properties")
		respondServerError(c)
		return
	}

	h.log.WithFields(logrus.Fields{"count": len(properties)}).Info("Properties fetched successfully")
	c.JSON(http.StatusOK, gin.H{"success": true, "property": properties})
}

// GetOne handles GET /api/properties/:id
func (h *PropertyHandler) GetOne(c *gin.Context) {
	id := c.Param("id")

	property, err := h.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		h.log.WithFields(logrus.Fields{"propertyId": id}).Info("Property not found")
		respondMessage(c, http.StatusNotFound, false, msgNotFound)
		return
	}
	if err != nil {
		h.log.WithFields(logrus.Fields{"error": err, "propertyId": id}).Error("Error fetching single property")
		respondServerError(c)
		return
	}

	h.log.WithFields(logrus.Fields{"propertyId": id}).Info("Single property fetched successfully")
	c.JSON(http.StatusOK, gin.H{"success": true, "property": property})
}

// Update handles PUT /api/properties. The image list is only replaced when
// the request carries new image attachments.
func (h *PropertyHandler) Update(c *gin.Context) {
	var form updatePropertyForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.WithFields(logrus.Fields{"error": err}).Info("Rejected invalid property payload")
		respondMessage(c, http.StatusBadRequest, false, msgInvalid)
		return
	}

	existing, err := h.store.GetByID(c.Request.Context(), form.ID)
	if errors.Is(err, database.ErrNotFound) {
		h.log.WithFields(logrus.Fields{"propertyId": form.ID}).Info("Property not found for update")
		respondMessage(c, http.StatusNotFound, false, msgNotFound)
		return
	}
	if err != nil {
		h.log.WithFields(logrus.Fields{"error": err, "propertyId": form.ID}).Error("Error updating property")
		respondServerError(c)
		return
	}

	images, err := h.saveImageFiles(c)
	if err != nil {
		h.log.WithFields(logrus.Fields{"error": err, "propertyId": form.ID}).Error("Error updating property")
		respondServerError(c)
		return
	}

	patch := form.toProperty()
	if len(images) == 0 {
		// No new images: keep the stored list as-is
		patch.Image = existing.Image
	} else {
		h.log.WithFields(logrus.Fields{
			"propertyId": form.ID,
			"imageCount": len(images),
		}).Info("Uploading new images for property update")

		urls, err := h.uploadImages(c.Request.Context(), images)
		if err != nil {
			h.log.WithFields(logrus.Fields{"error": err, "propertyId": form.ID}).Error("Error updating property")
			respondServerError(c)
			return
		}
		patch.Image = urls
	}

	if _, err := h.store.Update(c.Request.Context(), form.ID, patch); err != nil {
		h.log.WithFields(logrus.Fields{"error": err, "propertyId": form.ID}).Error("Error updating property")
		respondServerError(c)
		return
	}

	h.log.WithFields(logrus.Fields{
		"propertyId": form.ID,
		"imageCount": len(patch.Image),
	}).Info("Property updated successfully")
	respondMessage(c, http.StatusOK, true, msgUpdated)
}

// Delete handles DELETE /api/properties. Previously uploaded images are left
// in object storage.
func (h *PropertyHandler) Delete(c *gin.Context) {
	var req struct {
		ID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.WithFields(logrus.Fields{"error": err}).Info("Rejected invalid delete payload")
		respondMessage(c, http.StatusBadRequest, false, msgInvalid)
		return
	}

	if _, err := h.store.DeleteByID(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.log.WithFields(logrus.Fields{"propertyId": req.ID}).Info("Property not found for deletion")
			respondMessage(c, http.StatusNotFound, false, msgNotFound)
			return
		}
		h.log.WithFields(logrus.Fields{"error": err, "propertyId": req.ID}).Error("Error removing property")
		respondServerError(c)
		return
	}

	h.log.WithFields(logrus.Fields{"propertyId": req.ID}).Info("Property removed successfully")
	respondMessage(c, http.StatusOK, true, msgRemoved)
}
