package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPropertyIsValid(t *testing.T) {
	valid := Property{Title: "Cottage", Price: 100000, Beds: 2, Baths: 1, Sqft: 800}
	if !valid.IsValid() {
		t.Error("Expected property to be valid")
	}

	missingTitle := valid
	missingTitle.Title = ""
	if missingTitle.IsValid() {
		t.Error("Expected property without title to be invalid")
	}

	negativePrice := valid
	negativePrice.Price = -1
	if negativePrice.IsValid() {
		t.Error("Expected property with negative price to be invalid")
	}

	tooManyImages := valid
	tooManyImages.Image = []string{"a", "b", "c", "d", "e"}
	if tooManyImages.IsValid() {
		t.Error("Expected property with more than 4 images to be invalid")
	}
}

func TestPropertyIsAvailable(t *testing.T) {
	p := Property{Availability: AvailabilityAvailable}
	if !p.IsAvailable() {
		t.Error("Expected available property")
	}
	p.Availability = AvailabilitySold
	if p.IsAvailable() {
		t.Error("Expected sold property to not be available")
	}
}

func TestApplyUpdate(t *testing.T) {
	id := primitive.NewObjectID()
	createdAt := time.Now().Add(-time.Hour)
	existing := Property{
		ID:        id,
		Title:     "Old",
		Price:     100,
		Image:     []string{"old.jpg"},
		CreatedAt: createdAt,
	}

	patch := Property{Title: "New", Price: 200}
	existing.ApplyUpdate(&patch)

	if existing.Title != "New" || existing.Price != 200 {
		t.Errorf("Expected fields to be replaced, got %q / %v", existing.Title, existing.Price)
	}
	if len(existing.Image) != 1 || existing.Image[0] != "old.jpg" {
		t.Errorf("Expected image list to be kept when patch has none, got %v", existing.Image)
	}
	if existing.ID != id {
		t.Error("ID must never change on update")
	}
	if !existing.CreatedAt.Equal(createdAt) {
		t.Error("CreatedAt must never change on update")
	}
	if !existing.UpdatedAt.After(createdAt) {
		t.Error("UpdatedAt must be refreshed on update")
	}
}

func TestApplyUpdate_ReplacesImages(t *testing.T) {
	existing := Property{Image: []string{"old.jpg"}}
	patch := Property{Image: []string{"new1.jpg", "new2.jpg"}}

	existing.ApplyUpdate(&patch)

	if len(existing.Image) != 2 || existing.Image[0] != "new1.jpg" {
		t.Errorf("Expected image list to be fully replaced, got %v", existing.Image)
	}
}
