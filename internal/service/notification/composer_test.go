package notification

import (
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name      string
		product   domain.Product
		wantBody  string
		wantImage string
	}{
		{
			name:     "name and price",
			product:  domain.Product{ID: "p1", Name: "Widget", Price: "9.99"},
			wantBody: "You bought Widget for $9.99",
		},
		{
			name:     "missing name",
			product:  domain.Product{ID: "p1", Price: "9.99"},
			wantBody: "You bought an item for $9.99",
		},
		{
			name:     "missing price",
			product:  domain.Product{ID: "p1", Name: "Widget"},
			wantBody: "You bought Widget for $??",
		},
		{
			name:     "blank fields",
			product:  domain.Product{ID: "p1", Name: " ", Price: ""},
			wantBody: "You bought an item for $??",
		},
		{
			name:      "with image",
			product:   domain.Product{ID: "p2", Name: "Gadget", Price: "24.50", ImageURL: "https://img/gadget.png"},
			wantBody:  "You bought Gadget for $24.50",
			wantImage: "https://img/gadget.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Compose(tt.product)
			if msg.Title != Title {
				t.Fatalf("unexpected title %q", msg.Title)
			}
			if msg.Body != tt.wantBody {
				t.Fatalf("unexpected body %q, want %q", msg.Body, tt.wantBody)
			}
			if msg.ImageURL != tt.wantImage {
				t.Fatalf("unexpected image %q, want %q", msg.ImageURL, tt.wantImage)
			}
			if msg.Link != "" {
				t.Fatalf("composer must not set link, got %q", msg.Link)
			}
		})
	}
}
