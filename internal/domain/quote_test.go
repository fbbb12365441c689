package domain

import (
	"strings"
	"testing"
	"time"
)

func validQuote() *Quote {
	return &Quote{
		CustomerName:     "Ada",
		CustomerEmail:    "ada@example.com",
		ShopAddress:      "123 Main St",
		Shop:             Position{Lat: 10, Lon: 20},
		IssueDescription: "Grinder jams",
	}
}

func TestQuoteValidate(t *testing.T) {
	str := func(s string) *string { return &s }
	num := func(f float64) *float64 { return &f }

	tests := []struct {
		name    string
		mutate  func(q *Quote)
		wantErr string
	}{
		{name: "valid", mutate: func(q *Quote) {}},
		{name: "valid with optional fields", mutate: func(q *Quote) {
			q.PreferredDate = str("2026-11-02")
			q.TravelDistanceKm = num(12.3)
			q.CustomerPhone = str("+27 21 000 0000")
		}},
		{name: "blank name", mutate: func(q *Quote) { q.CustomerName = "  " }, wantErr: "customer_name is required"},
		{name: "missing email", mutate: func(q *Quote) { q.CustomerEmail = "" }, wantErr: "customer_email is required"},
		{name: "bad email", mutate: func(q *Quote) { q.CustomerEmail = "not-an-email" }, wantErr: "not a valid email"},
		{name: "blank address", mutate: func(q *Quote) { q.ShopAddress = "" }, wantErr: "shop_address is required"},
		{name: "latitude out of range", mutate: func(q *Quote) { q.Shop.Lat = 91 }, wantErr: "out of range"},
		{name: "blank issue", mutate: func(q *Quote) { q.IssueDescription = "" }, wantErr: "issue_description is required"},
		{name: "bad date", mutate: func(q *Quote) { q.PreferredDate = str("02/11/2026") }, wantErr: "preferred_date"},
		{name: "negative distance", mutate: func(q *Quote) { q.TravelDistanceKm = num(-1) }, wantErr: "non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuote()
			tt.mutate(q)

			err := q.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestGalleryImageKey(t *testing.T) {
	at := time.UnixMilli(1700000000123)

	tests := []struct {
		filename string
		want     string
	}{
		{"espresso.jpg", "gallery/1700000000123-espresso.jpg"},
		{"../../etc/passwd", "gallery/1700000000123-passwd"},
		{`C:\photos\my shop.png`, "gallery/1700000000123-my-shop.png"},
		{"", "gallery/1700000000123-image"},
	}

	for _, tt := range tests {
		if got := GalleryImageKey(at, tt.filename); got != tt.want {
			t.Errorf("GalleryImageKey(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings should validate: %v", err)
	}

	missing := s.Clone()
	missing[SettingYearsExperience] = ""
	if err := missing.Validate(); err == nil || !strings.Contains(err.Error(), SettingYearsExperience) {
		t.Fatalf("expected years_experience error, got %v", err)
	}

	unknown := s.Clone()
	unknown["admin_password"] = "x"
	if err := unknown.Validate(); err == nil || !strings.Contains(err.Error(), "unknown setting") {
		t.Fatalf("expected unknown setting error, got %v", err)
	}

	if s[SettingYearsExperience] != "15+" {
		t.Fatalf("clone mutated the original: %q", s[SettingYearsExperience])
	}
}
