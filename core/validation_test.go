package core

import (
	"errors"
	"testing"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     *DocumentEntry
		wantErr error
	}{
		{
			name: "valid document",
			doc: &DocumentEntry{
				ID:      "qs",
				Title:   "Quick Start",
				Path:    "/docs/quick-start",
				Section: "Getting Started",
				Content: "Get up and running in five minutes",
			},
			wantErr: nil,
		},
		{
			name: "valid document without section",
			doc: &DocumentEntry{
				ID:      "install",
				Title:   "Installation",
				Path:    "/docs/install",
				Content: "Install the CLI",
			},
			wantErr: nil,
		},
		{
			name: "valid document without content",
			doc: &DocumentEntry{
				ID:    "changelog",
				Title: "Changelog",
				Path:  "/changelog",
			},
			wantErr: nil,
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name: "empty id",
			doc: &DocumentEntry{
				Title: "Quick Start",
				Path:  "/docs/quick-start",
			},
			wantErr: ErrEmptyID,
		},
		{
			name: "blank title",
			doc: &DocumentEntry{
				ID:    "qs",
				Title: "   ",
				Path:  "/docs/quick-start",
			},
			wantErr: ErrEmptyTitle,
		},
		{
			name: "empty path",
			doc: &DocumentEntry{
				ID:    "qs",
				Title: "Quick Start",
			},
			wantErr: ErrEmptyPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() unexpected error = %v", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateDocument() expected error %v, got nil", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}

			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("ValidateDocument() error should wrap ErrInvalidDocument, got %v", err)
			}
		})
	}
}
