// internal/common/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"defaults", "Items,Drivers,Category,SubCategory", []string{"Items", "Drivers", "Category", "SubCategory"}},
		{"whitespace trimmed", " Items , Drivers ", []string{"Items", "Drivers"}},
		{"empty entries dropped", "Items,,Drivers,", []string{"Items", "Drivers"}},
		{"single", "Items", []string{"Items"}},
		{"empty string", "", []string{}},
		{"only separators", ", ,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DirectusConfig{Collections: tt.input}
			assert.Equal(t, tt.expected, cfg.CollectionList())
		})
	}
}
