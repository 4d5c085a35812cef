package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"gorm.io/gorm"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify transliterates text to ASCII and joins its words with dashes.
func Slugify(text string) string {
	s := strings.ToLower(unidecode.Unidecode(text))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 180 {
		s = strings.TrimRight(s[:180], "-")
	}
	if s == "" {
		s = "item"
	}
	return s
}

// UniqueSlug returns base, or base-2, base-3... for the first candidate no
// other row of model's table uses. excludeID skips the row being updated.
func UniqueSlug(ctx context.Context, db *gorm.DB, model interface{}, base string, excludeID uint) (string, error) {
	candidate := base
	for n := 2; ; n++ {
		var count int64
		tx := db.WithContext(ctx).Model(model).Where("slug = ?", candidate)
		if excludeID != 0 {
			tx = tx.Where("id <> ?", excludeID)
		}
		if err := tx.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
