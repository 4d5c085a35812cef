package dto

import "travelcms/models"

// MediaQuery selects one entity's gallery.
type MediaQuery struct {
	EntityType string `form:"entity_type" binding:"required"`
	EntityID   uint   `form:"entity_id" binding:"required"`
}

// MediaUploadForm is the non-file part of a multipart upload.
type MediaUploadForm struct {
	EntityType string `form:"entity_type" binding:"required"`
	EntityID   uint   `form:"entity_id" binding:"required"`
	AltText    string `form:"alt_text" binding:"max=300"`
	Caption    string `form:"caption" binding:"max=500"`
}

type UpdateMediaRequest struct {
	AltText *string `json:"alt_text,omitempty" binding:"omitempty,max=300"`
	Caption *string `json:"caption,omitempty" binding:"omitempty,max=500"`
}

func (r UpdateMediaRequest) ApplyTo(m *models.Media) {
	if r.AltText != nil {
		v := *r.AltText
		m.AltText = &v
	}
	if r.Caption != nil {
		v := *r.Caption
		m.Caption = &v
	}
}
