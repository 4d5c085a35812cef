package config

import (
	"github.com/cloudinary/cloudinary-go/v2"
)

var Cloudinary *cloudinary.Cloudinary

// ConnectCloudinary returns nil without error when CLOUDINARY_URL is unset;
// uploads then go to local storage.
func ConnectCloudinary(s Settings) (*cloudinary.Cloudinary, error) {
	if s.CloudinaryURL == "" {
		return nil, nil
	}
	return cloudinary.NewFromURL(s.CloudinaryURL)
}
