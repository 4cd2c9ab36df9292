package config

import (
	"github.com/spf13/viper"
)

// Assets configures the hosted image service used by the upload widgets
type Assets struct {
	Provider   string `json:"provider" yaml:"provider"` // cloudinary | s3
	Cloudinary *Cloudinary
	S3         *S3
}

// Cloudinary upload settings
type Cloudinary struct {
	CloudName    string `json:"cloud_name" yaml:"cloud_name"`
	UploadPreset string `json:"upload_preset" yaml:"upload_preset"`
	APIKey       string `json:"api_key" yaml:"api_key"`
	APISecret    string `json:"api_secret" yaml:"api_secret"`
	Folder       string `json:"folder" yaml:"folder"`
}

// S3 holds settings for any S3 compatible bucket
type S3 struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
	Bucket    string `json:"bucket" yaml:"bucket"`
	Region    string `json:"region" yaml:"region"`
	UseSSL    bool   `json:"use_ssl" yaml:"use_ssl"`
	PublicURL string `json:"public_url" yaml:"public_url"`
	Prefix    string `json:"prefix" yaml:"prefix"`
}

func getAssetsConfig(v *viper.Viper) *Assets {
	return &Assets{
		Provider: v.GetString("assets.provider"),
		Cloudinary: &Cloudinary{
			CloudName:    v.GetString("assets.cloudinary.cloud_name"),
			UploadPreset: v.GetString("assets.cloudinary.upload_preset"),
			APIKey:       v.GetString("assets.cloudinary.api_key"),
			APISecret:    v.GetString("assets.cloudinary.api_secret"),
			Folder:       v.GetString("assets.cloudinary.folder"),
		},
		S3: &S3{
			Endpoint:  v.GetString("assets.s3.endpoint"),
			AccessKey: v.GetString("assets.s3.access_key"),
			SecretKey: v.GetString("assets.s3.secret_key"),
			Bucket:    v.GetString("assets.s3.bucket"),
			Region:    v.GetString("assets.s3.region"),
			UseSSL:    v.GetBool("assets.s3.use_ssl"),
			PublicURL: v.GetString("assets.s3.public_url"),
			Prefix:    v.GetString("assets.s3.prefix"),
		},
	}
}
