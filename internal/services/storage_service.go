// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/gradpath/gradpath-backend/internal/config"
)

type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

type UploadOptions struct {
	Folder       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: config}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

// UploadFile validates the upload against the given options and stores it
// under a generated key, on S3 when configured and locally otherwise.
func (s *StorageService) UploadFile(file multipart.File, header *multipart.FileHeader, options UploadOptions) (*UploadResult, error) {
	if options.MaxSize > 0 && header.Size > options.MaxSize {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, options.MaxSize)
	}
	if err := checkExtension(header.Filename, options.AllowedTypes); err != nil {
		return nil, err
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	key := s.generateFileName(header.Filename, options.Folder)
	contentType := header.Header.Get("Content-Type")

	if s.s3Client != nil {
		return s.uploadToS3(fileBytes, key, contentType)
	}
	return s.uploadToLocal(fileBytes, key, contentType)
}

func checkExtension(filename string, allowedTypes []string) error {
	if len(allowedTypes) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedTypes {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("file type %s is not allowed", ext)
}

func (s *StorageService) uploadToS3(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	// Objects stay private; access goes through presigned URLs
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

// uploadToLocal simulates storage for local development; no bytes are
// written, the record just gets a local URL.
func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	return &UploadResult{
		URL:      fmt.Sprintf("http://localhost:8080/uploads/%s", key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) DeleteFile(key string) error {
	if s.s3Client == nil {
		return nil
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (s *StorageService) GeneratePresignedURL(key string, expiration time.Duration) (string, error) {
	if s.s3Client == nil {
		return "", fmt.Errorf("S3 client not configured")
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiration)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url, nil
}

func (s *StorageService) GetDefaultUploadOptions(category string) UploadOptions {
	switch category {
	case "transcripts":
		return UploadOptions{
			Folder:       "transcripts",
			MaxSize:      20 * 1024 * 1024, // 20MB
			AllowedTypes: []string{".pdf", ".jpg", ".jpeg", ".png"},
		}
	case "essays":
		return UploadOptions{
			Folder:       "essays",
			MaxSize:      10 * 1024 * 1024, // 10MB
			AllowedTypes: []string{".pdf", ".doc", ".docx", ".txt", ".md"},
		}
	case "certificates":
		return UploadOptions{
			Folder:       "certificates",
			MaxSize:      10 * 1024 * 1024, // 10MB
			AllowedTypes: []string{".pdf", ".jpg", ".jpeg", ".png"},
		}
	default:
		return UploadOptions{
			Folder:       "documents",
			MaxSize:      10 * 1024 * 1024, // 10MB
			AllowedTypes: []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png", ".txt"},
		}
	}
}

// generateFileName builds a collision-free key: <folder>/<date>_<uuid8><ext>.
func (s *StorageService) generateFileName(originalName, folder string) string {
	filename := fmt.Sprintf("%s_%s%s",
		time.Now().Format("20060102"),
		uuid.New().String()[:8],
		filepath.Ext(originalName),
	)
	if folder != "" {
		return fmt.Sprintf("%s/%s", folder, filename)
	}
	return filename
}

// KeyFromURL recovers the storage key from a stored file URL. Returns an
// empty string when the URL does not belong to this storage backend.
func (s *StorageService) KeyFromURL(fileURL string) string {
	prefixes := []string{
		fmt.Sprintf("https://%s.s3.%s.amazonaws.com/",
			s.config.AWS.S3Bucket, s.config.AWS.Region),
		"http://localhost:8080/uploads/",
	}
	if s.config.AWS.CloudFrontURL != "" {
		prefixes = append(prefixes, s.config.AWS.CloudFrontURL+"/")
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(fileURL, prefix) {
			return strings.TrimPrefix(fileURL, prefix)
		}
	}
	return ""
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}
