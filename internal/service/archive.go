package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/SilvioBaratto/diet-generator/config"
	"github.com/SilvioBaratto/diet-generator/internal/types"
)

// ArchiveService stores generated plan documents in S3 so they survive
// independently of the relational store.
type ArchiveService struct {
	s3Config *config.S3Config
}

// Ensure ArchiveService implements PlanArchiver
var _ PlanArchiver = (*ArchiveService)(nil)

// NewArchiveService creates a new ArchiveService instance
func NewArchiveService(s3Config *config.S3Config) *ArchiveService {
	return &ArchiveService{s3Config: s3Config}
}

// ArchivePlan uploads the plan document as JSON under plans/<user>/<diet>.json.
func (s *ArchiveService) ArchivePlan(ctx context.Context, userID, dietID uuid.UUID, doc *types.PlanWithGroceryList) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal plan document: %w", err)
	}

	key := fmt.Sprintf("plans/%s/%s.json", userID, dietID)
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload plan document: %w", err)
	}
	return nil
}
