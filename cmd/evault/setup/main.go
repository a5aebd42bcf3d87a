// setup prepares an S3 bucket for the s3 storage backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/joho/godotenv"

	s3store "evault/internal/storage/s3"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("Unable to load SDK config: %v", err)
	}
	if cfg.Region == "" {
		cfg.Region = s3store.DefaultConfig.Region
	}

	identity, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		log.Fatalf("Unable to verify AWS credentials: %v", err)
	}
	fmt.Printf("Using AWS identity %s\n", aws.ToString(identity.Arn))

	bucketName := os.Getenv("EVAULT_S3_BUCKET")
	if bucketName == "" {
		bucketName = s3store.DefaultConfig.Bucket
	}
	store := s3store.DefaultConfig
	s3store.WithPrefix(os.Getenv("EVAULT_S3_PREFIX"))(&store)
	prefix := store.Prefix

	client := s3.NewFromConfig(cfg)

	_, err = client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucketName)})
	if err != nil {
		fmt.Printf("Creating bucket %s...\n", bucketName)
		input := &s3.CreateBucketInput{Bucket: aws.String(bucketName)}

		// us-east-1 rejects an explicit location constraint
		if cfg.Region != "us-east-1" {
			input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
				LocationConstraint: types.BucketLocationConstraint(cfg.Region),
			}
		}
		if _, err := client.CreateBucket(ctx, input); err != nil {
			log.Fatalf("Unable to create bucket: %v", err)
		}
	} else {
		fmt.Printf("Bucket %s already exists\n", bucketName)
	}

	if _, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(prefix),
	}); err != nil {
		log.Printf("Warning: Unable to create folder %s: %v", prefix, err)
	} else {
		fmt.Printf("Created folder: %s\n", prefix)
	}

	fmt.Println("\nSetup completed successfully!")
	fmt.Println("\nBucket configuration:")
	fmt.Printf("- Name: %s\n", bucketName)
	fmt.Printf("- Region: %s\n", cfg.Region)
	fmt.Printf("- Prefix: %s\n", prefix)
	fmt.Println("\nSet EVAULT_STORAGE=s3 and EVAULT_S3_BUCKET to use it.")
}
